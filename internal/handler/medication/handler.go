package medication

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	medicationService "github.com/healthvault/health-api/internal/service/medication"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *medicationService.Service
}

func NewHandler(service *medicationService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	medications := rg.Group("/medications")
	{
		medications.POST("", h.Create)
		medications.GET("", h.List)
		medications.GET("/schedule", h.TodaysSchedule)
		medications.GET("/:id", h.Get)
		medications.PATCH("/:id", h.Update)
		medications.POST("/:id/taken", h.MarkTaken)
		medications.DELETE("/:id", h.Delete)
	}
}

// medicationView augments the entity with its derived read-side fields.
type medicationView struct {
	*model.Medication
	Adherence    int               `json:"adherence_percent"`
	RefillStatus model.RefillLevel `json:"refill_status"`
}

func view(med *model.Medication) medicationView {
	return medicationView{
		Medication:   med,
		Adherence:    medicationService.AdherencePercent(med),
		RefillStatus: medicationService.RefillStatus(med.Remaining, med.Total),
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	med, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, view(med))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid medication ID", err))
		return
	}

	med, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(med))
}

func (h *Handler) List(c *gin.Context) {
	meds, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]medicationView, 0, len(meds))
	for _, med := range meds {
		views = append(views, view(med))
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) TodaysSchedule(c *gin.Context) {
	schedule, err := h.service.TodaysSchedule(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, schedule)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid medication ID", err))
		return
	}

	var req model.UpdateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	med, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(med))
}

func (h *Handler) MarkTaken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid medication ID", err))
		return
	}

	var req model.MarkTakenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	med, err := h.service.MarkTaken(c.Request.Context(), id, req.Time)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(med))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid medication ID", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
