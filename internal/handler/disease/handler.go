package disease

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	diseaseService "github.com/healthvault/health-api/internal/service/disease"
	recordService "github.com/healthvault/health-api/internal/service/record"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *diseaseService.Service
	records *recordService.Service
}

func NewHandler(service *diseaseService.Service, records *recordService.Service) *Handler {
	return &Handler{service: service, records: records}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	diseases := rg.Group("/conditions")
	{
		diseases.POST("", h.Create)
		diseases.GET("", h.List)
		diseases.GET("/:id", h.Get)
		diseases.PATCH("/:id", h.Update)
		diseases.DELETE("/:id", h.Delete)
		diseases.GET("/:id/records", h.RelatedRecords)
		diseases.POST("/:id/treatments", h.AddTreatment)
		diseases.PUT("/:id/treatments/:treatmentId", h.UpdateTreatment)
		diseases.DELETE("/:id/treatments/:treatmentId", h.DeleteTreatment)
	}
}

// diseaseView augments the entity with its display classification
// tokens so every consumer classifies status and severity the same way.
type diseaseView struct {
	*model.Disease
	StatusToken   string `json:"status_token"`
	SeverityToken string `json:"severity_token"`
}

func view(disease *model.Disease) diseaseView {
	return diseaseView{
		Disease:       disease,
		StatusToken:   disease.Status.DisplayToken(),
		SeverityToken: disease.Severity.DisplayToken(),
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	disease, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, view(disease))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}

	disease, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(disease))
}

func (h *Handler) List(c *gin.Context) {
	diseases, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	views := make([]diseaseView, 0, len(diseases))
	for _, disease := range diseases {
		views = append(views, view(disease))
	}
	httputil.RespondWithSuccess(c, views)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}

	var req model.UpdateDiseaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	disease, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(disease))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}

// RelatedRecords returns the records linked to this condition, grouped
// by category with every category present.
func (h *Handler) RelatedRecords(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}

	related, err := h.records.RelatedRecords(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, related)
}

func (h *Handler) AddTreatment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}

	var req model.TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	disease, err := h.service.AddTreatment(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, view(disease))
}

func (h *Handler) UpdateTreatment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}
	treatmentID, err := uuid.Parse(c.Param("treatmentId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid treatment ID", err))
		return
	}

	var req model.TreatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	disease, err := h.service.UpdateTreatment(c.Request.Context(), id, treatmentID, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(disease))
}

func (h *Handler) DeleteTreatment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid condition ID", err))
		return
	}
	treatmentID, err := uuid.Parse(c.Param("treatmentId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid treatment ID", err))
		return
	}

	disease, err := h.service.DeleteTreatment(c.Request.Context(), id, treatmentID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, view(disease))
}
