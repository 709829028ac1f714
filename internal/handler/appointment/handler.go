package appointment

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	appointmentService "github.com/healthvault/health-api/internal/service/appointment"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id", h.Update)
		appointments.POST("/:id/complete", h.Complete)
		appointments.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

// List returns the whole collection, or one side of the upcoming/past
// split when the "when" query is given.
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	now := time.Now()

	switch c.Query("when") {
	case "upcoming":
		apts, err := h.service.Upcoming(ctx, now)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, apts)
	case "past":
		apts, err := h.service.Past(ctx, now)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, apts)
	default:
		apts, err := h.service.List(ctx)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, apts)
	}
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	var req model.CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	apt, err := h.service.Complete(c.Request.Context(), id, req.Summary)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment ID", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
