package record

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	recordService "github.com/healthvault/health-api/internal/service/record"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *recordService.Service
}

func NewHandler(service *recordService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	records := rg.Group("/records")
	{
		records.POST("", h.Create)
		records.GET("", h.List)
		records.GET("/:id", h.Get)
		records.PATCH("/:id", h.Update)
		records.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	rec, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, rec)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid record ID", err))
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rec)
}

func (h *Handler) List(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		cat := model.RecordCategory(category)
		if !cat.Valid() {
			httputil.RespondWithError(c, apperrors.BadRequest("unknown category", nil))
			return
		}
		recs, err := h.service.ListByCategory(c.Request.Context(), cat)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, recs)
		return
	}

	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, recs)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid record ID", err))
		return
	}

	var req model.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	rec, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rec)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid record ID", err))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"deleted": true})
}
