package sharing

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	sharingService "github.com/healthvault/health-api/internal/service/sharing"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *sharingService.Service
}

func NewHandler(service *sharingService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the owner-facing grant management endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	shares := rg.Group("/shares")
	{
		shares.POST("", h.Issue)
		shares.GET("", h.List)
		shares.GET("/:id", h.Get)
		shares.POST("/:id/revoke", h.Revoke)
	}
}

// RegisterPublicRoutes mounts the recipient-facing redemption endpoints
// which authenticate by access code, not by bearer token.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/shares/redeem", h.Redeem)
	rg.GET("/shares/session/:token", h.Session)
}

func (h *Handler) Issue(c *gin.Context) {
	var req model.IssueGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	grant, err := h.service.Issue(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, grant)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid grant ID", err))
		return
	}

	grant, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, grant)
}

func (h *Handler) List(c *gin.Context) {
	grants, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, grants)
}

func (h *Handler) Revoke(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid grant ID", err))
		return
	}

	grant, err := h.service.Revoke(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, grant)
}

type redeemRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

func (h *Handler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	result, err := h.service.Redeem(c.Request.Context(), req.AccessCode)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, result)
}

func (h *Handler) Session(c *gin.Context) {
	grant, err := h.service.Session(c.Request.Context(), c.Param("token"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, grant)
}
