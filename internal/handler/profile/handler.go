package profile

import (
	"github.com/gin-gonic/gin"

	"github.com/healthvault/health-api/internal/model"
	profileService "github.com/healthvault/health-api/internal/service/profile"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *profileService.Service
}

func NewHandler(service *profileService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.Get)
	rg.PATCH("/profile", h.Update)
	rg.GET("/plans", h.Plans)
	rg.POST("/plans/:id/select", h.SelectPlan)
}

func (h *Handler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) Update(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	profile, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) Plans(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.Plans())
}

func (h *Handler) SelectPlan(c *gin.Context) {
	profile, err := h.service.SelectPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}
