package dashboard

import (
	"time"

	"github.com/gin-gonic/gin"

	dashboardService "github.com/healthvault/health-api/internal/service/dashboard"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *dashboardService.Service
}

func NewHandler(service *dashboardService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Summary)
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), time.Now())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summary)
}
