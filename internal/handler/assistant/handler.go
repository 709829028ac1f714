package assistant

import (
	"github.com/gin-gonic/gin"

	assistantService "github.com/healthvault/health-api/internal/service/assistant"
	"github.com/healthvault/health-api/pkg/httputil"
)

type Handler struct {
	service *assistantService.Service
}

func NewHandler(service *assistantService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant/ask", h.Ask)
}

type askRequest struct {
	Message string `json:"message" binding:"required,max=500"`
}

func (h *Handler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithValidationError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, gin.H{"reply": h.service.Reply(req.Message)})
}
