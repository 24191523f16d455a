package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/service"
)

// AdminHandler handles administrative endpoints.
type AdminHandler struct {
	cardService *service.CardService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(cardService *service.CardService) *AdminHandler {
	return &AdminHandler{cardService: cardService}
}

// Recency reports the active new-release rule and the window it implies
// right now, so operators can check a config change took effect.
// Route: GET /api/v1/admin/recency
func (h *AdminHandler) Recency(c *gin.Context) {
	rule := h.cardService.RecencyRule()
	now := h.cardService.Now()

	c.JSON(http.StatusOK, gin.H{
		"rule":         rule.String(),
		"now":          now,
		"window_start": rule.WindowStart(now),
		"variants":     model.AllVariants,
	})
}
