package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fleveque/shoe-card-service/internal/card"
	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/service"
	"github.com/fleveque/shoe-card-service/internal/validation"
)

// MaxBatchSize caps the number of shoes in one batch request.
const MaxBatchSize = 100

// CardHandler serves variant resolution and card building.
type CardHandler struct {
	cardService *service.CardService
	validator   *validation.Validator
	logger      *zap.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardService *service.CardService, v *validation.Validator, logger *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validator:   v,
		logger:      logger,
	}
}

// BatchRequest is the body of POST /api/v1/cards/batch.
type BatchRequest struct {
	Shoes []model.ShoeRecord `json:"shoes"`
}

// BatchResponse is the reply to a batch request, in request order.
type BatchResponse struct {
	Cards []card.Card `json:"cards"`
}

// ResolveVariant classifies one shoe.
// Route: POST /api/v1/variants?at=2024-05-01T00:00:00Z
func (h *CardHandler) ResolveVariant(c *gin.Context) {
	now, shoe, ok := h.bindShoe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.cardService.ResolveAt(shoe, now))
}

// BuildCard returns the full card for one shoe.
// Route: POST /api/v1/cards?at=...
func (h *CardHandler) BuildCard(c *gin.Context) {
	now, shoe, ok := h.bindShoe(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.cardService.CardAt(shoe, now))
}

// BuildCards returns cards for a list of shoes, all resolved at the same instant.
// Route: POST /api/v1/cards/batch?at=...
func (h *CardHandler) BuildCards(c *gin.Context) {
	now, ok := h.requestTime(c)
	if !ok {
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("binding batch", zap.Error(err))
		bindError(c, err)
		return
	}
	if len(req.Shoes) == 0 || len(req.Shoes) > MaxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("shoes must hold between 1 and %d records", MaxBatchSize),
		})
		return
	}

	for i, shoe := range req.Shoes {
		if err := h.validator.Shoe(shoe); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  fmt.Sprintf("shoe %d is invalid", i),
				"fields": validation.FormatError(err),
			})
			return
		}
	}

	c.JSON(http.StatusOK, BatchResponse{Cards: h.cardService.Cards(req.Shoes, now)})
}

// bindShoe reads the reference time and a single validated shoe, writing
// the error response itself when either is bad.
func (h *CardHandler) bindShoe(c *gin.Context) (time.Time, model.ShoeRecord, bool) {
	var shoe model.ShoeRecord

	now, ok := h.requestTime(c)
	if !ok {
		return now, shoe, false
	}

	if err := c.ShouldBindJSON(&shoe); err != nil {
		h.logger.Debug("binding shoe", zap.Error(err))
		bindError(c, err)
		return now, shoe, false
	}

	if err := h.validator.Shoe(shoe); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid shoe",
			"fields": validation.FormatError(err),
		})
		return now, shoe, false
	}
	return now, shoe, true
}

// bindError answers a failed JSON bind. A well-formed body that lacks a
// price is a validation failure, not a syntax one.
func bindError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrMissingPrice) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "invalid shoe",
			"fields": map[string]string{"price": "is required"},
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
}

// requestTime returns the ?at= override or the service clock.
func (h *CardHandler) requestTime(c *gin.Context) (time.Time, bool) {
	at := c.Query("at")
	if at == "" {
		return h.cardService.Now(), true
	}

	now, err := time.Parse(time.RFC3339, at)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid at: must be an RFC 3339 timestamp",
		})
		return time.Time{}, false
	}
	return now, true
}
