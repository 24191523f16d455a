// Package service contains the application layer of the shoe card service.
// CardService wraps the pure card builder with a clock, logging and metrics
// so handlers and the CLI don't each wire those concerns themselves.
package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/fleveque/shoe-card-service/internal/card"
	"github.com/fleveque/shoe-card-service/internal/metrics"
	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/variant"
)

// Clock returns the current time. Tests swap it for a fixed instant.
type Clock func() time.Time

// CardService resolves variants and builds cards.
type CardService struct {
	builder *card.Builder
	metrics *metrics.Metrics // nil disables counting
	clock   Clock
	logger  *zap.Logger
}

// NewCardService creates a CardService. A nil clock means time.Now and a
// nil metrics value turns off resolution counters.
func NewCardService(builder *card.Builder, m *metrics.Metrics, clock Clock, logger *zap.Logger) *CardService {
	if clock == nil {
		clock = time.Now
	}
	return &CardService{
		builder: builder,
		metrics: m,
		clock:   clock,
		logger:  logger,
	}
}

// Now returns the service clock reading.
func (s *CardService) Now() time.Time {
	return s.clock()
}

// RecencyRule describes the rule used to decide new releases.
func (s *CardService) RecencyRule() variant.RecencyRule {
	return s.builder.Resolver().Rule()
}

// Resolve classifies shoe as of the service clock.
func (s *CardService) Resolve(shoe model.ShoeRecord) model.VariantResult {
	return s.ResolveAt(shoe, s.clock())
}

// ResolveAt classifies shoe as of now.
func (s *CardService) ResolveAt(shoe model.ShoeRecord, now time.Time) model.VariantResult {
	result := s.builder.Resolver().Resolve(shoe, now)
	s.observe(shoe, result)
	return result
}

// Card builds the card for shoe as of the service clock.
func (s *CardService) Card(shoe model.ShoeRecord) card.Card {
	return s.CardAt(shoe, s.clock())
}

// CardAt builds the card for shoe as of now.
func (s *CardService) CardAt(shoe model.ShoeRecord, now time.Time) card.Card {
	c := s.builder.Build(shoe, now)
	s.observe(shoe, c.VariantResult)
	return c
}

// Cards builds one card per shoe, keeping input order. Every card in the
// batch is resolved against the same now.
func (s *CardService) Cards(shoes []model.ShoeRecord, now time.Time) []card.Card {
	cards := make([]card.Card, 0, len(shoes))
	for _, shoe := range shoes {
		cards = append(cards, s.CardAt(shoe, now))
	}
	return cards
}

func (s *CardService) observe(shoe model.ShoeRecord, result model.VariantResult) {
	if s.metrics != nil {
		s.metrics.ObserveVariant(result.Variant)
	}
	s.logger.Debug("resolved shoe variant",
		zap.String("slug", shoe.Slug),
		zap.String("variant", string(result.Variant)),
	)
}
