package service

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fleveque/shoe-card-service/internal/card"
	"github.com/fleveque/shoe-card-service/internal/metrics"
	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/variant"
)

var fixedNow = time.Date(2024, time.May, 20, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*CardService, *metrics.Metrics) {
	t.Helper()
	prices, err := card.NewPriceFormatter("en-US", "$")
	if err != nil {
		t.Fatalf("creating price formatter: %v", err)
	}
	m := metrics.New()
	builder := card.NewBuilder(variant.NewResolver(nil), prices)
	clock := func() time.Time { return fixedNow }
	return NewCardService(builder, m, clock, zap.NewNop()), m
}

func TestCardService_ResolveUsesClock(t *testing.T) {
	svc, _ := newTestService(t)

	got := svc.Resolve(model.ShoeRecord{
		Slug:        "fresh",
		Name:        "Fresh",
		Price:       decimal.NewFromInt(100),
		ReleaseDate: fixedNow.Add(-24 * time.Hour),
	})
	if got.Variant != model.VariantNewRelease {
		t.Errorf("expected new-release against the service clock, got %s", got.Variant)
	}

	// The same shoe looked at 60 days later is no longer new.
	later := svc.ResolveAt(model.ShoeRecord{
		Slug:        "fresh",
		Name:        "Fresh",
		Price:       decimal.NewFromInt(100),
		ReleaseDate: fixedNow.Add(-24 * time.Hour),
	}, fixedNow.AddDate(0, 0, 60))
	if later.Variant != model.VariantDefault {
		t.Errorf("expected default 60 days later, got %s", later.Variant)
	}
}

func TestCardService_CardsKeepOrderAndCount(t *testing.T) {
	svc, m := newTestService(t)

	shoes := []model.ShoeRecord{
		{Slug: "a", Name: "A", Price: decimal.NewFromInt(90), SalePrice: decimal.NewNullDecimal(decimal.NewFromInt(70))},
		{Slug: "b", Name: "B", Price: decimal.NewFromInt(90), ReleaseDate: fixedNow},
		{Slug: "c", Name: "C", Price: decimal.NewFromInt(90), ReleaseDate: fixedNow.AddDate(-1, 0, 0)},
	}

	cards := svc.Cards(shoes, fixedNow)
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}

	want := []model.Variant{model.VariantOnSale, model.VariantNewRelease, model.VariantDefault}
	for i, c := range cards {
		if c.Slug != shoes[i].Slug {
			t.Errorf("card %d: expected slug %s, got %s", i, shoes[i].Slug, c.Slug)
		}
		if c.Variant != want[i] {
			t.Errorf("card %d: expected %s, got %s", i, want[i], c.Variant)
		}
	}

	for _, v := range model.AllVariants {
		if got := testutil.ToFloat64(m.Resolutions.WithLabelValues(string(v))); got != 1 {
			t.Errorf("expected 1 %s resolution, got %v", v, got)
		}
	}
}

func TestCardService_NilClockAndMetrics(t *testing.T) {
	prices, err := card.NewPriceFormatter("en-US", "$")
	if err != nil {
		t.Fatalf("creating price formatter: %v", err)
	}
	svc := NewCardService(card.NewBuilder(variant.NewResolver(nil), prices), nil, nil, zap.NewNop())

	before := time.Now()
	if svc.Now().Before(before) {
		t.Error("expected default clock to be time.Now")
	}

	c := svc.Card(model.ShoeRecord{Slug: "x", Name: "X", Price: decimal.NewFromInt(10)})
	if c.Variant != model.VariantDefault {
		t.Errorf("expected default, got %s", c.Variant)
	}
	if svc.RecencyRule().String() != "rolling:30d" {
		t.Errorf("expected rolling:30d, got %s", svc.RecencyRule())
	}
}
