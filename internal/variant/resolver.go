// Package variant classifies a shoe listing into its product-card variant.
//
// Priority, first match wins:
//
//	on-sale      a sale price is present (zero included)
//	new-release  released inside the recency window ending at now
//	default      everything else
//
// A shoe that is both on sale and newly released is on-sale.
package variant

import (
	"time"

	"github.com/fleveque/shoe-card-service/internal/model"
)

const (
	LabelSale       = "Sale"
	LabelNewRelease = "Just released!"
)

// Resolver holds the recency rule. It is immutable after construction and
// safe for concurrent use.
type Resolver struct {
	recency RecencyRule
}

// NewResolver creates a Resolver. A nil rule falls back to the 30 day
// rolling window.
func NewResolver(rule RecencyRule) *Resolver {
	if rule == nil {
		rule = RollingWindow{Days: DefaultWindowDays}
	}
	return &Resolver{recency: rule}
}

// Rule returns the recency rule in use.
func (r *Resolver) Rule() RecencyRule {
	return r.recency
}

// Resolve classifies shoe as of now. It never fails.
func (r *Resolver) Resolve(shoe model.ShoeRecord, now time.Time) model.VariantResult {
	switch {
	case shoe.OnSale():
		return resultFor(model.VariantOnSale)
	case r.recency.IsRecent(shoe.ReleaseDate, now):
		return resultFor(model.VariantNewRelease)
	default:
		return resultFor(model.VariantDefault)
	}
}

var defaultResolver = NewResolver(nil)

// Resolve classifies shoe with the default 30 day rolling window.
func Resolve(shoe model.ShoeRecord, now time.Time) model.VariantResult {
	return defaultResolver.Resolve(shoe, now)
}

func resultFor(v model.Variant) model.VariantResult {
	switch v {
	case model.VariantOnSale:
		return model.VariantResult{
			Variant:           v,
			FlagLabel:         LabelSale,
			FlagColorKey:      model.FlagColorPrimary,
			ShowOriginalPrice: true,
			ShowSalePrice:     true,
		}
	case model.VariantNewRelease:
		return model.VariantResult{
			Variant:      v,
			FlagLabel:    LabelNewRelease,
			FlagColorKey: model.FlagColorSecondary,
		}
	default:
		return model.VariantResult{Variant: model.VariantDefault}
	}
}
