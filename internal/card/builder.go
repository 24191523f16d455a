package card

import (
	"time"

	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/variant"
)

// ColorWord is the noun counted on the color row.
const ColorWord = "Color"

// Card is everything a renderer needs to draw one product card.
// Price is always set. SalePrice is only set when ShowSalePrice is true,
// in which case Price should be drawn struck through.
type Card struct {
	model.VariantResult
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	ImageSrc  string `json:"image_src"`
	Href      string `json:"href"`
	ColorInfo string `json:"color_info"`
	Price     string `json:"price"`
	SalePrice string `json:"sale_price,omitempty"`
}

// Builder composes the variant resolver with the formatters.
type Builder struct {
	resolver *variant.Resolver
	prices   *PriceFormatter
}

// NewBuilder creates a Builder.
func NewBuilder(resolver *variant.Resolver, prices *PriceFormatter) *Builder {
	return &Builder{resolver: resolver, prices: prices}
}

// Resolver returns the underlying variant resolver.
func (b *Builder) Resolver() *variant.Resolver {
	return b.resolver
}

// Build assembles the card for shoe as of now. Like the resolver it has no
// failure path.
func (b *Builder) Build(shoe model.ShoeRecord, now time.Time) Card {
	result := b.resolver.Resolve(shoe, now)

	c := Card{
		VariantResult: result,
		Slug:          shoe.Slug,
		Name:          shoe.Name,
		ImageSrc:      shoe.ImageSrc,
		Href:          ShoePath(shoe.Slug),
		ColorInfo:     Pluralize(ColorWord, shoe.NumOfColors),
		Price:         b.prices.Format(shoe.Price),
	}
	if result.ShowSalePrice {
		c.SalePrice = b.prices.Format(shoe.SalePrice.Decimal)
	}
	return c
}
