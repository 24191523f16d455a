// Package model defines the core data types for the shoe card service.
// Struct tags map fields onto JSON (API bodies) and validation rules.
package model

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Variant is the display classification of a product card.
// Go doesn't have enums, so we use a typed string with explicit values.
type Variant string

const (
	VariantOnSale     Variant = "on-sale"
	VariantNewRelease Variant = "new-release"
	VariantDefault    Variant = "default"
)

// AllVariants is the ordered list of variants, highest priority first.
var AllVariants = []Variant{VariantOnSale, VariantNewRelease, VariantDefault}

// FlagColor is a symbolic key into the renderer's color palette.
type FlagColor string

const (
	FlagColorNone      FlagColor = ""
	FlagColorPrimary   FlagColor = "primary"
	FlagColorSecondary FlagColor = "secondary"
)

// ShoeRecord is a single shoe listing as supplied by the caller.
//
// SalePrice is a NullDecimal so that presence is explicit: a Valid zero is
// still a sale price. Price < 0 or SalePrice >= Price are rejected at the
// input boundary (see internal/validation), never by the resolver.
type ShoeRecord struct {
	Slug        string              `json:"slug" validate:"required"`
	Name        string              `json:"name" validate:"required"`
	ImageSrc    string              `json:"image_src"`
	Price       decimal.Decimal     `json:"price" validate:"gte=0"`
	SalePrice   decimal.NullDecimal `json:"sale_price" validate:"omitempty,gte=0"`
	ReleaseDate time.Time           `json:"release_date"`
	NumOfColors int                 `json:"num_of_colors" validate:"gte=0"`
}

// ErrMissingPrice is returned when a JSON shoe has no price, or a null one.
// A zero price has to be written out.
var ErrMissingPrice = errors.New("price is required")

// UnmarshalJSON decodes a shoe and rejects records without a price, which
// would otherwise read as a zero Decimal.
func (s *ShoeRecord) UnmarshalJSON(data []byte) error {
	type plain ShoeRecord
	aux := struct {
		*plain
		Price *decimal.Decimal `json:"price"`
	}{plain: (*plain)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Price == nil {
		return ErrMissingPrice
	}
	s.Price = *aux.Price
	return nil
}

// OnSale reports whether a sale price is present, whatever its value.
func (s *ShoeRecord) OnSale() bool {
	return s.SalePrice.Valid
}

// VariantResult is the outcome of resolving a ShoeRecord. It is a plain
// value: two results are equal when their fields are equal.
type VariantResult struct {
	Variant           Variant   `json:"variant"`
	FlagLabel         string    `json:"flag_label"`
	FlagColorKey      FlagColor `json:"flag_color_key"`
	ShowOriginalPrice bool      `json:"show_original_price"`
	ShowSalePrice     bool      `json:"show_sale_price"`
}

// HasFlag returns whether the card should draw a flag badge at all.
func (r VariantResult) HasFlag() bool {
	return r.FlagLabel != ""
}
