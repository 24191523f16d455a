package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fleveque/shoe-card-service/internal/model"
)

func validShoe() model.ShoeRecord {
	return model.ShoeRecord{
		Slug:        "stride",
		Name:        "Stride",
		ImageSrc:    "/img/stride.jpg",
		Price:       decimal.NewFromInt(100),
		ReleaseDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		NumOfColors: 3,
	}
}

func TestShoe(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		mutate    func(s *model.ShoeRecord)
		wantField string
	}{
		{"valid", func(s *model.ShoeRecord) {}, ""},
		{"valid with sale", func(s *model.ShoeRecord) {
			s.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(80))
		}, ""},
		{"zero sale price allowed", func(s *model.ShoeRecord) {
			s.SalePrice = decimal.NewNullDecimal(decimal.Zero)
		}, ""},
		{"missing slug", func(s *model.ShoeRecord) { s.Slug = "" }, "slug"},
		{"missing name", func(s *model.ShoeRecord) { s.Name = "" }, "name"},
		{"negative price", func(s *model.ShoeRecord) {
			s.Price = decimal.NewFromInt(-1)
		}, "price"},
		{"negative colors", func(s *model.ShoeRecord) { s.NumOfColors = -2 }, "num_of_colors"},
		{"negative sale", func(s *model.ShoeRecord) {
			s.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(-5))
		}, "sale_price"},
		{"sale equals price", func(s *model.ShoeRecord) {
			s.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(100))
		}, "sale_price"},
		{"sale above price", func(s *model.ShoeRecord) {
			s.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(150))
		}, "sale_price"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validShoe()
			tt.mutate(&s)
			err := v.Shoe(s)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected valid shoe, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected validation error on %s", tt.wantField)
			}
			fields := FormatError(err)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("expected error for field %s, got %v", tt.wantField, fields)
			}
		})
	}
}

func TestShoes_ReportsIndex(t *testing.T) {
	v := New()
	bad := validShoe()
	bad.Slug = ""

	err := v.Shoes([]model.ShoeRecord{validShoe(), bad})
	if err == nil {
		t.Fatal("expected error for second shoe")
	}
	if got := err.Error(); len(got) < 6 || got[:6] != "shoe 1" {
		t.Errorf("expected error to name shoe 1, got %q", got)
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil) != nil {
		t.Error("expected nil map for nil error")
	}

	got := FormatError(errors.New("boom"))
	if got["error"] != "invalid request format" {
		t.Errorf("expected generic message, got %v", got)
	}

	err := New().Shoe(model.ShoeRecord{Price: decimal.NewFromInt(10)})
	fields := FormatError(err)
	if fields["slug"] != "is required" {
		t.Errorf("expected slug required message, got %v", fields)
	}
}
