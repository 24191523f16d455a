// Package catalog reads shoe listings from JSON or YAML files for the CLI.
// Files are read once; nothing is ever written back.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fleveque/shoe-card-service/internal/model"
	"github.com/fleveque/shoe-card-service/internal/validation"
)

// ErrEmptyCatalog is returned when a catalog file holds no shoes.
var ErrEmptyCatalog = errors.New("catalog is empty")

// yamlShoe mirrors model.ShoeRecord for YAML input. yaml.v3 can't decode
// into decimal.Decimal directly, so amounts are read as their literal text.
type yamlShoe struct {
	Slug        string    `yaml:"slug"`
	Name        string    `yaml:"name"`
	ImageSrc    string    `yaml:"image_src"`
	Price       string    `yaml:"price"`
	SalePrice   *string   `yaml:"sale_price"`
	ReleaseDate time.Time `yaml:"release_date"`
	NumOfColors int       `yaml:"num_of_colors"`
}

func (y yamlShoe) record() (model.ShoeRecord, error) {
	if y.Price == "" {
		return model.ShoeRecord{}, model.ErrMissingPrice
	}
	price, err := decimal.NewFromString(y.Price)
	if err != nil {
		return model.ShoeRecord{}, fmt.Errorf("price %q: %w", y.Price, err)
	}

	s := model.ShoeRecord{
		Slug:        y.Slug,
		Name:        y.Name,
		ImageSrc:    y.ImageSrc,
		Price:       price,
		ReleaseDate: y.ReleaseDate,
		NumOfColors: y.NumOfColors,
	}
	if y.SalePrice != nil {
		sale, err := decimal.NewFromString(*y.SalePrice)
		if err != nil {
			return model.ShoeRecord{}, fmt.Errorf("sale_price %q: %w", *y.SalePrice, err)
		}
		s.SalePrice = decimal.NewNullDecimal(sale)
	}
	return s, nil
}

// Load reads, decodes and validates the catalog at path. The format is
// picked from the extension: .json, .yaml or .yml.
func Load(path string, v *validation.Validator) ([]model.ShoeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("catalog file not found: %s", path)
		}
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	shoes, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := v.Shoes(shoes); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return shoes, nil
}

// Decode parses catalog bytes in the format named by ext.
func Decode(data []byte, ext string) ([]model.ShoeRecord, error) {
	var shoes []model.ShoeRecord

	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &shoes); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	case ".yaml", ".yml":
		var raw []yamlShoe
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
		for i, y := range raw {
			s, err := y.record()
			if err != nil {
				return nil, fmt.Errorf("shoe %d: %w", i, err)
			}
			shoes = append(shoes, s)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}

	if len(shoes) == 0 {
		return nil, ErrEmptyCatalog
	}
	return shoes, nil
}
