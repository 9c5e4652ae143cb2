package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/withgossing/bank-app/internal/domain"
)

type productFile struct {
	Products []productEntry `yaml:"products" validate:"required,min=1,dive"`
}

type productEntry struct {
	ID             string  `yaml:"id" validate:"required"`
	Name           string  `yaml:"name" validate:"required"`
	Type           string  `yaml:"type" validate:"oneof=SAVINGS FIXED_DEPOSIT REGULAR_DEPOSIT"`
	InterestRate   string  `yaml:"interestRate" validate:"required,numeric"`
	MinAmount      string  `yaml:"minAmount" validate:"omitempty,numeric"`
	MaxAmount      *string `yaml:"maxAmount" validate:"omitempty,numeric"`
	DurationMonths *int    `yaml:"durationMonths" validate:"omitempty,min=1"`
	IsActive       bool    `yaml:"isActive"`
}

// LoadFile reads a YAML product list.
func LoadFile(path string) (*StaticCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog.LoadFile: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*StaticCatalog, error) {
	var file productFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	products := make([]*domain.Product, 0, len(file.Products))
	for _, entry := range file.Products {
		p, err := entry.toProduct()
		if err != nil {
			return nil, fmt.Errorf("catalog.Parse %q: %w", entry.ID, err)
		}
		products = append(products, p)
	}
	return New(products)
}

func (e productEntry) toProduct() (*domain.Product, error) {
	rate, err := decimal.NewFromString(e.InterestRate)
	if err != nil {
		return nil, err
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("interest rate %s is negative", rate)
	}

	minAmount := decimal.Zero
	if e.MinAmount != "" {
		if minAmount, err = decimal.NewFromString(e.MinAmount); err != nil {
			return nil, err
		}
	}
	if minAmount.IsNegative() {
		return nil, fmt.Errorf("min amount %s is negative", minAmount)
	}

	p := &domain.Product{
		ID:             e.ID,
		Name:           e.Name,
		Type:           domain.ProductType(e.Type),
		InterestRate:   rate,
		MinAmount:      minAmount,
		DurationMonths: e.DurationMonths,
		IsActive:       e.IsActive,
	}

	if e.MaxAmount != nil {
		maxAmount, err := decimal.NewFromString(*e.MaxAmount)
		if err != nil {
			return nil, err
		}
		if maxAmount.LessThan(minAmount) {
			return nil, fmt.Errorf("max amount %s is below min amount %s", maxAmount, minAmount)
		}
		p.MaxAmount = &maxAmount
	}

	return p, nil
}
