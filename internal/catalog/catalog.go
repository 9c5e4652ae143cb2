// Package catalog serves the read-only deposit products accounts are opened against.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
)

// Catalog resolves products by id. It is reference data and never mutated
// by the ledger.
type Catalog interface {
	Get(productID string) (*domain.Product, error)
	List() []*domain.Product
}

type StaticCatalog struct {
	products []*domain.Product
	byID     map[string]*domain.Product
}

var _ Catalog = (*StaticCatalog)(nil)

// New indexes products, keeping their order for List.
func New(products []*domain.Product) (*StaticCatalog, error) {
	c := &StaticCatalog{
		products: make([]*domain.Product, 0, len(products)),
		byID:     make(map[string]*domain.Product, len(products)),
	}
	for _, p := range products {
		if _, ok := c.byID[p.ID]; ok {
			return nil, fmt.Errorf("catalog.New: duplicate product id %q", p.ID)
		}
		c.byID[p.ID] = p
		c.products = append(c.products, p)
	}
	return c, nil
}

func (c *StaticCatalog) Get(productID string) (*domain.Product, error) {
	p, ok := c.byID[productID]
	if !ok {
		return nil, fmt.Errorf("catalog.Get %q: %w", productID, domain.ErrProductNotFound)
	}
	copied := *p
	return &copied, nil
}

func (c *StaticCatalog) List() []*domain.Product {
	out := make([]*domain.Product, len(c.products))
	for i, p := range c.products {
		copied := *p
		out[i] = &copied
	}
	return out
}

func months(n int) *int {
	return &n
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Default is the catalog used when no product file is configured.
func Default() *StaticCatalog {
	c, err := New([]*domain.Product{
		{
			ID:           "SAV-001",
			Name:         "Everyday Savings",
			Type:         domain.ProductTypeSavings,
			InterestRate: decimal.RequireFromString("2.5"),
			MinAmount:    decimal.Zero,
			IsActive:     true,
		},
		{
			ID:             "FIX-012",
			Name:           "12-Month Fixed Deposit",
			Type:           domain.ProductTypeFixedDeposit,
			InterestRate:   decimal.RequireFromString("3.5"),
			MinAmount:      decimal.RequireFromString("1000000"),
			MaxAmount:      amount("100000000"),
			DurationMonths: months(12),
			IsActive:       true,
		},
		{
			ID:             "REG-024",
			Name:           "24-Month Regular Deposit",
			Type:           domain.ProductTypeRegularDeposit,
			InterestRate:   decimal.RequireFromString("4.0"),
			MinAmount:      decimal.RequireFromString("100000"),
			MaxAmount:      amount("5000000"),
			DurationMonths: months(24),
			IsActive:       true,
		},
		{
			ID:           "SAV-LEGACY",
			Name:         "Legacy Savings",
			Type:         domain.ProductTypeSavings,
			InterestRate: decimal.RequireFromString("1.0"),
			MinAmount:    decimal.Zero,
			IsActive:     false,
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
