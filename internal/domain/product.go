package domain

import "github.com/shopspring/decimal"

type ProductType string

const (
	ProductTypeSavings        ProductType = "SAVINGS"
	ProductTypeFixedDeposit   ProductType = "FIXED_DEPOSIT"
	ProductTypeRegularDeposit ProductType = "REGULAR_DEPOSIT"
)

// Product is read-only reference data owned by the product catalog.
type Product struct {
	ID             string
	Name           string
	Type           ProductType
	InterestRate   decimal.Decimal
	MinAmount      decimal.Decimal
	MaxAmount      *decimal.Decimal
	DurationMonths *int
	IsActive       bool
}
