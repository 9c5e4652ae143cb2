package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/catalog"
	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/interest"
)

// DefaultProjectionMonths is the term used for products without a duration.
const DefaultProjectionMonths = 12

type ProductService struct {
	catalog catalog.Catalog
	scale   int32
}

func NewProductService(products catalog.Catalog, scale int32) *ProductService {
	return &ProductService{catalog: products, scale: scale}
}

func (s *ProductService) ListProducts() []*domain.Product {
	return s.catalog.List()
}

func (s *ProductService) GetProduct(productID string) (*domain.Product, error) {
	return s.catalog.Get(productID)
}

func (s *ProductService) ProjectInterest(principal, annualRatePercent decimal.Decimal, months int) (*interest.Projection, error) {
	projection, err := interest.Project(principal, annualRatePercent, months, s.scale)
	if err != nil {
		return nil, fmt.Errorf("ProjectInterest: %w", err)
	}
	return projection, nil
}

// ProjectForProduct projects principal at the product's rate over its term.
func (s *ProductService) ProjectForProduct(productID string, principal decimal.Decimal) (*domain.Product, *interest.Projection, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, nil, fmt.Errorf("ProjectForProduct: %w", err)
	}

	months := DefaultProjectionMonths
	if product.DurationMonths != nil {
		months = *product.DurationMonths
	}

	projection, err := s.ProjectInterest(principal, product.InterestRate, months)
	if err != nil {
		return nil, nil, err
	}
	return product, projection, nil
}
