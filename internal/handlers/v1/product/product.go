package product

import (
	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/interest"
)

// Product is the API response model for a catalog product.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"productType" enum:"SAVINGS,FIXED_DEPOSIT,REGULAR_DEPOSIT"`
	InterestRate   string  `json:"interestRate" doc:"Annual rate in percent"`
	MinAmount      string  `json:"minAmount"`
	MaxAmount      *string `json:"maxAmount,omitempty"`
	DurationMonths *int    `json:"durationMonths,omitempty"`
	IsActive       bool    `json:"isActive" doc:"Whether new accounts may be opened"`
}

// Projection is the API response model for an interest projection.
type Projection struct {
	Principal     string `json:"principal"`
	GrossInterest string `json:"grossInterest"`
	Tax           string `json:"tax" doc:"Withholding at 15.4%"`
	NetInterest   string `json:"netInterest"`
	TotalAmount   string `json:"totalAmount" doc:"Principal plus net interest"`
}

func fromDomain(p *domain.Product) Product {
	out := Product{
		ID:             p.ID,
		Name:           p.Name,
		Type:           string(p.Type),
		InterestRate:   p.InterestRate.String(),
		MinAmount:      p.MinAmount.String(),
		DurationMonths: p.DurationMonths,
		IsActive:       p.IsActive,
	}
	if p.MaxAmount != nil {
		maxAmount := p.MaxAmount.String()
		out.MaxAmount = &maxAmount
	}
	return out
}

func fromProjection(p *interest.Projection) Projection {
	return Projection{
		Principal:     p.Principal.String(),
		GrossInterest: p.GrossInterest.String(),
		Tax:           p.Tax.String(),
		NetInterest:   p.NetInterest.String(),
		TotalAmount:   p.TotalAmount.String(),
	}
}
