package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
	"github.com/withgossing/bank-app/internal/interest"
)

type ProjectInterestInput struct {
	Body ProjectInterestBody
}

type ProjectInterestBody struct {
	Principal    string `json:"principal" minLength:"1" maxLength:"48"`
	InterestRate string `json:"interestRate" minLength:"1" maxLength:"48" doc:"Annual rate in percent"`
	Months       int    `json:"months" minimum:"0"`
}

type ProjectInterestOutput struct {
	Body Projection
}

type interestProjector interface {
	ProjectInterest(principal, annualRatePercent decimal.Decimal, months int) (*interest.Projection, error)
}

// ProjectInterestHandler handles POST /v1/interest/projection.
type ProjectInterestHandler struct {
	ProductService interestProjector
}

func NewProjectInterestHandler(svc interestProjector) *ProjectInterestHandler {
	return &ProjectInterestHandler{ProductService: svc}
}

func (h *ProjectInterestHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "project-interest",
		Method:      http.MethodPost,
		Path:        "/v1/interest/projection",
		Summary:     "Project interest",
		Description: "Projects after-tax simple interest for an arbitrary principal, rate and term.",
		Tags:        []string{"Products"},
	}, h.handle)
}

func (h *ProjectInterestHandler) handle(_ context.Context, input *ProjectInterestInput) (*ProjectInterestOutput, error) {
	principal, err := domain.ParseDecimal(input.Body.Principal)
	if err != nil {
		return nil, apierror.BadRequest(domain.ErrInvalidProjection, "principal must be a decimal number")
	}
	rate, err := domain.ParseDecimal(input.Body.InterestRate)
	if err != nil {
		return nil, apierror.BadRequest(domain.ErrInvalidProjection, "interestRate must be a decimal number")
	}

	projection, err := h.ProductService.ProjectInterest(principal, rate, input.Body.Months)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &ProjectInterestOutput{Body: fromProjection(projection)}, nil
}
