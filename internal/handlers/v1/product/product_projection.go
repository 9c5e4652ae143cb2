package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/handlers/v1/apierror"
	"github.com/withgossing/bank-app/internal/interest"
	"github.com/withgossing/bank-app/internal/service"
)

// DefaultPrincipal is the 10,000,000 KRW illustration amount.
const DefaultPrincipal = "10000000"

type ProductProjectionInput struct {
	ProductID string `path:"productId"`
	Principal string `query:"principal" default:"10000000" maxLength:"48" doc:"Amount to project, 10,000,000 when omitted"`
}

type ProductProjectionResponseBody struct {
	Product    Product    `json:"product"`
	Months     int        `json:"months" doc:"Term used for the projection"`
	Projection Projection `json:"projection"`
}

type ProductProjectionOutput struct {
	Body ProductProjectionResponseBody
}

type productProjector interface {
	ProjectForProduct(productID string, principal decimal.Decimal) (*domain.Product, *interest.Projection, error)
}

// ProductProjectionHandler handles GET /v1/product/{productId}/projection.
type ProductProjectionHandler struct {
	ProductService productProjector
}

func NewProductProjectionHandler(svc productProjector) *ProductProjectionHandler {
	return &ProductProjectionHandler{ProductService: svc}
}

func (h *ProductProjectionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "product-projection",
		Method:      http.MethodGet,
		Path:        "/v1/product/{productId}/projection",
		Summary:     "Project interest for a product",
		Description: "Projects after-tax simple interest at the product's rate over its term.",
		Tags:        []string{"Products"},
	}, h.handle)
}

func parsePrincipal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		raw = DefaultPrincipal
	}
	principal, err := domain.ParseDecimal(raw)
	if err != nil {
		return decimal.Zero, apierror.BadRequest(domain.ErrInvalidProjection, "principal must be a decimal number")
	}
	return principal, nil
}

func (h *ProductProjectionHandler) handle(_ context.Context, input *ProductProjectionInput) (*ProductProjectionOutput, error) {
	principal, err := parsePrincipal(input.Principal)
	if err != nil {
		return nil, err
	}

	product, projection, err := h.ProductService.ProjectForProduct(input.ProductID, principal)
	if err != nil {
		return nil, apierror.From(err)
	}

	months := service.DefaultProjectionMonths
	if product.DurationMonths != nil {
		months = *product.DurationMonths
	}

	return &ProductProjectionOutput{Body: ProductProjectionResponseBody{
		Product:    fromDomain(product),
		Months:     months,
		Projection: fromProjection(projection),
	}}, nil
}
