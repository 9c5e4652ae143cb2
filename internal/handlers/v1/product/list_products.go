package product

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/withgossing/bank-app/internal/domain"
)

type ListProductsResponseBody struct {
	Products []Product `json:"products"`
}

type ListProductsOutput struct {
	Body ListProductsResponseBody
}

type productLister interface {
	ListProducts() []*domain.Product
}

// ListProductsHandler handles GET /v1/products.
type ListProductsHandler struct {
	ProductService productLister
}

func NewListProductsHandler(svc productLister) *ListProductsHandler {
	return &ListProductsHandler{ProductService: svc}
}

func (h *ListProductsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-products",
		Method:      http.MethodGet,
		Path:        "/v1/products",
		Summary:     "List products",
		Description: "Returns the product catalog, including products closed to new accounts.",
		Tags:        []string{"Products"},
	}, h.handle)
}

func (h *ListProductsHandler) handle(_ context.Context, _ *struct{}) (*ListProductsOutput, error) {
	products := h.ProductService.ListProducts()
	resp := ListProductsResponseBody{Products: make([]Product, len(products))}
	for i, p := range products {
		resp.Products[i] = fromDomain(p)
	}
	return &ListProductsOutput{Body: resp}, nil
}
