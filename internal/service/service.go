package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/withgossing/bank-app/internal/catalog"
	"github.com/withgossing/bank-app/internal/operator/actions"
	"github.com/withgossing/bank-app/internal/storage"
)

// Processor runs an action in its own unit of work. operator.OperatorDelegator
// is the production implementation.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

type Options struct {
	// MaxWriteAttempts bounds optimistic retries per operation.
	MaxWriteAttempts int
	// CurrencyScale is the number of decimal places in one minor unit.
	CurrencyScale int32
}

// Service holds all business logic services.
type Service struct {
	Authority *AccountAuthority
	Query     *LedgerQuery
	Products  *ProductService
}

func NewService(store storage.Storage, processor Processor, products catalog.Catalog, opts Options, log *logrus.Logger) *Service {
	return &Service{
		Authority: NewAccountAuthority(processor, products, opts, log),
		Query:     NewLedgerQuery(store),
		Products:  NewProductService(products, opts.CurrencyScale),
	}
}
