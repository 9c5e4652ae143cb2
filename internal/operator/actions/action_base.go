package actions

import (
	"context"

	"github.com/withgossing/bank-app/internal/storage"
)

// IAction is one mutation run inside a unit of work. Perform may be called
// again on a fresh writer after a version conflict, so it must not carry
// state between calls other than its results.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
