// Package sqlconfig holds what the bob-backed tables share: column helpers
// and translation of driver errors into ledger errors.
package sqlconfig

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/stephenafamo/bob/dialect/psql"

	"github.com/withgossing/bank-app/internal/domain"
)

const (
	uniqueViolation        = "23505"
	numericValueOutOfRange = "22003"
)

// Columns quotes column names for sm.Columns.
func Columns(names []string) []any {
	quoted := make([]any, len(names))
	for i, name := range names {
		quoted[i] = psql.Quote(name)
	}
	return quoted
}

// IsUniqueViolation reports whether err is a postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func isNumericOverflow(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == numericValueOutOfRange
}

// Classify maps a driver error from op into the ledger taxonomy. notFound is
// returned for sql.ErrNoRows; nil leaves ErrNoRows classified as storage.
func Classify(op string, err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows) && notFound != nil:
		return fmt.Errorf("%s: %w", op, notFound)
	case IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateKey)
	case isNumericOverflow(err):
		return fmt.Errorf("%s: %w", op, domain.ErrInvalidAmount)
	default:
		return domain.NewStorageError(op, err)
	}
}
