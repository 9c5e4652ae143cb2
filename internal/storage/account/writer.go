package account

import (
	"context"
	"fmt"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage/sqlconfig"
)

// Writer runs account mutations on a transaction executor.
type Writer struct {
	exec bob.Executor
	Reader
}

var _ IAccountWriter = (*Writer)(nil)

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

// Create inserts a new account. A taken id or account number is ErrDuplicateKey.
func (w *Writer) Create(ctx context.Context, account *domain.Account) error {
	query := psql.Insert(
		im.Into(psql.Quote(tableName), columns...),
		im.Values(
			psql.Arg(account.ID),
			psql.Arg(account.AccountNumber),
			psql.Arg(account.OwnerID),
			psql.Arg(account.ProductID),
			psql.Arg(account.Balance),
			psql.Arg(string(account.Status)),
			psql.Arg(account.Version),
			psql.Arg(account.CreatedAt),
			psql.Arg(account.UpdatedAt),
		),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return sqlconfig.Classify("accounts.Create", err, nil)
}

// Put writes balance, status and updated_at when the stored version still
// equals account.Version, then advances account.Version.
func (w *Writer) Put(ctx context.Context, account *domain.Account) error {
	query := psql.Update(
		um.Table(psql.Quote(tableName)),
		um.SetCol("balance").ToArg(account.Balance),
		um.SetCol("status").ToArg(string(account.Status)),
		um.SetCol("version").ToArg(account.Version+1),
		um.SetCol("updated_at").ToArg(account.UpdatedAt),
		um.Where(psql.Quote("id").EQ(psql.Arg(account.ID))),
		um.Where(psql.Quote("version").EQ(psql.Arg(account.Version))),
	)
	res, err := bob.Exec(ctx, w.exec, query)
	if err != nil {
		return sqlconfig.Classify("accounts.Put", err, nil)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError("accounts.Put", err)
	}
	if affected == 0 {
		return fmt.Errorf("accounts.Put: %w", domain.ErrVersionConflict)
	}

	account.Version++
	return nil
}
