package transaction

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage/sqlconfig"
)

type Writer struct {
	exec bob.Executor
	Reader
}

var _ ITransactionWriter = (*Writer)(nil)

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		exec: exec,
		Reader: Reader{
			exec: exec,
		},
	}
}

// Append inserts tx. A repeated (account_id, sequence) is ErrDuplicateKey.
func (w *Writer) Append(ctx context.Context, tx *domain.Transaction) error {
	query := psql.Insert(
		im.Into(psql.Quote(tableName), columns...),
		im.Values(
			psql.Arg(tx.ID),
			psql.Arg(tx.AccountID),
			psql.Arg(tx.Sequence),
			psql.Arg(string(tx.Type)),
			psql.Arg(tx.Amount),
			psql.Arg(tx.BalanceAfter),
			psql.Arg(tx.CreatedAt),
		),
	)
	_, err := bob.Exec(ctx, w.exec, query)
	return sqlconfig.Classify("transactions.Append", err, nil)
}
