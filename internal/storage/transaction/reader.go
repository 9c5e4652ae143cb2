package transaction

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage/sqlconfig"
)

type Reader struct {
	exec bob.Executor
}

var _ ITransactionReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

func (r *Reader) ListByAccount(ctx context.Context, accountID uuid.UUID, filter *Filter) ([]*domain.Transaction, error) {
	if filter == nil {
		filter = &Filter{}
	}

	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(sqlconfig.Columns(columns)...),
		sm.From(psql.Quote(tableName)),
		sm.Where(psql.Quote("account_id").EQ(psql.Arg(accountID))),
	}

	sequence := psql.Quote("sequence")
	if filter.Order == OrderDescending {
		if filter.Cursor != nil {
			queryMods = append(queryMods, sm.Where(sequence.LT(psql.Arg(*filter.Cursor))))
		}
		queryMods = append(queryMods, sm.OrderBy(sequence).Desc())
	} else {
		if filter.Cursor != nil {
			queryMods = append(queryMods, sm.Where(sequence.GT(psql.Arg(*filter.Cursor))))
		}
		queryMods = append(queryMods, sm.OrderBy(sequence).Asc())
	}

	if filter.Limit > 0 {
		queryMods = append(queryMods, sm.Limit(filter.Limit))
	}

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.Classify("transactions.ListByAccount", err, nil)
	}

	result := make([]*domain.Transaction, len(rows))
	for i := range rows {
		result[i] = rowToTransaction(&rows[i])
	}
	return result, nil
}
