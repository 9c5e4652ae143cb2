package account

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

var _ IAccountReader = (*Reader)(nil)

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// Get looks an account up by its display number.
func (r *Reader) Get(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return r.findOne(ctx, "accounts.Get", psql.Quote("account_number").EQ(psql.Arg(accountNumber)))
}

func (r *Reader) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return r.findOne(ctx, "accounts.GetByID", psql.Quote("id").EQ(psql.Arg(id)))
}

// ListByOwner returns the owner's accounts oldest first. No accounts is an empty slice.
func (r *Reader) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(sqlconfig.Columns(columns)...),
		sm.From(psql.Quote(tableName)),
		sm.Where(psql.Quote("owner_id").EQ(psql.Arg(ownerID))),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
		sm.OrderBy(psql.Quote("id")).Asc(),
	}
	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.Classify("accounts.ListByOwner", err, nil)
	}

	result := make([]*domain.Account, len(rows))
	for i := range rows {
		result[i] = rowToAccount(&rows[i])
	}
	return result, nil
}

func (r *Reader) findOne(ctx context.Context, op string, where bob.Expression) (*domain.Account, error) {
	query := psql.Select(
		sm.Columns(sqlconfig.Columns(columns)...),
		sm.From(psql.Quote(tableName)),
		sm.Where(where),
	)
	found, err := bob.One(ctx, r.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, sqlconfig.Classify(op, err, domain.ErrAccountNotFound)
	}
	return rowToAccount(&found), nil
}
