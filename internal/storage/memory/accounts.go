package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofrs/uuid/v5"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage/account"
)

type accountReader struct {
	store *Store
}

var _ account.IAccountReader = (*accountReader)(nil)

func (r *accountReader) Get(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id, ok := r.store.accountIDByNumber(accountNumber)
	if !ok {
		return nil, fmt.Errorf("accounts.Get: %w", domain.ErrAccountNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *accountReader) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a, ok := r.store.account(id)
	if !ok {
		return nil, fmt.Errorf("accounts.GetByID: %w", domain.ErrAccountNotFound)
	}
	return a, nil
}

func (r *accountReader) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	result := make([]*domain.Account, 0)
	for _, a := range r.store.accounts {
		if a.OwnerID == ownerID {
			result = append(result, copyAccount(a))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return result, nil
}

type accountWriter struct {
	unit *unit
}

var _ account.IAccountWriter = (*accountWriter)(nil)

func (w *accountWriter) Get(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.unit.mu.Lock()
	defer w.unit.mu.Unlock()

	id, ok := w.unit.lookupNumber(accountNumber)
	if !ok {
		return nil, fmt.Errorf("accounts.Get: %w", domain.ErrAccountNotFound)
	}
	a, ok := w.unit.view(id)
	if !ok {
		return nil, fmt.Errorf("accounts.Get: %w", domain.ErrAccountNotFound)
	}
	return a, nil
}

func (w *accountWriter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.unit.mu.Lock()
	defer w.unit.mu.Unlock()

	a, ok := w.unit.view(id)
	if !ok {
		return nil, fmt.Errorf("accounts.GetByID: %w", domain.ErrAccountNotFound)
	}
	return a, nil
}

func (w *accountWriter) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Account, error) {
	return (&accountReader{store: w.unit.store}).ListByOwner(ctx, ownerID)
}

func (w *accountWriter) Create(ctx context.Context, a *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.unit.mu.Lock()
	defer w.unit.mu.Unlock()
	if w.unit.done {
		return domain.NewStorageError("accounts.Create", errUnitDone)
	}

	if _, ok := w.unit.view(a.ID); ok {
		return fmt.Errorf("accounts.Create: %w", domain.ErrDuplicateKey)
	}
	if _, ok := w.unit.lookupNumber(a.AccountNumber); ok {
		return fmt.Errorf("accounts.Create: %w", domain.ErrDuplicateKey)
	}

	w.unit.created[a.ID] = copyAccount(a)
	return nil
}

func (w *accountWriter) Put(ctx context.Context, a *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.unit.mu.Lock()
	defer w.unit.mu.Unlock()
	if w.unit.done {
		return domain.NewStorageError("accounts.Put", errUnitDone)
	}

	current, ok := w.unit.view(a.ID)
	if !ok || current.Version != a.Version {
		return fmt.Errorf("accounts.Put: %w", domain.ErrVersionConflict)
	}

	next := copyAccount(a)
	next.Version++
	if _, staged := w.unit.created[a.ID]; staged {
		w.unit.created[a.ID] = next
	} else {
		if _, seen := w.unit.baseline[a.ID]; !seen {
			w.unit.baseline[a.ID] = a.Version
		}
		w.unit.updated[a.ID] = next
	}

	a.Version++
	return nil
}
