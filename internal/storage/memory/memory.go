// Package memory is a process-local Storage. Writes are staged per unit of
// work and applied under one lock at commit, after re-checking versions.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/withgossing/bank-app/internal/domain"
	"github.com/withgossing/bank-app/internal/storage"
	"github.com/withgossing/bank-app/internal/storage/transaction"
)

var errUnitDone = errors.New("unit of work already finished")

type Store struct {
	mu           sync.RWMutex
	accounts     map[uuid.UUID]*domain.Account
	numbers      map[string]uuid.UUID
	transactions map[uuid.UUID][]*domain.Transaction
}

var _ storage.Storage = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]*domain.Account),
		numbers:      make(map[string]uuid.UUID),
		transactions: make(map[uuid.UUID][]*domain.Transaction),
	}
}

func (s *Store) Reader() *storage.Reader {
	return &storage.Reader{
		Accounts:     &accountReader{store: s},
		Transactions: &transactionReader{store: s},
	}
}

func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u := &unit{
		store:    s,
		created:  make(map[uuid.UUID]*domain.Account),
		updated:  make(map[uuid.UUID]*domain.Account),
		baseline: make(map[uuid.UUID]int64),
	}
	return storage.NewWriter(u, &accountWriter{unit: u}, &transactionWriter{unit: u}), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) account(id uuid.UUID) (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	return copyAccount(a), true
}

func (s *Store) accountIDByNumber(accountNumber string) (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.numbers[accountNumber]
	return id, ok
}

func (s *Store) hasSequence(accountID uuid.UUID, sequence int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsSequence(s.transactions[accountID], sequence)
}

// unit is one staged unit of work.
type unit struct {
	store *Store

	mu       sync.Mutex
	done     bool
	created  map[uuid.UUID]*domain.Account
	updated  map[uuid.UUID]*domain.Account
	baseline map[uuid.UUID]int64
	appended []*domain.Transaction
}

func (u *unit) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.done {
		return domain.NewStorageError("memory.Commit", errUnitDone)
	}
	u.done = true
	if err := ctx.Err(); err != nil {
		return err
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, a := range u.created {
		if _, ok := s.accounts[id]; ok {
			return fmt.Errorf("memory.Commit: %w", domain.ErrDuplicateKey)
		}
		if _, ok := s.numbers[a.AccountNumber]; ok {
			return fmt.Errorf("memory.Commit: %w", domain.ErrDuplicateKey)
		}
	}
	for id, version := range u.baseline {
		current, ok := s.accounts[id]
		if !ok || current.Version != version {
			return fmt.Errorf("memory.Commit: %w", domain.ErrVersionConflict)
		}
	}
	for _, tx := range u.appended {
		if containsSequence(s.transactions[tx.AccountID], tx.Sequence) {
			return fmt.Errorf("memory.Commit: %w", domain.ErrDuplicateKey)
		}
	}

	for id, a := range u.created {
		s.accounts[id] = a
		s.numbers[a.AccountNumber] = id
	}
	for id, a := range u.updated {
		s.accounts[id] = a
	}
	for _, tx := range u.appended {
		s.transactions[tx.AccountID] = append(s.transactions[tx.AccountID], tx)
	}
	return nil
}

func (u *unit) Rollback(context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.done = true
	u.created = nil
	u.updated = nil
	u.appended = nil
	return nil
}

// view returns the unit's own picture of an account: staged first, then committed.
func (u *unit) view(id uuid.UUID) (*domain.Account, bool) {
	if a, ok := u.updated[id]; ok {
		return copyAccount(a), true
	}
	if a, ok := u.created[id]; ok {
		return copyAccount(a), true
	}
	return u.store.account(id)
}

func (u *unit) lookupNumber(accountNumber string) (uuid.UUID, bool) {
	for id, a := range u.created {
		if a.AccountNumber == accountNumber {
			return id, true
		}
	}
	return u.store.accountIDByNumber(accountNumber)
}

func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	return &c
}

func containsSequence(txs []*domain.Transaction, sequence int64) bool {
	for _, tx := range txs {
		if tx.Sequence == sequence {
			return true
		}
	}
	return false
}

// filterTransactions orders, bounds and limits txs without touching the input.
func filterTransactions(txs []*domain.Transaction, filter *transaction.Filter) []*domain.Transaction {
	if filter == nil {
		filter = &transaction.Filter{}
	}

	desc := filter.Order == transaction.OrderDescending
	result := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Cursor != nil {
			if desc && tx.Sequence >= *filter.Cursor {
				continue
			}
			if !desc && tx.Sequence <= *filter.Cursor {
				continue
			}
		}
		result = append(result, copyTransaction(tx))
	}

	sort.Slice(result, func(i, j int) bool {
		if desc {
			return result[i].Sequence > result[j].Sequence
		}
		return result[i].Sequence < result[j].Sequence
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result
}
