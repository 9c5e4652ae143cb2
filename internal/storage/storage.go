package storage

import (
	"context"
)

// Storage hands out readers over committed state and units of work for
// mutations. Both the postgres and the memory backends implement it.
type Storage interface {
	Reader() *Reader
	Write(ctx context.Context) (*Writer, error)
	Ping(ctx context.Context) error
	Close() error
}

// Tx ends a unit of work. bob.Tx satisfies it.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
