package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/withgossing/bank-app/internal/storage/account"
	"github.com/withgossing/bank-app/internal/storage/transaction"
)

type Reader struct {
	Accounts     account.IAccountReader
	Transactions transaction.ITransactionReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
	}
}
