package repositories

import "context"

// TxFn runs inside a transaction. Repositories called with the ctx it
// receives join that transaction.
type TxFn func(ctx context.Context) error

// TransactionManager runs a TxFn in a transaction, committing on nil and
// rolling back on error.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
