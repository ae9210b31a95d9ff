package usecase

import (
	"github.com/iho/payments-engine/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

// LedgerStore defines keyed storage for accounts and standard transactions.
// Implementations perform no business validation.
type LedgerStore interface {
	// GetOrCreateAccount returns the client's account, inserting a zeroed one
	// if none exists.
	GetOrCreateAccount(clientID domain.ClientID) *domain.Account
	GetAccount(clientID domain.ClientID) (*domain.Account, bool)
	// InsertTransaction records tx, failing with domain.ErrDuplicateTransactionID
	// if its id is already taken.
	InsertTransaction(tx *domain.StandardTransaction) error
	GetTransaction(txID domain.TxID) (*domain.StandardTransaction, bool)
	Accounts() []*domain.Account
	Transactions() []*domain.StandardTransaction
}

// TransactionApplier applies transactions to the ledger one at a time.
type TransactionApplier interface {
	Apply(tx domain.Transaction) error
	Accounts() []domain.Account
}

// LedgerSnapshotter exposes a consistent copy of the ledger state.
type LedgerSnapshotter interface {
	Snapshot() ([]domain.Account, []domain.StandardTransaction)
}

// TransactionSource yields transactions in arrival order. Next returns io.EOF
// once the source is exhausted.
type TransactionSource interface {
	Next() (domain.Transaction, error)
}

// AccountSink renders the final account set.
type AccountSink interface {
	WriteAccounts(accounts []domain.Account) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
