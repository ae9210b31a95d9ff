package memory

import (
	"github.com/iho/payments-engine/internal/domain"
)

// Store keeps accounts and standard transactions in maps keyed by client id
// and transaction id. It performs no business validation and is not safe for
// concurrent use; the ledger serializes access.
type Store struct {
	accounts     map[domain.ClientID]*domain.Account
	transactions map[domain.TxID]*domain.StandardTransaction
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[domain.ClientID]*domain.Account),
		transactions: make(map[domain.TxID]*domain.StandardTransaction),
	}
}

// GetOrCreateAccount returns the client's account, inserting a zeroed one if
// it does not exist yet.
func (s *Store) GetOrCreateAccount(clientID domain.ClientID) *domain.Account {
	if account, ok := s.accounts[clientID]; ok {
		return account
	}

	account := domain.NewAccount(clientID)
	s.accounts[clientID] = account

	return account
}

// GetAccount returns the client's account if it exists.
func (s *Store) GetAccount(clientID domain.ClientID) (*domain.Account, bool) {
	account, ok := s.accounts[clientID]
	return account, ok
}

// InsertTransaction records tx. An already recorded id is rejected with
// domain.ErrDuplicateTransactionID and the existing record is kept.
func (s *Store) InsertTransaction(tx *domain.StandardTransaction) error {
	if _, exists := s.transactions[tx.TxID]; exists {
		return domain.ErrDuplicateTransactionID
	}

	s.transactions[tx.TxID] = tx

	return nil
}

// GetTransaction returns the recorded transaction with id txID.
func (s *Store) GetTransaction(txID domain.TxID) (*domain.StandardTransaction, bool) {
	tx, ok := s.transactions[txID]
	return tx, ok
}

// Accounts returns every stored account in no particular order.
func (s *Store) Accounts() []*domain.Account {
	accounts := make([]*domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account)
	}

	return accounts
}

// Transactions returns every recorded transaction in no particular order.
func (s *Store) Transactions() []*domain.StandardTransaction {
	txs := make([]*domain.StandardTransaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		txs = append(txs, tx)
	}

	return txs
}
