package usecase

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/payments-engine/internal/domain"
)

// LedgerUseCase applies transactions to the store. It is the only component
// that mutates balances.
type LedgerUseCase struct {
	mu    sync.Mutex
	store LedgerStore
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(store LedgerStore) *LedgerUseCase {
	return &LedgerUseCase{store: store}
}

// Apply validates and applies a single transaction. A rejection is returned as
// a *domain.LedgerError and leaves the store untouched.
func (uc *LedgerUseCase) Apply(tx domain.Transaction) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var err error
	switch t := tx.(type) {
	case domain.StandardTransaction:
		err = uc.applyStandard(t)
	case domain.DisputeTransaction:
		err = uc.applyDispute(t)
	default:
		return fmt.Errorf("unsupported transaction type %T", tx)
	}

	if err != nil {
		return domain.NewLedgerError(tx, err)
	}

	return nil
}

func (uc *LedgerUseCase) applyStandard(tx domain.StandardTransaction) error {
	if tx.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	// Validate against a zeroed view so a rejected transaction for an unseen
	// client does not materialize an account.
	view := domain.NewAccount(tx.ClientID)
	if existing, ok := uc.store.GetAccount(tx.ClientID); ok {
		view = existing
	}

	if err := view.ValidateStandard(tx.Kind, tx.Amount); err != nil {
		return err
	}

	record := &domain.StandardTransaction{
		TxID:          tx.TxID,
		ClientID:      tx.ClientID,
		Kind:          tx.Kind,
		Amount:        tx.Amount,
		DisputeStatus: domain.DisputeStatusNone,
	}

	// Nothing has changed yet if the id is a duplicate.
	if err := uc.store.InsertTransaction(record); err != nil {
		return err
	}

	account := uc.store.GetOrCreateAccount(tx.ClientID)
	account.ApplyStandard(tx.Kind, tx.Amount)

	return nil
}

// applyDispute handles dispute, resolve and chargeback. Locked accounts still
// accept them.
func (uc *LedgerUseCase) applyDispute(tx domain.DisputeTransaction) error {
	account, ok := uc.store.GetAccount(tx.ClientID)
	if !ok {
		return domain.ErrAccountNotFound
	}

	target, ok := uc.store.GetTransaction(tx.TxID)
	if !ok {
		return domain.ErrTransactionNotFound
	}

	if target.ClientID != tx.ClientID {
		return domain.ErrClientMismatch
	}

	if !target.Disputable() {
		return domain.ErrCannotDisputeWithdrawal
	}

	next, err := target.DisputeStatus.Transition(tx.Kind)
	if err != nil {
		return err
	}

	target.DisputeStatus = next

	switch tx.Kind {
	case domain.KindDispute:
		account.Hold(target.Amount)
	case domain.KindResolve:
		account.Release(target.Amount)
	case domain.KindChargeback:
		account.ChargeBack(target.Amount)
	}

	return nil
}

// Accounts returns a snapshot of all accounts ordered by client id.
func (uc *LedgerUseCase) Accounts() []domain.Account {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stored := uc.store.Accounts()
	accounts := make([]domain.Account, 0, len(stored))
	for _, a := range stored {
		accounts = append(accounts, *a)
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ClientID < accounts[j].ClientID
	})

	return accounts
}

// Account returns a snapshot of a single account.
func (uc *LedgerUseCase) Account(clientID domain.ClientID) (domain.Account, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, ok := uc.store.GetAccount(clientID)
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return *account, nil
}

// Snapshot returns accounts and recorded standard transactions as of the same
// instant.
func (uc *LedgerUseCase) Snapshot() ([]domain.Account, []domain.StandardTransaction) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	storedAccounts := uc.store.Accounts()
	accounts := make([]domain.Account, 0, len(storedAccounts))
	for _, a := range storedAccounts {
		accounts = append(accounts, *a)
	}

	storedTxs := uc.store.Transactions()
	txs := make([]domain.StandardTransaction, 0, len(storedTxs))
	for _, t := range storedTxs {
		txs = append(txs, *t)
	}

	return accounts, txs
}
