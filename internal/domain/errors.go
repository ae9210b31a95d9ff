package domain

import (
	"errors"
	"fmt"
)

var (
	// Standard transaction errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrAccountLocked          = errors.New("account is locked")
	ErrInsufficientFunds      = errors.New("insufficient available funds")
	ErrDuplicateTransactionID = errors.New("duplicate transaction id")

	// Dispute errors
	ErrAccountNotFound         = errors.New("account not found")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrClientMismatch          = errors.New("transaction does not belong to client")
	ErrCannotDisputeWithdrawal = errors.New("withdrawals cannot be disputed")
	ErrAlreadyDisputed         = errors.New("transaction already disputed")
	ErrNotDisputed             = errors.New("transaction not disputed")
	ErrAlreadyChargedBack      = errors.New("transaction already charged back")

	// Ingestion errors
	ErrMalformedRecord = errors.New("malformed record")

	// Reconciliation errors
	ErrInconsistentLedger = errors.New("ledger inconsistency detected")
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrInvalidAmount, "invalid_amount"},
	{ErrAccountLocked, "account_locked"},
	{ErrInsufficientFunds, "insufficient_funds"},
	{ErrDuplicateTransactionID, "duplicate_transaction_id"},
	{ErrAccountNotFound, "account_not_found"},
	{ErrTransactionNotFound, "transaction_not_found"},
	{ErrClientMismatch, "client_mismatch"},
	{ErrCannotDisputeWithdrawal, "cannot_dispute_withdrawal"},
	{ErrAlreadyDisputed, "already_disputed"},
	{ErrNotDisputed, "not_disputed"},
	{ErrAlreadyChargedBack, "already_charged_back"},
}

// ErrorCode maps a ledger rejection to a stable reason code. Unknown errors
// map to "internal".
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "internal"
}

// LedgerError is a per-transaction rejection. The ledger state is exactly as
// it was before the transaction was attempted.
type LedgerError struct {
	Type     string
	TxID     TxID
	ClientID ClientID
	Err      error
}

// NewLedgerError wraps err with the identity of the rejected transaction.
func NewLedgerError(tx Transaction, err error) *LedgerError {
	return &LedgerError{
		Type:     tx.Type(),
		TxID:     tx.ID(),
		ClientID: tx.Client(),
		Err:      err,
	}
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s tx %d for client %d rejected: %v", e.Type, e.TxID, e.ClientID, e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Code returns the reason code of the wrapped rejection.
func (e *LedgerError) Code() string {
	return ErrorCode(e.Err)
}

// IsLedgerError reports whether err is a recoverable per-transaction rejection.
func IsLedgerError(err error) bool {
	var lerr *LedgerError
	return errors.As(err, &lerr)
}
