package domain

import (
	"github.com/shopspring/decimal"
)

// ClientID identifies the owner of an account.
type ClientID uint16

// Account represents a client's balances in the ledger.
type Account struct {
	ClientID  ClientID
	Available decimal.Decimal
	Held      decimal.Decimal
	Locked    bool
}

// NewAccount returns a zeroed, unlocked account for clientID.
func NewAccount(clientID ClientID) *Account {
	return &Account{
		ClientID:  clientID,
		Available: decimal.Zero,
		Held:      decimal.Zero,
	}
}

// Total is the sum of available and held funds.
func (a *Account) Total() decimal.Decimal {
	return a.Available.Add(a.Held)
}

// ValidateStandard checks whether a deposit or withdrawal of amount can be
// applied to the account. It does not modify the account.
func (a *Account) ValidateStandard(kind StandardKind, amount decimal.Decimal) error {
	if a.Locked {
		return ErrAccountLocked
	}

	if kind == KindWithdrawal && amount.GreaterThan(a.Available) {
		return ErrInsufficientFunds
	}

	return nil
}

// ApplyStandard credits or debits available funds.
func (a *Account) ApplyStandard(kind StandardKind, amount decimal.Decimal) {
	switch kind {
	case KindDeposit:
		a.Available = a.Available.Add(amount)
	case KindWithdrawal:
		a.Available = a.Available.Sub(amount)
	}
}

// Hold moves amount from available to held. Available may go negative.
func (a *Account) Hold(amount decimal.Decimal) {
	a.Available = a.Available.Sub(amount)
	a.Held = a.Held.Add(amount)
}

// Release moves amount from held back to available.
func (a *Account) Release(amount decimal.Decimal) {
	a.Available = a.Available.Add(amount)
	a.Held = a.Held.Sub(amount)
}

// ChargeBack removes amount from held and locks the account.
func (a *Account) ChargeBack(amount decimal.Decimal) {
	a.Held = a.Held.Sub(amount)
	a.Locked = true
}
