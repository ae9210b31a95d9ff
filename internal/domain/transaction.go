package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TxID is the globally unique identifier of a transaction.
type TxID uint32

// Transaction is either a StandardTransaction or a DisputeTransaction.
type Transaction interface {
	Client() ClientID
	ID() TxID
	Type() string

	transaction()
}

// StandardKind is the kind of a balance-changing transaction.
type StandardKind int

const (
	KindDeposit StandardKind = iota + 1
	KindWithdrawal
)

func (k StandardKind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	default:
		return fmt.Sprintf("StandardKind(%d)", int(k))
	}
}

// DisputeKind is the kind of an instruction referencing a standard transaction.
type DisputeKind int

const (
	KindDispute DisputeKind = iota + 1
	KindResolve
	KindChargeback
)

func (k DisputeKind) String() string {
	switch k {
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("DisputeKind(%d)", int(k))
	}
}

// DisputeStatus tracks the dispute lifecycle of a standard transaction.
// The zero value means no dispute has been raised.
type DisputeStatus int

const (
	DisputeStatusNone DisputeStatus = iota
	DisputeStatusUnresolved
	DisputeStatusChargedBack
)

func (s DisputeStatus) String() string {
	switch s {
	case DisputeStatusNone:
		return "none"
	case DisputeStatusUnresolved:
		return "unresolved"
	case DisputeStatusChargedBack:
		return "charged_back"
	default:
		return fmt.Sprintf("DisputeStatus(%d)", int(s))
	}
}

// Transition returns the status that results from applying kind, or the
// rejection for an illegal transition. ChargedBack is terminal.
func (s DisputeStatus) Transition(kind DisputeKind) (DisputeStatus, error) {
	switch kind {
	case KindDispute:
		if s != DisputeStatusNone {
			return s, ErrAlreadyDisputed
		}
		return DisputeStatusUnresolved, nil
	case KindResolve, KindChargeback:
		switch s {
		case DisputeStatusNone:
			return s, ErrNotDisputed
		case DisputeStatusChargedBack:
			return s, ErrAlreadyChargedBack
		}
		if kind == KindResolve {
			return DisputeStatusNone, nil
		}
		return DisputeStatusChargedBack, nil
	default:
		return s, fmt.Errorf("unknown dispute kind %d", int(kind))
	}
}

// StandardTransaction is a deposit or a withdrawal. Once recorded only its
// DisputeStatus changes.
type StandardTransaction struct {
	TxID          TxID
	ClientID      ClientID
	Kind          StandardKind
	Amount        decimal.Decimal
	DisputeStatus DisputeStatus
}

func (t StandardTransaction) Client() ClientID { return t.ClientID }
func (t StandardTransaction) ID() TxID         { return t.TxID }
func (t StandardTransaction) Type() string     { return t.Kind.String() }
func (StandardTransaction) transaction()       {}

// Disputable reports whether the transaction may be the target of a dispute.
// Only deposits can be disputed.
func (t StandardTransaction) Disputable() bool {
	return t.Kind == KindDeposit
}

// DisputeTransaction references a recorded standard transaction. It carries no
// amount and is never stored.
type DisputeTransaction struct {
	TxID     TxID
	ClientID ClientID
	Kind     DisputeKind
}

func (t DisputeTransaction) Client() ClientID { return t.ClientID }
func (t DisputeTransaction) ID() TxID         { return t.TxID }
func (t DisputeTransaction) Type() string     { return t.Kind.String() }
func (DisputeTransaction) transaction()       {}
