package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDisputeStatus_Transition(t *testing.T) {
	tests := []struct {
		name        string
		from        DisputeStatus
		kind        DisputeKind
		want        DisputeStatus
		expectError error
	}{
		{name: "dispute undisputed", from: DisputeStatusNone, kind: KindDispute, want: DisputeStatusUnresolved},
		{name: "dispute unresolved", from: DisputeStatusUnresolved, kind: KindDispute, want: DisputeStatusUnresolved, expectError: ErrAlreadyDisputed},
		{name: "dispute charged back", from: DisputeStatusChargedBack, kind: KindDispute, want: DisputeStatusChargedBack, expectError: ErrAlreadyDisputed},
		{name: "resolve undisputed", from: DisputeStatusNone, kind: KindResolve, want: DisputeStatusNone, expectError: ErrNotDisputed},
		{name: "resolve unresolved", from: DisputeStatusUnresolved, kind: KindResolve, want: DisputeStatusNone},
		{name: "resolve charged back", from: DisputeStatusChargedBack, kind: KindResolve, want: DisputeStatusChargedBack, expectError: ErrAlreadyChargedBack},
		{name: "chargeback undisputed", from: DisputeStatusNone, kind: KindChargeback, want: DisputeStatusNone, expectError: ErrNotDisputed},
		{name: "chargeback unresolved", from: DisputeStatusUnresolved, kind: KindChargeback, want: DisputeStatusChargedBack},
		{name: "chargeback charged back", from: DisputeStatusChargedBack, kind: KindChargeback, want: DisputeStatusChargedBack, expectError: ErrAlreadyChargedBack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.kind)

			if tt.expectError == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expectError != nil && !errors.Is(err, tt.expectError) {
				t.Fatalf("expected error %v, got %v", tt.expectError, err)
			}
			if got != tt.want {
				t.Fatalf("Transition() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDisputeStatus_TransitionUnknownKind(t *testing.T) {
	if _, err := DisputeStatusNone.Transition(DisputeKind(99)); err == nil {
		t.Fatal("expected error for unknown dispute kind")
	}
}

func TestStandardTransaction_Disputable(t *testing.T) {
	deposit := StandardTransaction{Kind: KindDeposit, Amount: decimal.NewFromInt(1)}
	withdrawal := StandardTransaction{Kind: KindWithdrawal, Amount: decimal.NewFromInt(1)}

	if !deposit.Disputable() {
		t.Error("expected deposit to be disputable")
	}
	if withdrawal.Disputable() {
		t.Error("expected withdrawal not to be disputable")
	}
}

func TestTransaction_Identity(t *testing.T) {
	var txs = []Transaction{
		StandardTransaction{TxID: 7, ClientID: 3, Kind: KindWithdrawal},
		DisputeTransaction{TxID: 7, ClientID: 3, Kind: KindChargeback},
	}
	wantTypes := []string{"withdrawal", "chargeback"}

	for i, tx := range txs {
		if tx.ID() != 7 || tx.Client() != 3 {
			t.Errorf("unexpected identity for %T: tx=%d client=%d", tx, tx.ID(), tx.Client())
		}
		if tx.Type() != wantTypes[i] {
			t.Errorf("expected type %q, got %q", wantTypes[i], tx.Type())
		}
	}
}

func TestKindStrings(t *testing.T) {
	if KindDeposit.String() != "deposit" || KindResolve.String() != "resolve" {
		t.Fatalf("unexpected kind strings: %s %s", KindDeposit, KindResolve)
	}
	if StandardKind(0).String() != "StandardKind(0)" {
		t.Fatalf("unexpected unknown kind string: %s", StandardKind(0))
	}
	if DisputeStatusChargedBack.String() != "charged_back" {
		t.Fatalf("unexpected status string: %s", DisputeStatusChargedBack)
	}
}
