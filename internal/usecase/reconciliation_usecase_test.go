package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/payments-engine/internal/adapter/repository/memory"
	"github.com/iho/payments-engine/internal/domain"
	"github.com/iho/payments-engine/internal/usecase"
	"github.com/iho/payments-engine/internal/usecase/mocks"
)

func newReconciledLedger(t *testing.T, txs ...domain.Transaction) *usecase.LedgerUseCase {
	t.Helper()

	ledger := usecase.NewLedgerUseCase(memory.NewStore())
	for _, tx := range txs {
		_ = ledger.Apply(tx)
	}

	return ledger
}

func TestReconcileAllAccounts_ConsistentLedger(t *testing.T) {
	t.Parallel()

	ledger := newReconciledLedger(t,
		deposit(1, 1, "1.0"),
		withdrawal(1, 2, "0.5"),
		dispute(1, 1),
		chargeback(1, 1),
		deposit(2, 3, "4"),
		deposit(2, 4, "1.25"),
		dispute(2, 4),
		deposit(3, 5, "3"),
		dispute(3, 5),
		resolve(3, 5),
		withdrawal(3, 6, "9"), // rejected
	)

	uc := usecase.NewReconciliationUseCase(ledger)

	results, err := uc.ReconcileAllAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	for i, r := range results {
		if r.ClientID != domain.ClientID(i+1) {
			t.Fatalf("expected results ordered by client, got %d at %d", r.ClientID, i)
		}
		if !r.IsReconciled {
			t.Fatalf("expected client %d to reconcile: %+v", r.ClientID, r)
		}
		if r.LastChecked.IsZero() {
			t.Fatal("expected LastChecked timestamp to be set")
		}
	}

	if !results[0].Locked || !results[0].HasChargeback {
		t.Fatalf("expected client 1 to be locked by a chargeback: %+v", results[0])
	}

	if !results[1].ExpectedHeld.Equal(dec("1.25")) {
		t.Fatalf("expected held 1.25 for client 2, got %s", results[1].ExpectedHeld)
	}

	if err := uc.CheckLedgerConsistency(context.Background()); err != nil {
		t.Fatalf("expected consistent ledger, got %v", err)
	}
}

func TestReconcileAccount(t *testing.T) {
	t.Parallel()

	ledger := newReconciledLedger(t, deposit(1, 1, "10"), withdrawal(1, 2, "4"))
	uc := usecase.NewReconciliationUseCase(ledger)

	result, err := uc.ReconcileAccount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.RecordedTotal.Equal(dec("6")) || !result.ExpectedTotal.Equal(dec("6")) {
		t.Fatalf("expected total 6, got recorded=%s expected=%s", result.RecordedTotal, result.ExpectedTotal)
	}

	if !result.Difference().IsZero() {
		t.Fatalf("expected zero difference, got %s", result.Difference())
	}

	if _, err := uc.ReconcileAccount(context.Background(), 2); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}

func TestReconciliation_DetectsDiscrepancies(t *testing.T) {
	t.Parallel()

	tampered := domain.NewAccount(1)
	tampered.Available = dec("5")

	lockedWithoutChargeback := domain.NewAccount(2)
	lockedWithoutChargeback.Available = dec("1")
	lockedWithoutChargeback.Locked = true

	txs := []domain.StandardTransaction{
		{TxID: 1, ClientID: 1, Kind: domain.KindDeposit, Amount: dec("4")},
		{TxID: 2, ClientID: 2, Kind: domain.KindDeposit, Amount: dec("1")},
		{TxID: 3, ClientID: 3, Kind: domain.KindDeposit, Amount: dec("2")},
	}

	ctrl := gomock.NewController(t)
	snapshotter := mocks.NewMockLedgerSnapshotter(ctrl)
	snapshotter.EXPECT().Snapshot().Return(
		[]domain.Account{*tampered, *lockedWithoutChargeback},
		txs,
	).AnyTimes()

	uc := usecase.NewReconciliationUseCase(snapshotter)

	report, err := uc.GenerateReconciliationReport(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalAccounts != 3 {
		t.Fatalf("expected 3 checked accounts, got %d", report.TotalAccounts)
	}

	if report.ReconciledAccounts != 0 || len(report.Discrepancies) != 3 {
		t.Fatalf("expected every account to be flagged, got %+v", report)
	}

	if report.LedgerConsistent {
		t.Fatal("expected ledger to be reported inconsistent")
	}

	if !report.Discrepancies[0].Difference().Equal(dec("1")) {
		t.Fatalf("expected difference 1 for client 1, got %s", report.Discrepancies[0].Difference())
	}

	err = uc.CheckLedgerConsistency(context.Background())
	if !errors.Is(err, domain.ErrInconsistentLedger) {
		t.Fatalf("expected inconsistency error, got %v", err)
	}
}

func TestReconciliation_CancelledContext(t *testing.T) {
	t.Parallel()

	uc := usecase.NewReconciliationUseCase(newReconciledLedger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := uc.GenerateReconciliationReport(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
