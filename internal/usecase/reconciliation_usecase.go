package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payments-engine/internal/domain"
)

// ReconciliationUseCase recomputes balances from the recorded transaction
// history and compares them with the stored accounts.
type ReconciliationUseCase struct {
	ledger LedgerSnapshotter
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledger LedgerSnapshotter) *ReconciliationUseCase {
	return &ReconciliationUseCase{ledger: ledger}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	ClientID      domain.ClientID
	RecordedHeld  decimal.Decimal
	ExpectedHeld  decimal.Decimal
	RecordedTotal decimal.Decimal
	ExpectedTotal decimal.Decimal
	Locked        bool
	HasChargeback bool
	IsReconciled  bool
	LastChecked   time.Time
}

// Difference is the recorded total minus the expected total.
func (r *ReconciliationResult) Difference() decimal.Decimal {
	return r.RecordedTotal.Sub(r.ExpectedTotal)
}

type expectedBalances struct {
	held       decimal.Decimal
	total      decimal.Decimal
	chargeback bool
}

// ReconcileAccount checks a single account against its transactions.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, clientID domain.ClientID) (*ReconciliationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accounts, txs := uc.ledger.Snapshot()

	for i := range accounts {
		if accounts[i].ClientID == clientID {
			expected := expectedFor(txs)[clientID]
			return reconcile(accounts[i], expected, time.Now().UTC()), nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// ReconcileAllAccounts reconciles all accounts in the ledger. Results are
// ordered by client id.
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	accounts, txs := uc.ledger.Snapshot()
	expected := expectedFor(txs)
	now := time.Now().UTC()

	seen := make(map[domain.ClientID]bool, len(accounts))
	results := make([]*ReconciliationResult, 0, len(accounts))
	for _, account := range accounts {
		seen[account.ClientID] = true
		results = append(results, reconcile(account, expected[account.ClientID], now))
	}

	// History without an account is reported as a discrepancy.
	for clientID, exp := range expected {
		if !seen[clientID] {
			results = append(results, reconcile(*domain.NewAccount(clientID), exp, now))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ClientID < results[j].ClientID
	})

	return results, nil
}

// CheckLedgerConsistency returns an error wrapping domain.ErrInconsistentLedger
// if any account disagrees with its transaction history.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return err
	}

	var bad []domain.ClientID
	for _, r := range results {
		if !r.IsReconciled {
			bad = append(bad, r.ClientID)
		}
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: %d account(s) out of balance, clients %v", domain.ErrInconsistentLedger, len(bad), bad)
	}

	return nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	LedgerConsistent   bool
	CheckedAt          time.Time
}

// GenerateReconciliationReport generates a comprehensive reconciliation report
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAccounts: len(results),
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	report.LedgerConsistent = len(report.Discrepancies) == 0

	return report, nil
}

// expectedFor derives per-client balances from the transaction history. A
// dispute keeps the total unchanged, a chargeback removes the deposit from it.
func expectedFor(txs []domain.StandardTransaction) map[domain.ClientID]expectedBalances {
	out := make(map[domain.ClientID]expectedBalances)

	for _, tx := range txs {
		exp := out[tx.ClientID]

		switch tx.Kind {
		case domain.KindDeposit:
			switch tx.DisputeStatus {
			case domain.DisputeStatusNone:
				exp.total = exp.total.Add(tx.Amount)
			case domain.DisputeStatusUnresolved:
				exp.total = exp.total.Add(tx.Amount)
				exp.held = exp.held.Add(tx.Amount)
			case domain.DisputeStatusChargedBack:
				exp.chargeback = true
			}
		case domain.KindWithdrawal:
			exp.total = exp.total.Sub(tx.Amount)
		}

		out[tx.ClientID] = exp
	}

	return out
}

func reconcile(account domain.Account, exp expectedBalances, now time.Time) *ReconciliationResult {
	result := &ReconciliationResult{
		ClientID:      account.ClientID,
		RecordedHeld:  account.Held,
		ExpectedHeld:  exp.held,
		RecordedTotal: account.Total(),
		ExpectedTotal: exp.total,
		Locked:        account.Locked,
		HasChargeback: exp.chargeback,
		LastChecked:   now,
	}

	result.IsReconciled = result.RecordedHeld.Equal(result.ExpectedHeld) &&
		result.RecordedTotal.Equal(result.ExpectedTotal) &&
		result.Locked == result.HasChargeback

	return result
}
