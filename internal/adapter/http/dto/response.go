package dto

import (
	"time"

	"github.com/iho/payments-engine/internal/domain"
	"github.com/iho/payments-engine/internal/usecase"
)

// AccountResponse represents an account in API responses. Amounts are exact
// decimal strings.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a domain.Account) *AccountResponse {
	return &AccountResponse{
		Client:    uint16(a.ClientID),
		Available: a.Available.String(),
		Held:      a.Held.String(),
		Total:     a.Total().String(),
		Locked:    a.Locked,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ReconciliationResultResponse represents a single account check.
type ReconciliationResultResponse struct {
	Client        uint16    `json:"client"`
	RecordedHeld  string    `json:"recorded_held"`
	ExpectedHeld  string    `json:"expected_held"`
	RecordedTotal string    `json:"recorded_total"`
	ExpectedTotal string    `json:"expected_total"`
	Difference    string    `json:"difference"`
	Locked        bool      `json:"locked"`
	HasChargeback bool      `json:"has_chargeback"`
	IsReconciled  bool      `json:"is_reconciled"`
	LastChecked   time.Time `json:"last_checked"`
}

// ReconciliationReportResponse represents a reconciliation report.
type ReconciliationReportResponse struct {
	TotalAccounts      int                             `json:"total_accounts"`
	ReconciledAccounts int                             `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResultResponse `json:"discrepancies"`
	LedgerConsistent   bool                            `json:"ledger_consistent"`
	CheckedAt          time.Time                       `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a report to response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResultResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = &ReconciliationResultResponse{
			Client:        uint16(d.ClientID),
			RecordedHeld:  d.RecordedHeld.String(),
			ExpectedHeld:  d.ExpectedHeld.String(),
			RecordedTotal: d.RecordedTotal.String(),
			ExpectedTotal: d.ExpectedTotal.String(),
			Difference:    d.Difference().String(),
			Locked:        d.Locked,
			HasChargeback: d.HasChargeback,
			IsReconciled:  d.IsReconciled,
			LastChecked:   d.LastChecked,
		}
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		LedgerConsistent:   r.LedgerConsistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
