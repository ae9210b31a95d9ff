package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/payments-engine/internal/domain"
	"github.com/iho/payments-engine/internal/usecase"
)

func TestAccountFromDomain(t *testing.T) {
	account := domain.Account{
		ClientID:  7,
		Available: decimal.RequireFromString("-0.50"),
		Held:      decimal.RequireFromString("1.0"),
		Locked:    true,
	}

	resp := AccountFromDomain(account)
	if resp.Client != 7 || resp.Available != "-0.5" || resp.Held != "1" || resp.Total != "0.5" || !resp.Locked {
		t.Fatalf("unexpected account response: %+v", resp)
	}

	list := AccountsFromDomain([]domain.Account{account})
	if len(list) != 1 || list[0].Client != 7 {
		t.Fatalf("AccountsFromDomain returned %+v", list)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(body), `"available":"-0.5"`) {
		t.Fatalf("expected amounts as strings, got %s", body)
	}
}

func TestReconciliationReportFromUseCase(t *testing.T) {
	now := time.Now().UTC()
	report := &usecase.ReconciliationReport{
		TotalAccounts:      2,
		ReconciledAccounts: 1,
		Discrepancies: []*usecase.ReconciliationResult{
			{
				ClientID:      3,
				RecordedHeld:  decimal.Zero,
				ExpectedHeld:  decimal.Zero,
				RecordedTotal: decimal.RequireFromString("5"),
				ExpectedTotal: decimal.RequireFromString("4"),
				LastChecked:   now,
			},
		},
		CheckedAt: now,
	}

	resp := ReconciliationReportFromUseCase(report)
	if resp.TotalAccounts != 2 || resp.ReconciledAccounts != 1 || resp.LedgerConsistent {
		t.Fatalf("unexpected report response: %+v", resp)
	}

	if len(resp.Discrepancies) != 1 || resp.Discrepancies[0].Difference != "1" || resp.Discrepancies[0].Client != 3 {
		t.Fatalf("unexpected discrepancies: %+v", resp.Discrepancies)
	}
}
