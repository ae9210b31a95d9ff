package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/iho/payments-engine/internal/domain"
)

var accountHeader = []string{"client", "available", "held", "total", "locked"}

// Writer renders accounts as CSV rows of client, available, held, total and
// locked, ordered by client id.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteAccounts writes the header followed by one row per account.
func (w *Writer) WriteAccounts(accounts []domain.Account) error {
	sorted := make([]domain.Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ClientID < sorted[j].ClientID
	})

	cw := stdcsv.NewWriter(w.w)

	if err := cw.Write(accountHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range sorted {
		a := &sorted[i]
		row := []string{
			strconv.FormatUint(uint64(a.ClientID), 10),
			a.Available.String(),
			a.Held.String(),
			a.Total().String(),
			strconv.FormatBool(a.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write account %d: %w", a.ClientID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}
