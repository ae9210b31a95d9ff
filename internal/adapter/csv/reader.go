package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/payments-engine/internal/domain"
)

// Record-level format errors. They are always wrapped in a *FormatError.
var (
	ErrMissingColumn          = errors.New("missing column")
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrAmountNotSpecified     = errors.New("amount not specified")
	ErrAmountUnexpected       = errors.New("amount must not be specified for dispute, resolve or chargeback")
	ErrInvalidField           = errors.New("invalid field")
)

// FormatError reports a malformed record. It matches domain.ErrMalformedRecord
// with errors.Is.
type FormatError struct {
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func (e *FormatError) Is(target error) bool {
	return target == domain.ErrMalformedRecord
}

type columns struct {
	kind, client, tx, amount int
}

// Reader decodes transactions from CSV with a `type,client,tx,amount` header.
// Columns may appear in any order and fields may be padded with whitespace.
// Every record must have as many fields as the header.
type Reader struct {
	csv  *stdcsv.Reader
	cols *columns
}

// NewReader creates a Reader over r.
func NewReader(r io.Reader) *Reader {
	cr := stdcsv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{csv: cr}
}

// Next returns the next transaction, or io.EOF when the input is exhausted.
func (r *Reader) Next() (domain.Transaction, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	record, err := r.read()
	if err != nil {
		return nil, err
	}

	line, _ := r.csv.FieldPos(0)

	tx, err := r.decode(record)
	if err != nil {
		return nil, &FormatError{Line: line, Err: err}
	}

	return tx, nil
}

func (r *Reader) read() ([]string, error) {
	record, err := r.csv.Read()
	if err == nil {
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		return record, nil
	}

	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}

	var perr *stdcsv.ParseError
	if errors.As(err, &perr) {
		return nil, &FormatError{Line: perr.StartLine, Err: perr.Err}
	}

	return nil, fmt.Errorf("read csv: %w", err)
}

func (r *Reader) readHeader() error {
	header, err := r.read()
	if err != nil {
		return err
	}

	cols := columns{kind: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(name) {
		case "type":
			cols.kind = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}

	for name, idx := range map[string]int{"type": cols.kind, "client": cols.client, "tx": cols.tx} {
		if idx < 0 {
			return &FormatError{Line: 1, Err: fmt.Errorf("%w %q", ErrMissingColumn, name)}
		}
	}

	r.cols = &cols

	return nil
}

func (r *Reader) decode(record []string) (domain.Transaction, error) {
	client, err := strconv.ParseUint(record[r.cols.client], 10, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: client %q", ErrInvalidField, record[r.cols.client])
	}

	txID, err := strconv.ParseUint(record[r.cols.tx], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: tx %q", ErrInvalidField, record[r.cols.tx])
	}

	amount := ""
	if r.cols.amount >= 0 {
		amount = record[r.cols.amount]
	}

	// Only lowercase type names are accepted.
	switch kind := record[r.cols.kind]; kind {
	case "deposit", "withdrawal":
		if amount == "" {
			return nil, ErrAmountNotSpecified
		}

		value, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q", ErrInvalidField, amount)
		}

		standardKind := domain.KindDeposit
		if kind == "withdrawal" {
			standardKind = domain.KindWithdrawal
		}

		return domain.StandardTransaction{
			TxID:     domain.TxID(txID),
			ClientID: domain.ClientID(client),
			Kind:     standardKind,
			Amount:   value,
		}, nil

	case "dispute", "resolve", "chargeback":
		if amount != "" {
			return nil, ErrAmountUnexpected
		}

		disputeKind := domain.KindDispute
		switch kind {
		case "resolve":
			disputeKind = domain.KindResolve
		case "chargeback":
			disputeKind = domain.KindChargeback
		}

		return domain.DisputeTransaction{
			TxID:     domain.TxID(txID),
			ClientID: domain.ClientID(client),
			Kind:     disputeKind,
		}, nil

	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownTransactionType, kind)
	}
}
