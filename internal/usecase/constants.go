package usecase

import "fmt"

// ErrorPolicy decides what happens to the run when a transaction is rejected
// by the ledger. Ingestion errors are always fatal.
type ErrorPolicy string

const (
	// ErrorPolicySkip drops rejected transactions silently.
	ErrorPolicySkip ErrorPolicy = "skip"

	// ErrorPolicyLog drops rejected transactions and logs each one.
	ErrorPolicyLog ErrorPolicy = "log"

	// ErrorPolicyStrict aborts the run on the first rejection.
	ErrorPolicyStrict ErrorPolicy = "strict"
)

// ParseErrorPolicy validates a policy name.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch p := ErrorPolicy(s); p {
	case ErrorPolicySkip, ErrorPolicyLog, ErrorPolicyStrict:
		return p, nil
	case "":
		return ErrorPolicySkip, nil
	default:
		return "", fmt.Errorf("unknown error policy %q (want skip, log or strict)", s)
	}
}
