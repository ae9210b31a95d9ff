package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/payments-engine/internal/domain"
	"github.com/iho/payments-engine/internal/infrastructure/metrics"
)

// ProcessUseCase drives a transaction source through the ledger.
type ProcessUseCase struct {
	applier TransactionApplier
	idGen   IDGenerator
	metrics *metrics.Metrics
	logger  zerolog.Logger
	policy  ErrorPolicy
}

// NewProcessUseCase creates a new ProcessUseCase. metrics may be nil.
func NewProcessUseCase(
	applier TransactionApplier,
	idGen IDGenerator,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
	policy ErrorPolicy,
) *ProcessUseCase {
	if policy == "" {
		policy = ErrorPolicySkip
	}

	return &ProcessUseCase{
		applier: applier,
		idGen:   idGen,
		metrics: metrics,
		logger:  logger,
		policy:  policy,
	}
}

// ProcessResult summarizes a processing run.
type ProcessResult struct {
	RunID            string
	Applied          int
	Rejected         int
	RejectedByReason map[string]int
	Duration         time.Duration
}

// Process applies every transaction from source in order until it is
// exhausted. Read errors and non-ledger failures abort the run; ledger
// rejections are handled according to the error policy.
func (uc *ProcessUseCase) Process(ctx context.Context, source TransactionSource) (*ProcessResult, error) {
	start := time.Now()
	result := &ProcessResult{
		RunID:            uc.idGen.Generate(),
		RejectedByReason: make(map[string]int),
	}

	log := uc.logger.With().Str("run_id", result.RunID).Logger()
	log.Info().Str("error_policy", string(uc.policy)).Msg("processing started")

	defer func() {
		result.Duration = time.Since(start)
		uc.observeRun(result)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		tx, err := source.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if uc.metrics != nil && errors.Is(err, domain.ErrMalformedRecord) {
				uc.metrics.FormatErrors.Inc()
			}
			log.Error().Err(err).Msg("failed to read transaction")
			return result, fmt.Errorf("read transaction: %w", err)
		}

		if err := uc.applier.Apply(tx); err != nil {
			var lerr *domain.LedgerError
			if !errors.As(err, &lerr) {
				log.Error().Err(err).Msg("failed to apply transaction")
				return result, err
			}

			result.Rejected++
			result.RejectedByReason[lerr.Code()]++
			if uc.metrics != nil {
				uc.metrics.TransactionsRejected.WithLabelValues(lerr.Type, lerr.Code()).Inc()
			}

			event := log.Debug()
			if uc.policy != ErrorPolicySkip {
				event = log.Warn()
			}
			event.
				Str("type", lerr.Type).
				Uint32("tx", uint32(lerr.TxID)).
				Uint16("client", uint16(lerr.ClientID)).
				Str("reason", lerr.Code()).
				Msg("transaction rejected")

			if uc.policy == ErrorPolicyStrict {
				return result, err
			}

			continue
		}

		result.Applied++
		if uc.metrics != nil {
			uc.metrics.TransactionsApplied.WithLabelValues(tx.Type()).Inc()
		}
	}

	log.Info().
		Int("applied", result.Applied).
		Int("rejected", result.Rejected).
		Msg("processing finished")

	return result, nil
}

func (uc *ProcessUseCase) observeRun(result *ProcessResult) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.ProcessDuration.Observe(result.Duration.Seconds())

	accounts := uc.applier.Accounts()
	locked := 0
	for _, a := range accounts {
		if a.Locked {
			locked++
		}
	}

	uc.metrics.Accounts.Set(float64(len(accounts)))
	uc.metrics.LockedAccounts.Set(float64(locked))
}
