package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	csvAdapter "github.com/iho/payments-engine/internal/adapter/csv"
	"github.com/iho/payments-engine/internal/adapter/repository/memory"
	"github.com/iho/payments-engine/internal/infrastructure/config"
	"github.com/iho/payments-engine/internal/infrastructure/logger"
	"github.com/iho/payments-engine/internal/infrastructure/metrics"
	"github.com/iho/payments-engine/internal/usecase"
)

// options carries the settings shared by the root and serve commands. Flags
// default to the environment configuration.
type options struct {
	cfg *config.Config

	errorPolicy string
	verify      bool
	metricsFile string
	logLevel    string
	logFormat   string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = &config.Config{ErrorPolicy: string(usecase.ErrorPolicySkip), LogLevel: "warn", LogFormat: "json", HTTPPort: "8080"}
	}

	opts := &options{cfg: cfg}

	rootCmd := &cobra.Command{
		Use:   "payments-engine [flags] <transactions.csv>",
		Short: "Replay a transaction log and print final account balances",
		Long: `Reads deposits, withdrawals, disputes, resolves and chargebacks from a CSV
file, applies them in order and writes the resulting accounts to stdout as CSV.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return fmt.Errorf("load configuration: %w", cfgErr)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), stdout, stderr, args[0], opts)
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.errorPolicy, "error-policy", cfg.ErrorPolicy, "What to do with rejected transactions: skip, log or strict")
	flags.BoolVar(&opts.verify, "verify", cfg.VerifyConsistency, "Reconcile accounts against the transaction history before reporting")
	flags.StringVar(&opts.metricsFile, "metrics-file", cfg.MetricsFile, "Write Prometheus metrics to this file after the run")
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", cfg.LogFormat, "Log format: json or console")

	rootCmd.AddCommand(newServeCmd(stderr, opts))

	return rootCmd
}

// runReport processes the file and prints the account table.
func runReport(ctx context.Context, stdout, stderr io.Writer, path string, opts *options) error {
	log := logger.New(logger.Config{Level: opts.logLevel, Format: opts.logFormat, Output: stderr})
	m := metrics.New()

	ledger, err := loadLedger(ctx, path, opts, log, m)
	if err != nil {
		return err
	}

	if err := csvAdapter.NewWriter(stdout).WriteAccounts(ledger.Accounts()); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}

	return nil
}

// loadLedger replays the transaction file into a fresh in-memory ledger. The
// metrics file, when configured, is written even if processing fails.
func loadLedger(
	ctx context.Context,
	path string,
	opts *options,
	log zerolog.Logger,
	m *metrics.Metrics,
) (ledger *usecase.LedgerUseCase, err error) {
	policy, err := usecase.ParseErrorPolicy(opts.errorPolicy)
	if err != nil {
		return nil, err
	}

	if opts.metricsFile != "" {
		defer func() {
			if werr := m.WriteToTextfile(opts.metricsFile); werr != nil && err == nil {
				err = fmt.Errorf("write metrics: %w", werr)
			}
		}()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ledger = usecase.NewLedgerUseCase(memory.NewStore())
	process := usecase.NewProcessUseCase(ledger, memory.NewULIDGenerator(), m, log, policy)

	result, err := process.Process(ctx, csvAdapter.NewReader(f))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("run_id", result.RunID).
		Interface("rejected_by_reason", result.RejectedByReason).
		Dur("duration", result.Duration).
		Msg("run summary")

	if opts.verify {
		if err := usecase.NewReconciliationUseCase(ledger).CheckLedgerConsistency(ctx); err != nil {
			log.Error().Err(err).Str("run_id", result.RunID).Msg("reconciliation failed")
			return nil, err
		}
	}

	return ledger, nil
}
