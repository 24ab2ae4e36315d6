// Package main provides ledgerctl, the operator command line for the ledger store.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/config"
	"github.com/finance-tracker/ledger/internal/application/usecase/fixed"
	"github.com/finance-tracker/ledger/internal/application/usecase/summary"
	"github.com/finance-tracker/ledger/internal/domain/valueobject"
	"github.com/finance-tracker/ledger/internal/infra/db"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledger/internal/integration/persistence"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate the ledger store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: config.ParseLogLevel(logLevel),
			})))
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(migrateCmd(), ensureCmd(), summaryCmd())
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the ledger schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.AutoMigrate(model.All()...); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func ensureCmd() *cobra.Command {
	var userFlag, monthFlag string

	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Materialize a user's fixed templates for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, month, err := parseTarget(userFlag, monthFlag)
			if err != nil {
				return err
			}

			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()

			gdb, timeout := database.DB(), database.QueryTimeout()
			uc := fixed.NewEnsureMonthUseCase(
				persistence.NewFixedTemplateRepository(gdb, timeout),
				persistence.NewFixedInstanceRepository(gdb, timeout),
				nil,
			)
			output, err := uc.Execute(cmd.Context(), fixed.EnsureMonthInput{UserID: userID, Month: month})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "month=%s created=%d skipped=%d conflicts=%d\n",
				month, output.Created, output.Skipped, output.Conflicts)
			return nil
		},
	}
	addTargetFlags(cmd, &userFlag, &monthFlag)
	return cmd
}

func summaryCmd() *cobra.Command {
	var userFlag, monthFlag string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a user's monthly summary as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, month, err := parseTarget(userFlag, monthFlag)
			if err != nil {
				return err
			}

			database, err := open()
			if err != nil {
				return err
			}
			defer database.Close()

			gdb, timeout := database.DB(), database.QueryTimeout()
			uc := summary.NewGetMonthlySummaryUseCase(
				persistence.NewProfileRepository(gdb, timeout),
				persistence.NewTransactionRepository(gdb, timeout),
				persistence.NewFixedInstanceRepository(gdb, timeout),
			)
			output, err := uc.Execute(cmd.Context(), summary.GetMonthlySummaryInput{UserID: userID, Month: month})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.ToSummaryResponse(output.Summary))
		},
	}
	addTargetFlags(cmd, &userFlag, &monthFlag)
	return cmd
}

func addTargetFlags(cmd *cobra.Command, userFlag, monthFlag *string) {
	cmd.Flags().StringVar(userFlag, "user", "", "User id (uuid)")
	cmd.Flags().StringVar(monthFlag, "month", "", "Month as YYYY-MM-01")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("month")
}

func parseTarget(userFlag, monthFlag string) (uuid.UUID, valueobject.Month, error) {
	userID, err := uuid.Parse(userFlag)
	if err != nil {
		return uuid.Nil, valueobject.Month{}, fmt.Errorf("invalid --user: %w", err)
	}
	month, err := valueobject.ParseMonth(monthFlag)
	if err != nil {
		return uuid.Nil, valueobject.Month{}, fmt.Errorf("invalid --month: %w", err)
	}
	return userID, month, nil
}

func open() (*db.Database, error) {
	cfg := config.Load()
	return db.NewConnection(&cfg.Database)
}
