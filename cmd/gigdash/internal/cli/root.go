// Package cli implements the gigdash command line: one-shot summaries of an
// export file, budget limit management and token issuing.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/gigdash/internal/app"
	"github.com/MrJamesThe3rd/gigdash/internal/config"
	"github.com/MrJamesThe3rd/gigdash/internal/logging"
)

const startupTimeout = 10 * time.Second

type rootOptions struct {
	store      string
	budgetFile string
	logLevel   string
}

// env is filled in before any subcommand runs.
type env struct {
	cfg      *config.Config
	services *app.Services
}

func NewRootCmd() *cobra.Command {
	var (
		opts rootOptions
		e    env
	)

	cmd := &cobra.Command{
		Use:           "gigdash",
		Short:         "Summarize gig income and manage category budgets",
		Long:          `gigdash turns transaction exports into income, expense and budget summaries.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.open(cmd, opts)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return e.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.store, "store", "", "Budget store: file, sqlite or postgres (overrides STORE_DRIVER)")
	flags.StringVar(&opts.budgetFile, "budget-file", "", "Path of the file store (overrides BUDGET_FILE)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.AddCommand(
		newSummaryCmd(&e),
		newBudgetCmd(&e),
		newTokenCmd(&e),
	)

	return cmd
}

func (e *env) open(cmd *cobra.Command, opts rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if opts.store != "" {
		cfg.Store.Driver = opts.store
	}

	if opts.budgetFile != "" {
		cfg.Store.FilePath = opts.budgetFile
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format, "cli")

	ctx, cancel := context.WithTimeout(cmd.Context(), startupTimeout)
	defer cancel()

	services, err := app.New(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	e.cfg = cfg
	e.services = services

	return nil
}

func (e *env) close() error {
	if e.services == nil {
		return nil
	}

	err := e.services.Close()
	e.services = nil

	return err
}
