// Package main is the seed tool: it loads fixture data into the social
// database and can be run any number of times.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ClementRollin/LinkedIn-GraphQL/internal/config"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/database"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/logging"
	"github.com/ClementRollin/LinkedIn-GraphQL/internal/seed"
)

type options struct {
	fixtures    string
	databaseURL string
	migrate     bool
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	opts := options{databaseURL: cfg.DatabaseURL}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Populate the social database with sample users, posts and messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			return runSeed(cmd.Context(), opts, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.fixtures, "fixtures", "", "YAML fixture file (defaults to the bundled sample network)")
	cmd.Flags().StringVar(&opts.databaseURL, "database-url", opts.databaseURL, "PostgreSQL URL (defaults to $DATABASE_URL)")
	cmd.Flags().BoolVar(&opts.migrate, "migrate", false, "apply schema migrations before seeding")
	return cmd
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.DefaultFixtures()
	}
	return seed.LoadFixtures(path)
}

func runSeed(ctx context.Context, opts options, logger *slog.Logger, out io.Writer) error {
	fixtures, err := loadFixtures(opts.fixtures)
	if err != nil {
		return err
	}

	db, err := database.NewClient(ctx, opts.databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.migrate {
		if err := db.Migrate(); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	return seedAndReport(ctx, db, fixtures, logger, out)
}

// seedAndReport runs the seeder and writes its report as JSON. The report is
// the only output of a run; nothing scrapes the process, so no metrics are
// recorded.
func seedAndReport(ctx context.Context, store seed.Store, fixtures *seed.Fixtures, logger *slog.Logger, out io.Writer) error {
	report, err := seed.New(store, fixtures, logger, nil).Run(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}
