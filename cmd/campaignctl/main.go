// Command campaignctl is a device-side client for the campaign site: it lists
// policies and poll options, casts one vote per item and follows live poll
// results.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"genz-ignite/internal/ballot"
	"genz-ignite/internal/client"
)

var (
	apiURL     string
	ballotPath string
	verbose    bool
)

var (
	red    = color.New(color.FgRed).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "campaignctl",
		Short:         "Vote on campaign policies and polls from this device",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&apiURL, "api", envOr("GENZ_API_URL", "http://localhost:8080"), "Campaign API base URL")
	root.PersistentFlags().StringVar(&ballotPath, "ballots", defaultBallotPath(), "Path to this device's ballot file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and ledger decisions")

	root.AddCommand(
		newPoliciesCmd(),
		newPollsCmd(),
		newVoteCmd(),
	)
	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultBallotPath() string {
	if v := os.Getenv("GENZ_BALLOT_FILE"); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ballots.db"
	}
	return filepath.Join(dir, "genz-ignite", "ballots.db")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// session holds what every command needs for one run.
type session struct {
	api     *client.Client
	ballots *ballot.BoltStore
	logger  *slog.Logger
}

func openSession() (*session, error) {
	logger := newLogger()
	store, err := ballot.OpenBoltStore(ballotPath)
	if err != nil {
		return nil, fmt.Errorf("open ballots: %w", err)
	}
	return &session{
		api:     client.New(apiURL, client.WithLogger(logger)),
		ballots: store,
		logger:  logger,
	}, nil
}

func (s *session) Close() error {
	return s.ballots.Close()
}
