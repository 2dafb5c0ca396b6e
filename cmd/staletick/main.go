package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/cli"
	"github.com/example/staletick/internal/version"
)

func main() {
	// Keep stdout for command output; diagnostics go to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	rootCmd := &cobra.Command{
		Use:     "staletick",
		Short:   "staletick - escalate stale unconfirmed marketplace orders",
		Version: version.String(),
		Long: `staletick scans a seller account for paid orders the buyer has not
confirmed within a configurable window and files a support ticket for
each one, keeping a ledger so no order is ever escalated twice.`,
	}

	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.ScanCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.SentCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
