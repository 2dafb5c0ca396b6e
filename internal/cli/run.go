// Package cli provides CLI commands for the staletick application.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/wire"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan for stale orders and file support tickets",
		Long: `Run one full escalation pass: scan the account's paid orders for ones
older than the configured age that have not been escalated yet, then file
one support ticket per order asking the buyer to confirm.

Successfully escalated orders are recorded in the sent ledger and will
never be escalated again. The run blocks until every candidate has been
processed; submissions are paced to respect the portal's rate limits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			maxAge, maxBatch := effectiveLimits(cmd)

			fmt.Printf("Scanning paid orders older than %d hours (batch cap %d)...\n", maxAge, maxBatch)
			result, err := wire.EscalationService().Run(ctx, maxAge, maxBatch)
			if err != nil {
				if result != nil && len(result.SentOrderIDs) > 0 {
					// Tickets went out even though the run failed; the
					// operator needs to know which ones.
					fmt.Printf("Tickets were filed for: %s\n", strings.Join(result.SentOrderIDs, ", "))
				}
				return fmt.Errorf("escalation run failed: %w", err)
			}

			if result.Considered == 0 {
				fmt.Println("No stale unconfirmed orders found.")
				return nil
			}

			sent := len(result.SentOrderIDs)
			switch {
			case sent > 0:
				ids := make([]string, len(result.SentOrderIDs))
				for i, id := range result.SentOrderIDs {
					ids[i] = "#" + id
				}
				fmt.Printf("%s Escalated %d of %d orders: %s\n",
					color.New(color.FgHiGreen).Sprint("✓"),
					sent, result.Considered, strings.Join(ids, ", "))
				if result.Skipped() > 0 {
					fmt.Printf("  Skipped: %d (no longer eligible or submission failed, see logs)\n", result.Skipped())
				}
			case result.Skipped() == result.Considered:
				fmt.Printf("%s All %d candidates were skipped (likely already confirmed or refunded).\n",
					color.New(color.FgYellow).Sprint("!"), result.Considered)
			}
			return nil
		},
	}

	addLimitFlags(cmd)
	return cmd
}

// addLimitFlags registers the optional overrides for the persisted limits.
func addLimitFlags(cmd *cobra.Command) {
	cmd.Flags().Int("age", 0, "Override the stale-age cutoff in hours for this run")
	cmd.Flags().Int("batch", 0, "Override the batch cap for this run")
}

// effectiveLimits resolves the cutoff and batch cap from flags, falling
// back to the persisted settings.
func effectiveLimits(cmd *cobra.Command) (maxAge, maxBatch int) {
	settings := wire.SettingsService().Current()
	maxAge = settings.OrderAgeHours
	maxBatch = settings.MaxOrdersInTicket

	if v, _ := cmd.Flags().GetInt("age"); v > 0 {
		maxAge = v
	}
	if v, _ := cmd.Flags().GetInt("batch"); v > 0 {
		maxBatch = v
	}
	return maxAge, maxBatch
}
