package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/wire"
)

// ScanCmd returns the scan command
func ScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List stale orders without filing tickets (dry run)",
		Long: `Scan the account's paid orders and print the ones that a run would
escalate. Nothing is submitted and the sent ledger is not touched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			maxAge, maxBatch := effectiveLimits(cmd)

			ids, err := wire.EscalationService().Scan(ctx, maxAge, maxBatch)
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			if len(ids) == 0 {
				fmt.Printf("No paid orders older than %d hours pending escalation.\n", maxAge)
				return nil
			}

			fmt.Printf("%d order(s) would be escalated (cutoff %d hours, as of %s):\n\n",
				len(ids), maxAge, time.Now().Format("2006-01-02 15:04"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "#\tORDER")
			for i, id := range ids {
				fmt.Fprintf(w, "%d\t#%s\n", i+1, id)
			}
			w.Flush()
			fmt.Println("\nRun 'staletick run' to file tickets for these orders.")
			return nil
		},
	}

	addLimitFlags(cmd)
	return cmd
}
