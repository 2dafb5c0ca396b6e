package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/wire"
)

// HistoryCmd returns the history command with its subcommands
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past escalation runs",
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historyShowCmd())
	return cmd
}

func historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List past runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := wire.RunHistoryService().ListRuns(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}
			if len(runs) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RUN\tSTARTED\tDURATION\tCONSIDERED\tSENT")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
					run.ID,
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second),
					run.Considered,
					run.SentCount)
			}
			return w.Flush()
		},
	}
}

func historyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := wire.RunHistoryService().GetRun(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Run:        %s\n", run.ID)
			fmt.Printf("Started:    %s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Finished:   %s\n", run.FinishedAt.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Considered: %d\n", run.Considered)
			fmt.Printf("Sent:       %d\n", run.SentCount)
			if len(run.SentIDs) > 0 {
				ids := make([]string, len(run.SentIDs))
				for i, id := range run.SentIDs {
					ids[i] = "#" + id
				}
				fmt.Printf("Orders:     %s\n", strings.Join(ids, ", "))
			}
			return nil
		},
	}
}
