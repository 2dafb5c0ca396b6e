package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/wire"
)

// SentCmd returns the sent command with its subcommands
func SentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sent",
		Short: "Inspect the ledger of escalated orders",
	}

	cmd.AddCommand(sentListCmd())
	return cmd
}

func sentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List order IDs that already have a ticket",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := wire.SettingsService().Current()
			if len(settings.SentOrderIDs) == 0 {
				fmt.Println("Ledger is empty; no orders have been escalated.")
				return nil
			}
			fmt.Printf("%d escalated order(s):\n", len(settings.SentOrderIDs))
			for _, id := range settings.SentOrderIDs {
				fmt.Printf("  #%s\n", id)
			}
			return nil
		},
	}
}
