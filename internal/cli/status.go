package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/config"
	"github.com/example/staletick/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current settings and ledger summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := wire.SettingsService().Current()

			bold := color.New(color.Bold)
			bold.Println("staletick")
			fmt.Printf("  Stale after:      %d hours\n", settings.OrderAgeHours)
			fmt.Printf("  Batch cap:        %d orders per run\n", settings.MaxOrdersInTicket)
			fmt.Printf("  Orders escalated: %d\n", len(settings.SentOrderIDs))

			cfg, err := config.LoadConfig()
			if err != nil {
				fmt.Printf("\n%s Not configured: %v\n", color.New(color.FgYellow).Sprint("!"), err)
				fmt.Printf("  Create %s with golden_key and username.\n", configPathHint())
				return nil
			}
			fmt.Printf("\n  Account:          %s\n", cfg.Username)
			fmt.Printf("  Marketplace:      %s\n", cfg.Marketplace())
			fmt.Printf("  Support portal:   %s\n", cfg.Support())
			return nil
		},
	}
}

func configPathHint() string {
	dir, err := config.Dir()
	if err != nil {
		return "~/.staletick/config.json"
	}
	return dir + "/config.json"
}
