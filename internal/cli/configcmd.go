package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/staletick/internal/models"
	"github.com/example/staletick/internal/wire"
)

// ConfigCmd returns the config command with its subcommands
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change escalation settings",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetAgeCmd())
	cmd.AddCommand(configSetBatchCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := wire.SettingsService().Current()
			fmt.Printf("order_age_hours:      %d  (allowed %d-%d)\n",
				settings.OrderAgeHours, models.MinOrderAgeHours, models.MaxOrderAgeHours)
			fmt.Printf("max_orders_in_ticket: %d  (allowed %d-%d)\n",
				settings.MaxOrdersInTicket, models.MinOrdersInTicket, models.MaxOrdersInTicket)
			return nil
		},
	}
}

func configSetAgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-age <hours>",
		Short: "Set how old a paid order must be before escalation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid hours value %q: %w", args[0], err)
			}
			if err := wire.SettingsService().SetOrderAgeHours(hours); err != nil {
				return err
			}
			fmt.Printf("%s Stale-age cutoff set to %d hours\n",
				color.New(color.FgHiGreen).Sprint("✓"), hours)
			return nil
		},
	}
}

func configSetBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-batch <count>",
		Short: "Set the maximum number of tickets filed per run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count value %q: %w", args[0], err)
			}
			if err := wire.SettingsService().SetMaxOrdersInTicket(count); err != nil {
				return err
			}
			fmt.Printf("%s Batch cap set to %d orders per run\n",
				color.New(color.FgHiGreen).Sprint("✓"), count)
			return nil
		},
	}
}
