package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// PublishRosterCmd creates the publishRoster command
func PublishRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishRoster <start> <end>",
		Short: "Publish the roster between two dates to the roster spreadsheet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.PublishRoster(app.Ctx, app.Database, app.RestDays, client, app.Cfg, app.Logger, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster published successfully!\n\n")
			fmt.Printf("Tab:   %s\n", result.TabTitle)
			fmt.Printf("Staff: %d\n", len(result.Roster.Rows))
			fmt.Printf("Days:  %d\n\n", len(result.Roster.Dates))
			return nil
		},
	}
}
