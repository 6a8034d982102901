package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// SyncRosterCmd creates the syncRoster command
func SyncRosterCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "syncRoster",
		Short: "Import staff from the staff sheet and stations from config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.SheetsClient()
			if err != nil {
				return err
			}

			result, err := services.SyncRoster(app.Ctx, app.Database, client, app.Cfg, app.Logger)
			if err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			fmt.Printf("\n✓ Roster synced\n\n")
			fmt.Printf("Stations: %s\n", strings.Join(result.Stations, ", "))
			fmt.Printf("Staff:    %d\n\n", len(result.Staff))

			fmt.Printf("%s%-10s %-24s %-10s %s%s\n", colorBold, "ID", "Name", "Group", "Certified", colorReset)
			fmt.Println(strings.Repeat("─", 70))
			for _, member := range result.Staff {
				fmt.Printf("%-10s %-24s %-10s %s\n",
					member.ID,
					member.Name,
					member.GroupKey,
					strings.Join(member.Certified.Sorted(), ", "))
			}
			fmt.Println()

			if len(result.Warnings) > 0 {
				fmt.Printf("⚠️  Warnings (%d):\n", len(result.Warnings))
				for _, warning := range result.Warnings {
					fmt.Printf("  • %s\n", warning)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
