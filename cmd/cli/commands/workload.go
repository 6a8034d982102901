package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// WorkloadCmd creates the workload command
func WorkloadCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "workload <slot>",
		Short: "Show how many times each staff member has held a station or role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.WorkloadReport(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n📊 Workload for %s\n\n", result.Slot)
			fmt.Printf("%s%-10s %-24s %6s%s\n", colorBold, "ID", "Name", "Count", colorReset)
			fmt.Println(strings.Repeat("─", 42))
			for _, entry := range result.Entries {
				name := entry.Name
				if !entry.Eligible {
					name += " (not eligible)"
				}
				fmt.Printf("%-10s %-24s %6d\n", entry.StaffID, name, entry.Count)
			}
			fmt.Printf("\nSpread among eligible staff: %d\n\n", result.Spread)
			return nil
		},
	}
}
