package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// SetStationCmd creates the setStation command
func SetStationCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "setStation <staff_id> <date> <station>",
		Short: "Manually set a staff member's station for a day",
		Long: `Manually set a staff member's station for a day. Use OFF to mark the day off
and "" to clear the cell. Manual cells are never overwritten by assignment.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(args[1])
			if err != nil {
				return err
			}

			record, err := services.SetStation(app.Ctx, app.Database, app.Logger, args[0], date, args[2])
			if err != nil {
				return err
			}

			printEditedRecord(record)
			return nil
		},
	}
}

// ToggleRoleCmd creates the toggleRole command
func ToggleRoleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggleRole <staff_id> <date> <role>",
		Short: "Add or remove a role on a staff member's day",
		Long:  "Toggle a role on a staff member's day. Adding a role removes any role it conflicts with.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(args[1])
			if err != nil {
				return err
			}
			role, err := model.ParseRole(args[2])
			if err != nil {
				return err
			}

			record, err := services.ToggleRole(app.Ctx, app.Database, app.Logger, args[0], date, role)
			if err != nil {
				return err
			}

			printEditedRecord(record)
			return nil
		},
	}
}

// ClearGeneratedCmd creates the clearGenerated command
func ClearGeneratedCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clearGenerated <start> <end>",
		Short: "Remove generated stations and roles between two dates",
		Long:  "Reset every generated station and role between two dates. Manual entries are kept.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			result, err := services.ClearGenerated(app.Ctx, app.Database, app.Logger, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n🧹 Cleared generated entries for %s\n\n", result.Range)
			fmt.Printf("Stations cleared: %d\n", result.StationsCleared)
			fmt.Printf("Roles cleared:    %d\n", result.RolesCleared)
			fmt.Printf("Records updated:  %d\n\n", len(result.Records))
			return nil
		},
	}
}

func printEditedRecord(record *model.ShiftRecord) {
	cell := sheetsclient.FormatCell(*record)
	if cell == "" {
		cell = "(empty)"
	}
	fmt.Printf("\n✓ %s on %s is now %s\n\n", record.StaffID, model.FormatDate(record.Date), cell)
}
