package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// AddEventCmd creates the addEvent command
func AddEventCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addEvent <date> <type> [note]",
		Short: "Add a calendar event (NATIONAL_HOLIDAY, DEPARTMENT_CLOSED or MEETING)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := model.ParseDate(args[0])
			if err != nil {
				return err
			}
			eventType := model.EventType(strings.ToUpper(args[1]))
			note := ""
			if len(args) == 3 {
				note = args[2]
			}

			event, err := services.AddCalendarEvent(app.Ctx, app.Database, app.Logger, date, eventType, note)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Event added\n\n")
			fmt.Printf("Event ID: %s\n", event.ID)
			fmt.Printf("Date:     %s\n", model.FormatDate(event.Date))
			fmt.Printf("Type:     %s\n", event.Type)
			if event.Note != "" {
				fmt.Printf("Note:     %s\n", event.Note)
			}
			fmt.Println()
			return nil
		},
	}
}

// DefineCycleCmd creates the defineCycle command
func DefineCycleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defineCycle <start> <end>",
		Short: "Define a new scheduling cycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}

			cycle, err := services.DefineCycle(app.Ctx, app.Database, app.Logger, start, end)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Cycle created successfully!\n\n")
			fmt.Printf("Cycle ID: %s\n", cycle.ID)
			fmt.Printf("Range:    %s\n\n", cycle.Range())
			return nil
		},
	}
}

// ConfirmCycleCmd creates the confirmCycle command
func ConfirmCycleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "confirmCycle <cycle_id>",
		Short: "Confirm a cycle, locking it against assignment runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.ConfirmCycle(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n🔒 Cycle %s confirmed\n\n", args[0])
			return nil
		},
	}
}

// UnlockCycleCmd creates the unlockCycle command
func UnlockCycleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unlockCycle <cycle_id>",
		Short: "Unlock a confirmed cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.UnlockCycle(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\n🔓 Cycle %s unlocked\n\n", args[0])
			return nil
		},
	}
}

// ListCyclesCmd creates the listCycles command
func ListCyclesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listCycles",
		Short: "List scheduling cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cycles, err := services.ListCycles(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(cycles) == 0 {
				fmt.Printf("\nNo cycles defined\n\n")
				return nil
			}

			fmt.Printf("\n%s%-38s %-25s %s%s\n", colorBold, "Cycle ID", "Range", "Status", colorReset)
			fmt.Println(strings.Repeat("─", 76))
			for _, cycle := range cycles {
				status := "open"
				if cycle.Confirmed {
					status = "🔒 confirmed"
				}
				fmt.Printf("%-38s %-25s %s\n", cycle.ID, cycle.Range(), status)
			}
			fmt.Println()
			return nil
		},
	}
}
