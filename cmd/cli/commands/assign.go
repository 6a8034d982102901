package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBold   = "\033[1m"
)

// AssignStationsCmd creates the assignStations command
func AssignStationsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignStations <start> <end>",
		Short: "Fill open station cells between two dates",
		Long:  "Run the station pass: every open cell on a working day is filled with an eligible staff member, balancing workload per station",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			opts, err := assignOptions(cmd)
			if err != nil {
				return err
			}

			app.Logger.Debug("assignStations command",
				zap.String("start", args[0]),
				zap.String("end", args[1]),
				zap.Bool("dry_run", opts.DryRun),
				zap.Bool("force_commit", opts.ForceCommit))

			result, err := services.AutoAssignStations(app.Ctx, app.Database, app.RestDays, app.Logger, opts, start, end)
			if err != nil {
				return fmt.Errorf("station assignment failed: %w", err)
			}

			printAssignResult("Station Assignment", result, opts)
			return nil
		},
	}

	addAssignFlags(cmd)
	return cmd
}

// AssignRolesCmd creates the assignRoles command
func AssignRolesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignRoles <start> <end>",
		Short: "Fill open role vacancies between two dates",
		Long:  "Run the role pass for the selected roles: each working day gets one holder per role, chosen from staff who can take it without conflict",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseRange(args[0], args[1])
			if err != nil {
				return err
			}
			opts, err := assignOptions(cmd)
			if err != nil {
				return err
			}

			roleNames, _ := cmd.Flags().GetStringSlice("roles")
			roles, err := parseRoles(roleNames)
			if err != nil {
				return err
			}

			app.Logger.Debug("assignRoles command",
				zap.String("start", args[0]),
				zap.String("end", args[1]),
				zap.Strings("roles", roleNames),
				zap.Bool("dry_run", opts.DryRun),
				zap.Bool("force_commit", opts.ForceCommit))

			result, err := services.AutoAssignRoles(app.Ctx, app.Database, app.RestDays, app.Logger, opts, start, end, roles)
			if err != nil {
				return fmt.Errorf("role assignment failed: %w", err)
			}

			printAssignResult("Role Assignment", result, opts)
			return nil
		},
	}

	addAssignFlags(cmd)
	defaultRoles := make([]string, len(model.AllRoles))
	for i, role := range model.AllRoles {
		defaultRoles[i] = string(role)
	}
	cmd.Flags().StringSlice("roles", defaultRoles, "Roles to assign (comma separated)")
	return cmd
}

func addAssignFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Preview the assignment without saving it")
	cmd.Flags().Bool("force-commit", false, "Save the assignment even if validation fails")
	cmd.Flags().Uint64("seed", 0, "Seed for tie-breaking (0 picks a random seed)")
}

func assignOptions(cmd *cobra.Command) (services.AutoAssignOptions, error) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	forceCommit, _ := cmd.Flags().GetBool("force-commit")
	if dryRun && forceCommit {
		return services.AutoAssignOptions{}, fmt.Errorf("--dry-run and --force-commit cannot be used together")
	}

	opts := services.AutoAssignOptions{DryRun: dryRun, ForceCommit: forceCommit}
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		opts.Seed = &seed
	}
	return opts, nil
}

// parseRoles parses role names case-insensitively, rejecting unknown names
func parseRoles(names []string) ([]model.Role, error) {
	roles := make([]model.Role, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		role, err := model.ParseRole(name)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func printAssignResult(title string, result *services.AutoAssignResult, opts services.AutoAssignOptions) {
	fmt.Printf("\n🎯 %s Results\n\n", title)
	fmt.Printf("Run ID:      %s\n", result.RunID)
	fmt.Printf("Range:       %s\n", result.Range)
	fmt.Printf("Assigned:    %d\n", len(result.Assignments))
	fmt.Printf("Unmet:       %d\n", len(result.Unmet))
	switch {
	case opts.DryRun:
		fmt.Printf("Mode:        🧪 DRY RUN (not saved)\n")
	case result.Committed && len(result.ValidationErrors) > 0:
		fmt.Printf("Status:      ⚠️  FORCED (saved despite validation errors)\n")
	case result.Committed:
		fmt.Printf("Status:      ✅ SUCCESS (saved to database)\n")
	case len(result.ValidationErrors) == 0 && len(result.Planned) == 0:
		fmt.Printf("Status:      ✓ Nothing to assign\n")
	default:
		fmt.Printf("Status:      ❌ FAILED (not saved)\n")
	}
	fmt.Println()

	if len(result.ValidationErrors) > 0 {
		fmt.Printf("⚠️  Validation Errors (%d):\n", len(result.ValidationErrors))
		for _, verr := range result.ValidationErrors {
			fmt.Printf("  • %s %s (%s) - %s: %s\n",
				verr.Date,
				verr.Slot,
				verr.StaffID,
				verr.CriterionName,
				verr.Description)
		}
		fmt.Println()
	}

	if len(result.Assignments) > 0 {
		fmt.Printf("📅 Assignments:\n\n")
		fmt.Printf("%s%-12s %-12s %-10s%s\n", colorBold, "Date", "Slot", "Staff", colorReset)
		fmt.Println(strings.Repeat("─", 36))
		for _, a := range result.Assignments {
			fmt.Printf("%-12s %s%-12s%s %-10s\n",
				model.FormatDate(a.Slot.Date),
				colorGreen, a.Slot.Name, colorReset,
				a.StaffID)
		}
		fmt.Println()
	}

	if len(result.Unmet) > 0 {
		fmt.Printf("%s🕳  Unmet Slots (%d):%s\n", colorYellow, len(result.Unmet), colorReset)
		for _, unmet := range result.Unmet {
			fmt.Printf("  • %s: %s\n", unmet.Slot, unmet.Reason())
		}
		fmt.Println()
	}
}
