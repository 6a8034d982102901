package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/cmd/cli/commands"
	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{Ctx: context.Background()}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Duty Roster CLI - Assign staff to stations and roles",
		Long:  `A CLI tool for building the department duty roster: automatic station and role assignment, manual edits, calendar events and scheduling cycles.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				if err := app.Database.Close(); err != nil {
					app.Logger.Warn("Failed to close database", zap.Error(err))
				}
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.SyncRosterCmd(app))
	rootCmd.AddCommand(commands.AssignStationsCmd(app))
	rootCmd.AddCommand(commands.AssignRolesCmd(app))
	rootCmd.AddCommand(commands.SetStationCmd(app))
	rootCmd.AddCommand(commands.ToggleRoleCmd(app))
	rootCmd.AddCommand(commands.ClearGeneratedCmd(app))
	rootCmd.AddCommand(commands.AddEventCmd(app))
	rootCmd.AddCommand(commands.DefineCycleCmd(app))
	rootCmd.AddCommand(commands.ConfirmCycleCmd(app))
	rootCmd.AddCommand(commands.UnlockCycleCmd(app))
	rootCmd.AddCommand(commands.ListCyclesCmd(app))
	rootCmd.AddCommand(commands.ViewRosterCmd(app))
	rootCmd.AddCommand(commands.WorkloadCmd(app))
	rootCmd.AddCommand(commands.PublishRosterCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, rest-day calendar and database
func initApp() error {
	var err error
	app.Env = env

	app.Logger, err = logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully", zap.String("backend", app.Cfg.Backend))

	app.RestDays, err = app.Cfg.RestDayCalendar()
	if err != nil {
		return fmt.Errorf("failed to build rest-day calendar: %w", err)
	}
	app.Logger.Debug("Rest-day calendar built", zap.Int("groups", app.RestDays.Groups()))

	app.Broker = db.NewBroker()
	app.Database, err = commands.OpenDatabase(app.Ctx, app.Cfg, app.Broker, app.Logger)
	if err != nil {
		return err
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}
