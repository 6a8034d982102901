package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/restdays"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/utils"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Env      string
	Cfg      *config.Config
	RestDays *restdays.Calendar
	Database db.Database
	Broker   *db.Broker
	Logger   *zap.Logger
	Ctx      context.Context

	sheetsClient *sheetsclient.Client
}

// SheetsClient returns the Sheets client, authenticating on first use.
// Only syncRoster and publishRoster need it.
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	tokens, err := utils.NewTokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, tokens, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}

// parseRange parses the <start> <end> arguments shared by range commands
func parseRange(startArg, endArg string) (time.Time, time.Time, error) {
	start, err := model.ParseDate(startArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start: %w", err)
	}
	end, err := model.ParseDate(endArg)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end: %w", err)
	}
	return start, end, nil
}
