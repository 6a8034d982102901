package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/core/allocator"
)

// RosterPublisher defines the interface for writing a roster grid to a spreadsheet
type RosterPublisher interface {
	PublishRoster(spreadsheetID string, roster *sheetsclient.PublishedRoster) (string, error)
}

// PublishRosterResult reports where the roster was written
type PublishRosterResult struct {
	TabTitle string
	Roster   *sheetsclient.PublishedRoster
}

// PublishRoster writes the roster between start and end to the configured roster spreadsheet
func PublishRoster(
	ctx context.Context,
	store ViewRosterStore,
	restDays allocator.RestDayCalendar,
	publisher RosterPublisher,
	cfg *config.Config,
	logger *zap.Logger,
	start, end time.Time,
) (*PublishRosterResult, error) {
	if cfg.RosterSheetID == "" {
		return nil, fmt.Errorf("rosterSheetID is not configured")
	}

	view, err := ViewRoster(ctx, store, restDays, logger, start, end)
	if err != nil {
		return nil, err
	}

	roster := BuildPublishedRoster(view)

	logger.Debug("Publishing roster", zap.String("range", view.Range.String()), zap.Int("rows", len(roster.Rows)))
	tabTitle, err := publisher.PublishRoster(cfg.RosterSheetID, roster)
	if err != nil {
		return nil, fmt.Errorf("failed to publish roster: %w", err)
	}

	logger.Info("Roster published", zap.String("tab", tabTitle))

	return &PublishRosterResult{TabTitle: tabTitle, Roster: roster}, nil
}

// BuildPublishedRoster renders the view as spreadsheet text
func BuildPublishedRoster(view *RosterView) *sheetsclient.PublishedRoster {
	roster := &sheetsclient.PublishedRoster{
		Start: view.Range.Start,
		End:   view.Range.End,
		Dates: view.Dates,
	}
	for _, row := range view.Rows {
		published := sheetsclient.PublishedRosterRow{StaffName: row.Staff.Name}
		for i, cell := range row.Cells {
			published.Cells = append(published.Cells, view.CellText(view.Dates[i], cell))
		}
		roster.Rows = append(roster.Rows, published)
	}
	return roster
}
