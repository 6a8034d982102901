package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/db"
)

// StaffClient defines the interface for fetching the staff roster
type StaffClient interface {
	ListStaff(cfg *config.Config) ([]model.StaffMember, error)
}

// SyncRosterStore defines the database operations needed to sync the roster
type SyncRosterStore interface {
	ReplaceStaff(ctx context.Context, staff []db.Staff) error
	ReplaceStations(ctx context.Context, stations []string) error
}

// SyncRosterResult reports what was imported
type SyncRosterResult struct {
	Staff    []model.StaffMember
	Stations []string
	Warnings []string
}

// SyncRoster imports staff from the staff sheet and stations from config into the store
func SyncRoster(ctx context.Context, store SyncRosterStore, staffClient StaffClient, cfg *config.Config, logger *zap.Logger) (*SyncRosterResult, error) {
	logger.Debug("Fetching staff from sheet")
	staff, err := staffClient.ListStaff(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	logger.Debug("Found staff", zap.Int("count", len(staff)))

	result := &SyncRosterResult{Staff: staff, Stations: cfg.Stations}
	result.Warnings = checkCapabilities(staff, cfg)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	rows := make([]db.Staff, len(staff))
	for i, member := range staff {
		rows[i] = staffToDB(member)
	}

	if err := store.ReplaceStaff(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to save staff: %w", err)
	}
	if err := store.ReplaceStations(ctx, cfg.Stations); err != nil {
		return nil, fmt.Errorf("failed to save stations: %w", err)
	}

	logger.Info("Roster synced", zap.Int("staff", len(staff)), zap.Int("stations", len(cfg.Stations)))

	return result, nil
}

// checkCapabilities flags capability names that match no station or role, and
// groups without a rest-day pattern
func checkCapabilities(staff []model.StaffMember, cfg *config.Config) []string {
	known := model.NewNameSet(cfg.Stations...)
	for _, role := range model.AllRoles {
		known[string(role)] = true
	}

	groups := make(map[string]bool, len(cfg.RestDays))
	for _, pattern := range cfg.RestDays {
		groups[pattern.Group] = true
	}

	var warnings []string
	for _, member := range staff {
		for _, set := range []model.NameSet{member.Certified, member.Learning, member.Excluded} {
			for _, name := range set.Sorted() {
				if !known.Contains(name) {
					warnings = append(warnings, fmt.Sprintf("staff %s lists unknown station or role %q", member.ID, name))
				}
			}
		}
		if member.GroupKey != "" && !groups[member.GroupKey] {
			warnings = append(warnings, fmt.Sprintf("staff %s is in group %q which has no rest-day pattern", member.ID, member.GroupKey))
		}
	}
	return warnings
}
