package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/restdays"
)

const configFileName = "roster_config.yaml"

// Storage backends
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// RestDayPattern defines the rest days of one staff group
type RestDayPattern struct {
	Group  string `yaml:"group" validate:"required"`
	RRule  string `yaml:"rrule" validate:"required"`
	Anchor string `yaml:"anchor,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Config represents the application configuration
type Config struct {
	Backend     string `yaml:"backend" validate:"required,oneof=postgres sqlite memory"`
	DatabaseURL string `yaml:"databaseURL,omitempty" validate:"required_if=Backend postgres"`
	SQLitePath  string `yaml:"sqlitePath,omitempty" validate:"required_if=Backend sqlite"`

	// Staff roster sheet, only needed by syncRoster
	StaffSheetID string `yaml:"staffSheetID,omitempty"`
	StaffTab     string `yaml:"staffTab,omitempty" validate:"required_with=StaffSheetID"`

	// Spreadsheet that publishRoster writes to
	RosterSheetID string `yaml:"rosterSheetID,omitempty"`

	Stations []string         `yaml:"stations" validate:"required,min=1,unique,dive,required,ne=OFF"`
	RestDays []RestDayPattern `yaml:"restDays,omitempty" validate:"unique=Group,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration with an environment suffix
// For example, env="test" will look for "roster_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := locate(envFileName(configFileName, env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, pattern := range cfg.RestDays {
		if _, err := rrule.StrToRRule(pattern.RRule); err != nil {
			return fmt.Errorf("invalid rrule in restDays[%d]: %w", i, err)
		}
	}

	return nil
}

// RestDayCalendar builds the rest-day calendar from the configured patterns
func (c *Config) RestDayCalendar() (*restdays.Calendar, error) {
	patterns := make([]restdays.Pattern, 0, len(c.RestDays))
	for _, p := range c.RestDays {
		pattern := restdays.Pattern{Group: p.Group, RRule: p.RRule}
		if p.Anchor != "" {
			anchor, err := model.ParseDate(p.Anchor)
			if err != nil {
				return nil, fmt.Errorf("invalid anchor for group %s: %w", p.Group, err)
			}
			pattern.Anchor = anchor
		}
		patterns = append(patterns, pattern)
	}

	return restdays.New(patterns)
}

// envFileName inserts env before the extension: ("roster_config.yaml", "test") -> "roster_config.test.yaml"
func envFileName(fileName, env string) string {
	if env == "" {
		return fileName
	}
	ext := filepath.Ext(fileName)
	return strings.TrimSuffix(fileName, ext) + "." + env + ext
}

// locate returns fileName from the working directory, falling back to the home directory
func locate(fileName string) (string, error) {
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
