package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name    string   `mapstructure:"name"`
	Driver  string   `mapstructure:"driver"`
	DSN     string   `mapstructure:"dsn"`
	Schemas []string `mapstructure:"schemas"`
	Active  bool     `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	if activeConfig.Driver == "" {
		activeConfig.Driver = DetectDriver(activeConfig.DSN)
	}
	return activeConfig, nil
}

// ResolveConnection picks the database to read: an explicit --dsn wins,
// then the active entry of databases[], then database.dsn from config or
// environment.
func ResolveConnection() (*DBConfig, error) {
	if dsn == "" {
		if active, err := GetActiveDBConfig(); err == nil {
			return active, nil
		}
	}

	connStr := viper.GetString("database.dsn")
	if connStr == "" {
		return nil, fmt.Errorf("database.dsn is required (via flag, env or config)")
	}

	driver := viper.GetString("database.driver")
	if driver == "" {
		driver = DetectDriver(connStr)
	}

	return &DBConfig{
		Name:    "CLI Wrapper",
		Driver:  driver,
		DSN:     connStr,
		Schemas: viper.GetStringSlice("database.schemas"),
		Active:  true,
	}, nil
}

// DetectDriver guesses the database/sql driver from the shape of a DSN.
func DetectDriver(connStr string) string {
	lower := strings.ToLower(connStr)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"),
		strings.Contains(lower, "sslmode"):
		return "postgres"
	case strings.HasPrefix(lower, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(lower, "oracle://"):
		return "oracle"
	case strings.HasPrefix(lower, "file:"), strings.HasSuffix(lower, ".db"),
		strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"),
		lower == ":memory:":
		return "sqlite"
	default:
		return "mysql"
	}
}
