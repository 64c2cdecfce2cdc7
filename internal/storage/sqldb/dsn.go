package sqldb

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/devboard-backend/config"
)

// DSN returns the data source name for cfg's driver.
func DSN(cfg *config.DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		if cfg.Driver == config.DriverSQLite {
			// sqlite:///relative.db and sqlite:////abs/path.db
			path := strings.TrimPrefix(cfg.URL, "sqlite:///")
			return strings.TrimPrefix(path, "sqlite://"), nil
		}
		return cfg.URL, nil
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		return cfg.SQLitePath, nil
	case config.DriverPostgres, config.DriverPgx:
		sslMode := cfg.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
