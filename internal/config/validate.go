package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate проверяет согласованность конфигурации.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port: %d out of range", c.Server.Port))
	}

	c.Store.Driver = strings.ToLower(c.Store.Driver)
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("store.mongo_uri is required for mongo driver"))
		}
		if c.Store.MongoDatabase == "" {
			errs = append(errs, errors.New("store.mongo_database is required for mongo driver"))
		}
	case DriverPostgres:
		if c.Store.PostgresURL == "" {
			errs = append(errs, errors.New("store.postgres_url is required for postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text", "pretty":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	if c.Sweeper.Port <= 0 || c.Sweeper.Port > 65535 {
		errs = append(errs, fmt.Errorf("sweeper.port: %d out of range", c.Sweeper.Port))
	}
	if _, err := cron.ParseStandard(c.Sweeper.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("sweeper.schedule: %w", err))
	}
	if c.Sweeper.Retention < 0 {
		errs = append(errs, errors.New("sweeper.retention must not be negative"))
	}

	return errors.Join(errs...)
}
