package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 3000 {
		t.Errorf("Server.Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Sweeper.Port != 3001 {
		t.Errorf("Sweeper.Port = %d, want 3001", cfg.Sweeper.Port)
	}
	if cfg.Client.APIURL != "http://localhost:3000" {
		t.Errorf("Client.APIURL = %q, want http://localhost:3000", cfg.Client.APIURL)
	}
	if cfg.Store.Driver != DriverMongo {
		t.Errorf("Store.Driver = %q, want mongo", cfg.Store.Driver)
	}
	if cfg.Sweeper.Schedule != "@every 1h" {
		t.Errorf("Sweeper.Schedule = %q, want @every 1h", cfg.Sweeper.Schedule)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgresql://u:p@db:5432/glimpse")
	t.Setenv("AMQP_URL", "amqp://guest:guest@mq:5672/")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SWEEPER_RETENTION", "48h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("Store.Driver = %q, want postgres", cfg.Store.Driver)
	}
	if cfg.Store.PostgresURL != "postgresql://u:p@db:5432/glimpse" {
		t.Errorf("Store.PostgresURL = %q", cfg.Store.PostgresURL)
	}
	if cfg.AMQP.URL != "amqp://guest:guest@mq:5672/" {
		t.Errorf("AMQP.URL = %q", cfg.AMQP.URL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[1] != "http://b.test" {
		t.Errorf("Server.CORSOrigins = %v", cfg.Server.CORSOrigins)
	}
	if cfg.Sweeper.Retention != 48*time.Hour {
		t.Errorf("Sweeper.Retention = %v, want 48h", cfg.Sweeper.Retention)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glimpse.yaml")
	data := []byte(`
server:
  port: 9000
store:
  mongo_database: catalog
sweeper:
  schedule: "*/5 * * * *"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Store.MongoDatabase != "catalog" {
		t.Errorf("Store.MongoDatabase = %q, want catalog", cfg.Store.MongoDatabase)
	}
	if cfg.Store.MongoURI != "mongodb://mongo:27017" {
		t.Errorf("env should override file, got %q", cfg.Store.MongoURI)
	}
	if cfg.Sweeper.Schedule != "*/5 * * * *" {
		t.Errorf("Sweeper.Schedule = %q", cfg.Sweeper.Schedule)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("defaults should survive file load, got %v", cfg.Server.ShutdownTimeout)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PORT", "server.port"},
		{"API_PORT", "server.port"},
		{"MONGO_URI", "store.mongo_uri"},
		{"DB_URL", "store.postgres_url"},
		{"GLIMPSE_SERVER_PORT", "server.port"},
		{"GLIMPSE_STORE_MAX_CONNS", "store.max_conns"},
		{"GLIMPSE_UNKNOWN_FIELD", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"unknown driver", func(c *Config) { c.Store.Driver = "sqlite" }, true},
		{"driver case-insensitive", func(c *Config) { c.Store.Driver = "POSTGRES" }, false},
		{"postgres without url", func(c *Config) {
			c.Store.Driver = DriverPostgres
			c.Store.PostgresURL = ""
		}, true},
		{"bad schedule", func(c *Config) { c.Sweeper.Schedule = "whenever" }, true},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"negative retention", func(c *Config) { c.Sweeper.Retention = -time.Hour }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
