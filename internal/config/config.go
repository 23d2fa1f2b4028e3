package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the environment variables we read to koanf paths. Anything
// else in the environment is ignored.
var envKeys = map[string]string{
	"DB_NAME":           "db_name",
	"PORT":              "port",
	"SLACK_BOT_TOKEN":   "slack.token",
	"SLACK_CHANNEL_ID":  "slack.channel_id",
	"TURSO_PRIMARY_URL": "turso.primary_url",
	"TURSO_AUTH_TOKEN":  "turso.auth_token",
	"GCP_PROJECT":       "project_id",
	"PUBSUB_TOPIC":      "pubsub_topic",
	"TIMEZONE":          "timezone",
	"LOG_LEVEL":         "log_level",
	"SEED_OWNER_ID":     "seed.owner_id",
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		DBName:      "kickabout.db",
		Port:        "8080",
		PubSubTopic: "announce",
		Timezone:    "Europe/Istanbul",
		LogLevel:    "info",
		Seed:        SeederConfig{OwnerID: "demo"},
	}
}

// Load reads configuration from, lowest precedence first: defaults, the YAML
// file named by CONFIG_FILE, the .env file and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	k := koanf.New(".")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider("", ".", func(s string) string {
		return envKeys[s]
	})
	if err := k.Load(envProvider, nil); err != nil {
		return Config{}, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.DBName == "" && c.Turso.PrimaryURL == "" {
		return errors.New("db_name must be set when no Turso URL is configured")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Location returns the timezone announcements are rendered in, falling back to
// UTC if it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Warn("Failed to load timezone, using UTC", "timezone", c.Timezone, "error", err)
		return time.UTC
	}
	return loc
}
