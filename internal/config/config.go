package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/vending-server/internal/currency"
)

// ConfigFileEnv names the environment variable holding an optional YAML config path.
const ConfigFileEnv = "VENDING_CONFIG"

type Config struct {
	Postgres PostgresConfig `koanf:"postgres"`
	HTTP     HTTPConfig     `koanf:"http"`
	Operator OperatorConfig `koanf:"operator"`
	Attempt  AttemptConfig  `koanf:"attempt"`
	Log      LogConfig      `koanf:"log"`
	Currency CurrencyConfig `koanf:"currency"`
}

type PostgresConfig struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

type HTTPConfig struct {
	Port string `koanf:"port"`
}

type OperatorConfig struct {
	Workers int `koanf:"workers"`
}

// AttemptConfig controls how long an evaluated purchase waits for confirmation.
type AttemptConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type CurrencyConfig struct {
	Code   string `koanf:"code"`
	Locale string `koanf:"locale"`
	Symbol string `koanf:"symbol"`
}

// envSections are the first key segments accepted from the environment. POSTGRES_ADDRESS maps
// to postgres.address, HTTP_PORT to http.port, and so on.
var envSections = map[string]bool{
	"postgres": true,
	"http":     true,
	"operator": true,
	"attempt":  true,
	"log":      true,
	"currency": true,
}

// In all cases the default behavior should be for the docker compose setup
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"postgres.address":  "localhost",
		"postgres.port":     "5433",
		"postgres.db":       "postgres",
		"postgres.username": "postgres",
		"postgres.password": "testpassword",
		"http.port":         "9446",
		"operator.workers":  4,
		"attempt.ttl":       5 * time.Minute,
		"log.level":         "info",
		"currency.code":     currency.DefaultCode,
		"currency.locale":   currency.DefaultLocale,
		"currency.symbol":   currency.DefaultSymbol,
	}
}

// ProcessEnvironmentVariables loads defaults, the YAML file named by VENDING_CONFIG if set,
// and then environment overrides.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load(os.Getenv(ConfigFileEnv))
}

// Load builds a Config from defaults, an optional YAML file and the environment, in that order.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envKey(s string) string {
	key := strings.Replace(strings.ToLower(s), "_", ".", 1)
	section, _, found := strings.Cut(key, ".")
	if !found || !envSections[section] {
		return ""
	}
	return key
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Operator.Workers < 1 {
		errs = append(errs, fmt.Errorf("operator.workers must be at least 1, got %d", c.Operator.Workers))
	}
	if c.Attempt.TTL <= 0 {
		errs = append(errs, fmt.Errorf("attempt.ttl must be positive, got %s", c.Attempt.TTL))
	}
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if _, err := c.Formatter(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// ConnectionString returns the lib/pq URL for the configured database.
func (p PostgresConfig) ConnectionString() string {
	return "postgres://" + p.Username + ":" + p.Password + "@" + p.Address + ":" + p.Port + "/" + p.DB + "?sslmode=disable"
}

// Formatter builds the currency formatter for the configured currency.
func (c *Config) Formatter() (*currency.Formatter, error) {
	return currency.NewFormatter(c.Currency.Code, c.Currency.Locale, c.Currency.Symbol)
}

// LogLevel returns the parsed log level, falling back to info.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
