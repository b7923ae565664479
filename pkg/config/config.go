// Package config loads and validates the extractor's YAML run
// configuration. Command-line flags override anything set here.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance
var validate = validator.New()

// Config is the run configuration for the extractor.
type Config struct {
	// Output is the CSV destination path; "-" means stdout, empty means
	// no CSV dump.
	Output string `yaml:"output"`

	// PrettyPrint renders the forest per snapshot date to stdout.
	PrettyPrint bool `yaml:"prettyprint"`

	// Date limits pretty-printing to one snapshot date: "first", "last"
	// or YYYY-MM-DD. Empty prints every date.
	Date string `yaml:"date"`

	// StartDate seeds the clock for decks without START, YYYY-MM-DD.
	StartDate string `yaml:"startdate" validate:"omitempty,datetime=2006-01-02"`

	// SkipWelspecs keeps only group-to-group edges.
	SkipWelspecs bool `yaml:"skip_welspecs"`

	// ZoneMapFile names the zone-mapping file, relative to the deck.
	ZoneMapFile string `yaml:"zonemap"`

	// DatabaseURL, when set, loads the table into Postgres.
	DatabaseURL string `yaml:"database_url" validate:"omitempty,uri"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Cache enables the snappy-compressed result cache next to the
	// deck file.
	Cache bool `yaml:"cache"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{LogLevel: "warn"}
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// StartDateTime parses StartDate, or returns nil when unset.
func (c *Config) StartDateTime() (*time.Time, error) {
	if c.StartDate == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", c.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("startdate: %w", err)
	}
	return &t, nil
}

// formatValidationError rewrites the first struct-tag violation in a
// user-friendly form.
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "datetime":
			return fmt.Errorf("%s: must be a YYYY-MM-DD date", field)
		case "uri":
			return fmt.Errorf("%s: must be a valid URI", field)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, e.Param())
		default:
			return fmt.Errorf("%s: failed %s validation", field, e.Tag())
		}
	}
	return err
}
