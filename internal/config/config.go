// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the file leaves a value empty
const (
	EnvDatabaseURL = "DATABASE_URL"
	EnvRedisURL    = "REDIS_URL"
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvResume      = "JOB_DISCOVERY_RESUME"
)

// Config is the discovery configuration loadable from a JSON or YAML file.
// Zero values mean "use the default"; CLI flags override file values.
type Config struct {
	// Search
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Days     int    `json:"days,omitempty" yaml:"days,omitempty" validate:"gte=0,lte=365"`
	MinScore int    `json:"min_score,omitempty" yaml:"min_score,omitempty" validate:"gte=0,lte=100"`
	Limit    int    `json:"limit,omitempty" yaml:"limit,omitempty" validate:"gte=0"`
	Remote   bool   `json:"remote,omitempty" yaml:"remote,omitempty"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`

	// Inputs and outputs
	Resume     string `json:"resume,omitempty" yaml:"resume,omitempty"`
	ResultsDir string `json:"results_dir,omitempty" yaml:"results_dir,omitempty"`

	// Scoring
	Vocabulary      []string            `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty" validate:"omitempty,dive,required"`
	Synonyms        map[string][]string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	SalaryThreshold float64             `json:"salary_threshold,omitempty" yaml:"salary_threshold,omitempty" validate:"gte=0"`
	LLMSkills       bool                `json:"llm_skills,omitempty" yaml:"llm_skills,omitempty"`
	APIKey          string              `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Scraping pace
	Concurrency       int     `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0,lte=10"`
	BatchDelayMs      int     `json:"batch_delay_ms,omitempty" yaml:"batch_delay_ms,omitempty" validate:"gte=0"`
	ListingSettleMs   int     `json:"listing_settle_ms,omitempty" yaml:"listing_settle_ms,omitempty" validate:"gte=0"`
	PostingSettleMs   int     `json:"posting_settle_ms,omitempty" yaml:"posting_settle_ms,omitempty" validate:"gte=0"`
	MaxPostings       int     `json:"max_postings,omitempty" yaml:"max_postings,omitempty" validate:"gte=0"`
	RetryAttempts     int     `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"gte=0,lte=10"`
	RetryBaseDelayMs  int     `json:"retry_base_delay_ms,omitempty" yaml:"retry_base_delay_ms,omitempty" validate:"gte=0"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty" validate:"gte=0"`
	ShowBrowser       bool    `json:"show_browser,omitempty" yaml:"show_browser,omitempty"`
	ChromePath        string  `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`

	// Storage
	DatabaseURL   string `json:"database_url,omitempty" yaml:"database_url,omitempty" validate:"omitempty,url"`
	RedisURL      string `json:"redis_url,omitempty" yaml:"redis_url,omitempty" validate:"omitempty,url"`
	CacheTTLHours int    `json:"cache_ttl_hours,omitempty" yaml:"cache_ttl_hours,omitempty" validate:"gte=0"`

	// Watch
	WatchSchedule string `json:"watch_schedule,omitempty" yaml:"watch_schedule,omitempty"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Source:           "hiringcafe",
		Days:             14,
		MinScore:         60,
		Limit:            20,
		ResultsDir:       "data/job_discovery",
		SalaryThreshold:  150000,
		Concurrency:      3,
		BatchDelayMs:     3000,
		ListingSettleMs:  5000,
		PostingSettleMs:  2000,
		MaxPostings:      50,
		RetryAttempts:    3,
		RetryBaseDelayMs: 1000,
		CacheTTLHours:    24,
		WatchSchedule:    "@every 6h",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by their file key
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks value ranges. Required inputs such as the query are
// checked by the CLI after merging.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config error: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("'%s' must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("'%s' must be at most %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("'%s' must be a URL", fe.Field())
	case "required":
		return fmt.Sprintf("'%s' must not contain empty entries", fe.Field())
	default:
		return fmt.Sprintf("'%s' failed '%s'", fe.Field(), fe.Tag())
	}
}

// MergeWithDefaults returns a copy of c with zero-valued fields taken from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.Source, defaults.Source)
	mergeString(&result.Location, defaults.Location)
	mergeString(&result.Resume, defaults.Resume)
	mergeString(&result.ResultsDir, defaults.ResultsDir)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.ChromePath, defaults.ChromePath)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.RedisURL, defaults.RedisURL)
	mergeString(&result.WatchSchedule, defaults.WatchSchedule)

	mergeInt(&result.Days, defaults.Days)
	mergeInt(&result.MinScore, defaults.MinScore)
	mergeInt(&result.Limit, defaults.Limit)
	mergeInt(&result.Concurrency, defaults.Concurrency)
	mergeInt(&result.BatchDelayMs, defaults.BatchDelayMs)
	mergeInt(&result.ListingSettleMs, defaults.ListingSettleMs)
	mergeInt(&result.PostingSettleMs, defaults.PostingSettleMs)
	mergeInt(&result.MaxPostings, defaults.MaxPostings)
	mergeInt(&result.RetryAttempts, defaults.RetryAttempts)
	mergeInt(&result.RetryBaseDelayMs, defaults.RetryBaseDelayMs)
	mergeInt(&result.CacheTTLHours, defaults.CacheTTLHours)

	if result.SalaryThreshold == 0 {
		result.SalaryThreshold = defaults.SalaryThreshold
	}
	if result.RequestsPerSecond == 0 {
		result.RequestsPerSecond = defaults.RequestsPerSecond
	}
	if len(result.Vocabulary) == 0 {
		result.Vocabulary = defaults.Vocabulary
	}
	if result.Synonyms == nil {
		result.Synonyms = defaults.Synonyms
	}

	// Bools cannot distinguish unset from false; CLI flags decide them.

	return result
}

// ApplyEnv fills empty connection settings from the environment
func (c *Config) ApplyEnv() {
	mergeString(&c.DatabaseURL, os.Getenv(EnvDatabaseURL))
	mergeString(&c.RedisURL, os.Getenv(EnvRedisURL))
	mergeString(&c.APIKey, os.Getenv(EnvAPIKey))
	mergeString(&c.Resume, os.Getenv(EnvResume))
}

// Millis converts a millisecond setting to a duration
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func mergeInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}
