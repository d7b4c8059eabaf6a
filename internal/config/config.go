// Package config loads quizdeck settings from defaults, an optional YAML
// file and QUIZDECK_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/quizdeck/internal/scoring"
	"github.com/abhisek/quizdeck/internal/session"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all application configuration.
type Config struct {
	ChoiceSeconds   int `yaml:"choice_seconds" validate:"gte=1"`
	MarathonSeconds int `yaml:"marathon_seconds" validate:"gte=1"`
	PracticeSeconds int `yaml:"practice_seconds" validate:"gte=1"`
	ExamSeconds     int `yaml:"exam_seconds" validate:"gte=1"`

	HintLimit     int `yaml:"hint_limit" validate:"gte=1"`
	PassThreshold int `yaml:"pass_threshold" validate:"gte=1,lte=100"`

	// Seed fixes question and option order. Zero means random.
	Seed uint64 `yaml:"seed"`

	// DBPath is the ledger database. Empty resolves to the XDG data dir.
	DBPath string `yaml:"db_path"`

	// BankPath is a JSON or YAML question bank. Empty uses the built-in bank.
	BankPath string `yaml:"bank_path"`

	Log LogConfig `yaml:"log"`
}

// LogConfig controls the file logger. The TUI owns the terminal, so logs
// never go to stdout.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	File   string `yaml:"file"`
	Format string `yaml:"format" validate:"oneof=json pretty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ChoiceSeconds:   session.DefaultChoiceSeconds,
		MarathonSeconds: session.DefaultMarathonSeconds,
		PracticeSeconds: session.DefaultPracticeSeconds,
		ExamSeconds:     session.DefaultExamSeconds,
		HintLimit:       session.DefaultHintLimit,
		PassThreshold:   scoring.DefaultPassThreshold,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. A .env file is loaded if present. path
// names an optional YAML file; when empty QUIZDECK_CONFIG is consulted.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := Default()

	if path == "" {
		path = os.Getenv("QUIZDECK_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := parseYAML(data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseYAML decodes a single YAML document onto cfg, rejecting unknown keys.
func parseYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parse config: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.DBPath = getEnv("QUIZDECK_DB", cfg.DBPath)
	cfg.BankPath = getEnv("QUIZDECK_BANK", cfg.BankPath)
	cfg.Log.Level = getEnv("QUIZDECK_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("QUIZDECK_LOG_FILE", cfg.Log.File)
	cfg.HintLimit = getEnvInt("QUIZDECK_HINT_LIMIT", cfg.HintLimit)
	cfg.Seed = getEnvUint("QUIZDECK_SEED", cfg.Seed)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field. Failures wrap ErrInvalid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Durations returns the per-question timer lengths.
func (c *Config) Durations() session.Durations {
	return session.Durations{
		Choice:   c.ChoiceSeconds,
		Marathon: c.MarathonSeconds,
		Practice: c.PracticeSeconds,
		Exam:     c.ExamSeconds,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
