// Package config loads the guide settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Settings drive one guide process.
type Settings struct {
	Site         string `mapstructure:"site" validate:"required"`
	LanguagesDir string `mapstructure:"languages_dir"`
	Lang         string `mapstructure:"lang" validate:"required"`

	Origin      string `mapstructure:"origin" validate:"required"`
	Destination string `mapstructure:"destination" validate:"required"`
	Level       int    `mapstructure:"level" validate:"gte=0"`

	Wait                 time.Duration `mapstructure:"wait" validate:"gt=0"`
	MaxNavigationRetries int           `mapstructure:"max_navigation_retries" validate:"gte=0"`
	RetryDelay           time.Duration `mapstructure:"retry_delay" validate:"gte=0"`
	SimulateResponses    bool          `mapstructure:"simulate_responses"`
	MoveSpeed            float64       `mapstructure:"move_speed" validate:"gte=0"`

	MetricsAddr string `mapstructure:"metrics_addr"`
	SessionID   string `mapstructure:"session_id"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" validate:"oneof=text json"`

	Store StoreSettings `mapstructure:"store"`
}

// StoreSettings select where walk progress is kept.
type StoreSettings struct {
	Kind      string        `mapstructure:"kind" validate:"oneof=memory file redis"`
	Dir       string        `mapstructure:"dir"`
	RedisAddr string        `mapstructure:"redis_addr" validate:"required_if=Kind redis"`
	Prefix    string        `mapstructure:"prefix"`
	TTL       time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// Defaults returns the settings used when neither file nor flags say otherwise.
func Defaults() Settings {
	return Settings{
		Site:                 "site.yaml",
		LanguagesDir:         "languages",
		Lang:                 "en",
		Origin:               "A",
		Destination:          "D",
		Level:                1,
		Wait:                 60 * time.Second,
		MaxNavigationRetries: 5,
		RetryDelay:           time.Second,
		MoveSpeed:            0.5,
		LogLevel:             "info",
		LogFormat:            "text",
		Store: StoreSettings{
			Kind:   "memory",
			Dir:    ".wayfinder/sessions",
			Prefix: "wayfinder:session:",
		},
	}
}

// Load applies the YAML file at path over Defaults. An empty path returns the defaults.
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := Decode(data, &s); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode merges a YAML document into s. Unknown keys are rejected.
func Decode(data []byte, s *Settings) error {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           s,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Finalize fills generated values and validates the settings.
func (s *Settings) Finalize() error {
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	return s.Validate()
}

// Validate checks every field constraint and reports them all at once.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
}
