// Package config loads Phase configuration from an optional YAML file, an
// optional .env file, and the process environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Phase-Platform/phase/internal/db"
)

// Modes.
const (
	ModeDevelopment = "development"
	ModeTest        = "test"
	ModeProduction  = "production"
)

// Config is the top-level Phase configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`

	Mode             string `yaml:"mode" env:"PHASE_MODE" validate:"oneof=development test production"`
	AuthSecret       string `yaml:"auth_secret" env:"PHASE_AUTH_SECRET" validate:"required_if=Mode production,omitempty,min=32"`
	ListenAddr       string `yaml:"listen_addr" env:"PHASE_LISTEN_ADDR" validate:"required"`
	RequestTimeoutMS int    `yaml:"request_timeout_ms" env:"PHASE_REQUEST_TIMEOUT" validate:"gt=0"`
	LogLevel         string `yaml:"log_level" env:"PHASE_LOG_LEVEL" validate:"oneof=trace debug info warn error disabled"`
}

// DatabaseConfig holds the store connection settings.
type DatabaseConfig struct {
	URL                 string `yaml:"url" env:"DATABASE_URL" validate:"required"`
	MaxConnections      int    `yaml:"max_connections" env:"DATABASE_MAX_CONNECTIONS" validate:"gte=1"`
	IdleTimeoutMS       int    `yaml:"idle_timeout_ms" env:"DATABASE_IDLE_TIMEOUT" validate:"gte=0"`
	ConnectionTimeoutMS int    `yaml:"connection_timeout_ms" env:"DATABASE_CONNECTION_TIMEOUT" validate:"gt=0"`
	SSLEnabled          bool   `yaml:"ssl_enabled" env:"DATABASE_SSL_ENABLED"`
}

// Sources names where Load reads from. Empty paths are skipped; a named .env
// file that does not exist is ignored, a named YAML file that does not exist
// is an error.
type Sources struct {
	File   string
	DotEnv string
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
}

// Problem is one invalid setting, named by its environment variable.
type Problem struct {
	Var     string
	Message string
}

// Error lists every invalid setting found by one Load.
type Error struct {
	Problems []Problem
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Var + " " + p.Message
	}
	return "config: invalid configuration: " + strings.Join(parts, "; ")
}

// Vars returns the names of the invalid variables.
func (e *Error) Vars() []string {
	out := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		out[i] = p.Var
	}
	return out
}

// Load reads every source and returns a validated Config.
func Load(src Sources) (*Config, error) {
	var data []byte
	if src.File != "" {
		b, err := os.ReadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", src.File, err)
		}
		data = b
	}

	environ := src.Environ
	if environ == nil {
		environ = processEnv()
	}
	if src.DotEnv != "" {
		dot, err := godotenv.Read(src.DotEnv)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", src.DotEnv, err)
		default:
			environ = overlay(dot, environ)
		}
	}
	return Parse(data, environ)
}

// Parse unmarshals YAML bytes, applies the environment on top, and validates
// the result. data may be empty. Every invalid variable is reported in one
// *Error: a value that does not parse is listed next to the missing and
// out-of-range ones.
func Parse(data []byte, environ map[string]string) (*Config, error) {
	cfg := defaults()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse: %w", err)
		}
	}
	bad := typeProblems(reflect.TypeOf(cfg), environ)
	if err := env.Parse(&cfg, env.Options{Environment: without(environ, bad)}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}
	cfg.applyDefaults()

	problems, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	if problems = merge(bad, problems); len(problems) > 0 {
		return nil, &Error{Problems: problems}
	}
	return &cfg, nil
}

// defaults returns the values used for settings no source mentions. An
// explicit zero from a source replaces them and is then validated.
func defaults() Config {
	return Config{
		Mode:             ModeDevelopment,
		ListenAddr:       ":8080",
		RequestTimeoutMS: 10000,
		Database: DatabaseConfig{
			MaxConnections:      10,
			IdleTimeoutMS:       30000,
			ConnectionTimeoutMS: 5000,
		},
	}
}

// applyDefaults fills in the settings that depend on others.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
		if c.Mode == ModeDevelopment {
			c.LogLevel = "debug"
		}
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		return name
	})
	return v
}

// validate checks every field and returns all failures together.
func (c *Config) validate() ([]Problem, error) {
	err := validate.Struct(c)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	problems := make([]Problem, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, Problem{Var: fe.Field(), Message: describe(fe)})
	}
	return problems, nil
}

// merge joins problem lists sorted by variable, keeping the first problem
// reported for each variable.
func merge(lists ...[]Problem) []Problem {
	seen := make(map[string]bool)
	var out []Problem
	for _, list := range lists {
		for _, p := range list {
			if !seen[p.Var] {
				seen[p.Var] = true
				out = append(out, p)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Var < out[j].Var })
	return out
}

// typeProblems reports every variable whose value cannot be parsed into its
// field, so that one bad number does not hide the others.
func typeProblems(t reflect.Type, environ map[string]string) []Problem {
	var out []Problem
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type.Kind() == reflect.Struct {
			out = append(out, typeProblems(f.Type, environ)...)
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("env"), ",")
		raw, ok := environ[name]
		if name == "" || !ok || raw == "" {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Int:
			if _, err := strconv.Atoi(raw); err != nil {
				out = append(out, Problem{Var: name, Message: fmt.Sprintf("must be an integer (got %q)", raw)})
			}
		case reflect.Bool:
			if _, err := strconv.ParseBool(raw); err != nil {
				out = append(out, Problem{Var: name, Message: fmt.Sprintf("must be true or false (got %q)", raw)})
			}
		}
	}
	return out
}

// without returns environ minus the variables named in problems.
func without(environ map[string]string, problems []Problem) map[string]string {
	if len(problems) == 0 {
		return environ
	}
	out := maps.Clone(environ)
	for _, p := range problems {
		delete(out, p.Var)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_if":
		return "is required in production mode"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s (got %q)", strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	}
	return fmt.Sprintf("failed %s check", fe.Tag())
}

// DBOptions returns the pool settings for db.Open.
func (c *Config) DBOptions() db.Options {
	return db.Options{
		MaxOpenConns:   c.Database.MaxConnections,
		IdleTimeout:    millis(c.Database.IdleTimeoutMS),
		ConnectTimeout: millis(c.Database.ConnectionTimeoutMS),
		SSL:            c.Database.SSLEnabled,
		Debug:          c.LogLevel == "trace",
	}
}

// RequestTimeout is the per-request deadline of the RPC server.
func (c *Config) RequestTimeout() time.Duration {
	return millis(c.RequestTimeoutMS)
}

// Production reports whether the process runs in production mode.
func (c *Config) Production() bool {
	return c.Mode == ModeProduction
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func processEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

// overlay returns base with every key of over that base does not already set.
func overlay(over, base map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range over {
		out[k] = v
	}
	for k, v := range base {
		out[k] = v
	}
	return out
}
