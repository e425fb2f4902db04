// Package config loads service and CLI settings from defaults, an optional
// criteria.yaml, a .env file and CRITERIA_* environment variables.
package config

import (
	"os"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/opaque"
	"github.com/nrfta/criteria-go/paging"
	"github.com/nrfta/criteria-go/plain"
)

// Setting keys.
const (
	KeyDefaultSize  = "paging.default_size"
	KeyMaxSize      = "paging.max_size"
	KeyDefaultSorts = "paging.default_sorts"
	KeyStrictSize   = "paging.strict_size"
	KeyCodec        = "codec"
	KeyServerAddr   = "server.addr"
	KeyDatabaseURL  = "database.url"
	KeyLogLevel     = "log.level"
)

// EnvPrefix prefixes every environment override, e.g. CRITERIA_PAGING_MAX_SIZE.
const EnvPrefix = "CRITERIA"

// Config is a loaded set of settings.
type Config struct {
	v *viper.Viper
}

// Option customizes Load.
type Option func(*options)

type options struct {
	file    string
	paths   []string
	envFile string
}

// WithFile reads settings from the given file instead of searching for
// criteria.yaml. A missing file is an error.
func WithFile(path string) Option {
	return func(o *options) { o.file = path }
}

// WithSearchPaths replaces the directories searched for criteria.yaml.
func WithSearchPaths(paths ...string) Option {
	return func(o *options) { o.paths = paths }
}

// WithEnvFile loads environment variables from path before reading the
// environment. An empty path disables .env loading.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// Load builds a Config. The .env file never overrides variables already set
// in the process environment.
func Load(opts ...Option) (*Config, error) {
	o := &options{
		paths:   []string{".", "$HOME/.criteria", "/etc/criteria"},
		envFile: ".env",
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "load env file %s", o.envFile)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if o.file != "" {
		v.SetConfigFile(o.file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", o.file)
		}
		return &Config{v: v}, nil
	}

	v.SetConfigName("criteria")
	v.SetConfigType("yaml")
	for _, path := range o.paths {
		v.AddConfigPath(os.ExpandEnv(path))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config file")
		}
		// No config file; defaults and environment apply.
	}

	return &Config{v: v}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDefaultSize, paging.DefaultPageSize)
	v.SetDefault(KeyMaxSize, paging.DefaultMaxPageSize)
	v.SetDefault(KeyDefaultSorts, []string{})
	v.SetDefault(KeyStrictSize, false)
	v.SetDefault(KeyCodec, plain.Name)
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Set overrides a setting, typically from a command line flag.
func (c *Config) Set(key string, value any) {
	c.v.Set(key, value)
}

// File returns the config file in use, or "" when none was found.
func (c *Config) File() string {
	return c.v.ConfigFileUsed()
}

// ServerAddr returns the HTTP listen address.
func (c *Config) ServerAddr() string {
	return c.v.GetString(KeyServerAddr)
}

// DatabaseURL returns the database connection string.
func (c *Config) DatabaseURL() string {
	return c.v.GetString(KeyDatabaseURL)
}

// LogLevel returns the configured log level name.
func (c *Config) LogLevel() string {
	return c.v.GetString(KeyLogLevel)
}

// CodecName returns the configured codec name.
func (c *Config) CodecName() string {
	return c.v.GetString(KeyCodec)
}

// StrictSize reports whether list endpoints refuse sizes above the maximum
// instead of capping them.
func (c *Config) StrictSize() bool {
	return c.v.GetBool(KeyStrictSize)
}

// PageConfig builds the paging defaults. Default sorts use the request
// syntax ("createdAt", "-price"); an environment override may be comma
// separated.
func (c *Config) PageConfig() *paging.PageConfig {
	sorts := paging.ParseSorts(c.v.GetStringSlice(KeyDefaultSorts))

	return paging.NewPageConfig().
		WithDefaultSize(c.v.GetInt(KeyDefaultSize)).
		WithMaxSize(c.v.GetInt(KeyMaxSize)).
		WithDefaultSorts(sorts...)
}

// Codec returns the configured codec.
func (c *Config) Codec() (criteria.Codec, error) {
	return CodecFor(c.CodecName())
}

// CodecFor returns the codec registered under name.
func CodecFor(name string) (criteria.Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case plain.Name:
		return plain.NewCodec(), nil
	case opaque.Name:
		return opaque.NewCodec(), nil
	default:
		return nil, errors.Errorf("unknown codec %q (expected %s or %s)", name, plain.Name, opaque.Name)
	}
}
