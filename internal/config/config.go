// Package config loads the settings of the stories server using Viper.
//
// Values come from, highest priority first: bound command-line flags, HEATSTACK_ environment
// variables (HEATSTACK_SERVER_PORT, HEATSTACK_CATALOG_STORIES_FILE, ...) and a YAML config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding config values
const EnvPrefix = "HEATSTACK"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CatalogConfig struct {
	// PathPrefix is where the catalog is mounted, empty for the root
	PathPrefix string `mapstructure:"path_prefix" validate:"omitempty,startswith=/"`
	// StoriesFile is an optional YAML story file added to the catalog
	StoriesFile string `mapstructure:"stories_file"`
	// Watch reloads StoriesFile on change
	Watch bool `mapstructure:"watch"`
	// Builtin includes the built-in Button stories
	Builtin        bool   `mapstructure:"builtin"`
	ActionCapacity uint64 `mapstructure:"action_capacity" validate:"min=1"`
	TruncateAfter  uint64 `mapstructure:"truncate_after" validate:"min=1"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	// File additionally writes JSON logs to the file when set
	File string `mapstructure:"file"`
}

// SetDefaults registers the default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 6006)
	v.SetDefault("catalog.path_prefix", "")
	v.SetDefault("catalog.stories_file", "")
	v.SetDefault("catalog.watch", false)
	v.SetDefault("catalog.builtin", true)
	v.SetDefault("catalog.action_capacity", 100)
	v.SetDefault("catalog.truncate_after", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// NewViper creates a Viper instance with defaults and environment binding.
// If configFile is empty, an optional .heatstack.yml in the working directory is used.
func NewViper(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".heatstack")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file, if any, and returns the validated config.
// A missing default config file is not an error, a missing explicit one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// Validate checks the config values
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	err := validatorInstance().Struct(cfg)
	if err == nil {
		if cfg.Catalog.Watch && cfg.Catalog.StoriesFile == "" {
			return errors.New("invalid config: catalog.watch needs catalog.stories_file")
		}
		if !cfg.Catalog.Builtin && cfg.Catalog.StoriesFile == "" {
			return errors.New("invalid config: catalog.builtin is disabled and no catalog.stories_file is set")
		}
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
