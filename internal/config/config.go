package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Firestore FirestoreConfig `mapstructure:"firestore"`
	Seed      SeedConfig      `mapstructure:"seed"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Events    EventsConfig    `mapstructure:"events"`
}

type FirestoreConfig struct {
	Collection string `mapstructure:"collection"`
	// ProjectID overrides the project named in the credential file.
	ProjectID string `mapstructure:"project_id"`
}

type SeedConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

type EventsConfig struct {
	RedisURL string `mapstructure:"redis_url"`
	Channel  string `mapstructure:"channel"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"collection": "firestore.collection",
	"log-level":  "logging.level",
	"timeout":    "seed.timeout",
}

// LoadConfig reads defaults, an optional config file, SEED_* environment
// variables and any flags that were explicitly set, in increasing priority.
// An empty configFile searches for config.yaml in . and ./config and
// tolerates its absence.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("firestore.collection", "patients")
	v.SetDefault("firestore.project_id", "")
	v.SetDefault("seed.timeout", "30s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "patient_seed")
	v.SetDefault("events.redis_url", "")
	v.SetDefault("events.channel", "patients.seeded")
}

func (c *Config) validate() error {
	if c.Firestore.Collection == "" {
		return fmt.Errorf("firestore.collection must not be empty")
	}
	if c.Seed.Timeout <= 0 {
		return fmt.Errorf("seed.timeout must be positive, got %s", c.Seed.Timeout)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
