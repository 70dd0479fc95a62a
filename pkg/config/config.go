// Package config loads reachmap server configuration from defaults, an
// optional config file, REACHMAP_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	POI      POIConfig      `mapstructure:"poi"`
	Assemble AssembleConfig `mapstructure:"assemble"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxConcurrent  int           `mapstructure:"max_concurrent"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	CORSOrigin     string        `mapstructure:"cors_origin"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// POIConfig selects the point-of-interest source and the default query
// served from it. At most one of CSV and PBF may be set. Requests may
// override Type, MinRating and Limit.
type POIConfig struct {
	CSV       string  `mapstructure:"csv"`
	PBF       string  `mapstructure:"pbf"`
	Type      string  `mapstructure:"type"`
	MinRating float64 `mapstructure:"min_rating"`
	Limit     int     `mapstructure:"limit"`
}

// AssembleConfig tunes route assembly.
type AssembleConfig struct {
	// Tolerance is the junction dedup distance in degrees; 0 is exact.
	Tolerance float64 `mapstructure:"tolerance"`
}

// Flags registers the command-line overrides on fs.
func Flags(fs *pflag.FlagSet) {
	fs.Int("port", 8080, "HTTP port")
	fs.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	fs.String("poi-csv", "", "Path to amenities CSV")
	fs.String("poi-pbf", "", "Path to .osm.pbf to extract POIs from")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("config", "", "Path to config file (default ./config.yaml if present)")
}

var flagKeys = map[string]string{
	"port":        "server.port",
	"cors-origin": "server.cors_origin",
	"poi-csv":     "poi.csv",
	"poi-pbf":     "poi.pbf",
	"log-level":   "log.level",
}

// Load reads configuration. fs may be nil; when given, it must have been
// set up with Flags and parsed.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.max_concurrent", 0)
	v.SetDefault("server.max_body_bytes", 8<<20)
	v.SetDefault("server.cors_origin", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("poi.csv", "")
	v.SetDefault("poi.pbf", "")
	v.SetDefault("poi.type", "")
	v.SetDefault("poi.min_rating", 3.5)
	v.SetDefault("poi.limit", 0)
	v.SetDefault("assemble.tolerance", 0)

	// Config file (optional unless named explicitly)
	var configPath string
	if fs != nil {
		configPath, _ = fs.GetString("config")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		_ = v.ReadInConfig() // OK if missing
	}

	// Environment variables: REACHMAP_SERVER_PORT → server.port
	v.SetEnvPrefix("REACHMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.MaxConcurrent < 0 {
		errs = append(errs, "server.max_concurrent must not be negative")
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, "server.max_body_bytes must be positive")
	}
	if c.POI.CSV != "" && c.POI.PBF != "" {
		errs = append(errs, "poi.csv and poi.pbf are mutually exclusive")
	}
	if c.POI.Limit < 0 {
		errs = append(errs, "poi.limit must not be negative")
	}
	if c.Assemble.Tolerance < 0 {
		errs = append(errs, "assemble.tolerance must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be json or text, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return errors.New("invalid config: " + strings.Join(errs, "; "))
	}
	return nil
}

// Addr returns the listen address for the configured port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
