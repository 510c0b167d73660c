package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Overpass OverpassConfig `yaml:"overpass" mapstructure:"overpass"`
	Stitch   StitchConfig   `yaml:"stitch" mapstructure:"stitch"`
	Areas    AreasConfig    `yaml:"areas" mapstructure:"areas"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OverpassConfig configures the Overpass API client.
type OverpassConfig struct {
	URL              string `yaml:"url" mapstructure:"url"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	QueryTimeoutSecs int    `yaml:"query_timeout_secs" mapstructure:"query_timeout_secs"`
}

// StitchConfig configures the road stitcher.
type StitchConfig struct {
	Workers int     `yaml:"workers" mapstructure:"workers"`
	MaxGap  float64 `yaml:"max_gap" mapstructure:"max_gap"`
}

// AreasConfig points at the area and sub-area boundary directories.
type AreasConfig struct {
	Dir         string `yaml:"dir" mapstructure:"dir"`
	SubDir      string `yaml:"sub_dir" mapstructure:"sub_dir"`
	Containment string `yaml:"containment" mapstructure:"containment"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// StoreConfig configures the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("district")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DISTRICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("overpass.url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("overpass.timeout_secs", 300)
	v.SetDefault("overpass.query_timeout_secs", 180)
	v.SetDefault("stitch.workers", 4)
	v.SetDefault("stitch.max_gap", 0.0)
	v.SetDefault("areas.dir", "areas")
	v.SetDefault("areas.sub_dir", "sub_areas")
	v.SetDefault("areas.containment", "ray")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.path", "district.db")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the values a command is about to rely on.
func (c *Config) Validate() error {
	var missing []string
	if c.Stitch.Workers < 1 {
		missing = append(missing, "stitch.workers must be at least 1")
	}
	if c.Stitch.MaxGap < 0 {
		missing = append(missing, "stitch.max_gap must not be negative")
	}
	switch strings.ToLower(c.Areas.Containment) {
	case "", "ray", "raycasting", "planar", "orb":
	default:
		missing = append(missing, "areas.containment must be ray or planar")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		missing = append(missing, "server.port must be between 1 and 65535")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
