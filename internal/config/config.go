package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Layers       []LayerConfig `yaml:"layers" mapstructure:"layers"`
	PageSize     int           `yaml:"page_size" mapstructure:"page_size"`
	Where        string        `yaml:"where" mapstructure:"where"`
	SynonymsFile string        `yaml:"synonyms_file" mapstructure:"synonyms_file"`
	Project      bool          `yaml:"project" mapstructure:"project"`
	FailFast     bool          `yaml:"fail_fast" mapstructure:"fail_fast"`
	SwapAxes     bool          `yaml:"swap_axes" mapstructure:"swap_axes"`
	HTTP         HTTPConfig    `yaml:"http" mapstructure:"http"`
	Output       OutputConfig  `yaml:"output" mapstructure:"output"`
	Log          LogConfig     `yaml:"log" mapstructure:"log"`
}

// LayerConfig is one FeatureServer layer to ingest.
type LayerConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	Source string `yaml:"source" mapstructure:"source"`
}

// HTTPConfig configures the page fetcher.
type HTTPConfig struct {
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// OutputConfig selects where combined tables are written.
type OutputConfig struct {
	Format      string `yaml:"format" mapstructure:"format"`
	Path        string `yaml:"path" mapstructure:"path"`
	Table       string `yaml:"table" mapstructure:"table"`
	Schema      string `yaml:"schema" mapstructure:"schema"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// LayerURLs returns the configured layer URLs in order.
func (c *Config) LayerURLs() []string {
	out := make([]string, len(c.Layers))
	for i, l := range c.Layers {
		out[i] = l.URL
	}
	return out
}

// LayerSources returns the configured source labels, or nil when none of
// the layers sets one.
func (c *Config) LayerSources() []string {
	out := make([]string, len(c.Layers))
	set := false
	for i, l := range c.Layers {
		out[i] = l.Source
		set = set || l.Source != ""
	}
	if !set {
		return nil
	}
	return out
}

// Validate checks the settings a command needs. Mode is the command name.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "fetch", "combine":
		if c.PageSize <= 0 {
			errs = append(errs, "page_size must be > 0")
		}
		if c.HTTP.TimeoutSecs <= 0 {
			errs = append(errs, "http.timeout_secs must be > 0")
		}
		if c.Output.Format == "postgis" && c.Output.DatabaseURL == "" {
			errs = append(errs, "output.database_url is required for postgis output")
		}
	case "schema", "swap":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if mode == "combine" {
		for i, l := range c.Layers {
			if strings.TrimSpace(l.URL) == "" {
				errs = append(errs, fmt.Sprintf("layers[%d].url is required", i))
			}
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("featurelayer")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FEATURELAYER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("page_size", 1000)
	v.SetDefault("where", "1=1")
	v.SetDefault("synonyms_file", "")
	v.SetDefault("project", false)
	v.SetDefault("fail_fast", false)
	v.SetDefault("swap_axes", false)
	v.SetDefault("http.timeout_secs", 120)
	v.SetDefault("http.user_agent", "featurelayer-cli/1.0")
	v.SetDefault("output.format", "geojson")
	v.SetDefault("output.path", "combined.geojson")
	v.SetDefault("output.table", "features")
	v.SetDefault("output.schema", "public")
	v.SetDefault("output.database_url", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
