package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix = "LEDGER"

	DefaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	defaultEnv             = "development"
	defaultMetricsExporter = "stdout"
	defaultOTLPEndpoint    = "localhost:4317"
	defaultMetricsInterval = time.Minute
)

type Config struct {
	Env     string        `mapstructure:"env"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Log     LogConfig     `mapstructure:"log"`
	Seed    SeedConfig    `mapstructure:"seed"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// MetricsConfig selects where ledger metrics are exported: "none", "stdout"
// or "otlp" (gRPC collector at OTLPEndpoint).
type MetricsConfig struct {
	Exporter     string        `mapstructure:"exporter"`
	OTLPEndpoint string        `mapstructure:"otlp_endpoint"`
	Interval     time.Duration `mapstructure:"interval"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load resolves configuration from, in increasing priority: defaults, the
// optional config file, a .env file in the working directory, LEDGER_*
// environment variables and any flags already bound on v.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(configFile) != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Metrics.Exporter = strings.ToLower(strings.TrimSpace(cfg.Metrics.Exporter))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []string

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, "http.port must be between 1 and 65535")
	}
	if c.HTTP.ReadTimeout <= 0 {
		errs = append(errs, "http.read_timeout must be positive")
	}
	if c.HTTP.WriteTimeout <= 0 {
		errs = append(errs, "http.write_timeout must be positive")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		errs = append(errs, "http.shutdown_timeout must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, "log.format must be one of json, console")
	}
	switch c.Metrics.Exporter {
	case "none", "stdout", "otlp":
	default:
		errs = append(errs, "metrics.exporter must be one of none, stdout, otlp")
	}
	if c.Metrics.Exporter == "otlp" && strings.TrimSpace(c.Metrics.OTLPEndpoint) == "" {
		errs = append(errs, "metrics.otlp_endpoint is required for the otlp exporter")
	}
	if c.Metrics.Interval <= 0 {
		errs = append(errs, "metrics.interval must be positive")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", defaultEnv)
	v.SetDefault("http.port", DefaultPort)
	v.SetDefault("http.read_timeout", defaultReadTimeout)
	v.SetDefault("http.write_timeout", defaultWriteTimeout)
	v.SetDefault("http.shutdown_timeout", defaultShutdownTimeout)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.format", defaultLogFormat)
	v.SetDefault("seed.enabled", true)
	v.SetDefault("metrics.exporter", defaultMetricsExporter)
	v.SetDefault("metrics.otlp_endpoint", defaultOTLPEndpoint)
	v.SetDefault("metrics.interval", defaultMetricsInterval)
}
