package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Matching MatchingConfig `mapstructure:"matching"`
	Queue    QueueConfig    `mapstructure:"queue"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	HTTPPort    string `mapstructure:"http_port"`
	Debug       bool   `mapstructure:"debug"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// Enabled reports whether a database was configured at all. Without one
// the service runs on the in-memory repository.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != "" && d.Name != ""
}

type CacheConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type MatchingConfig struct {
	Weights        map[string]float64 `mapstructure:"weights"`
	SingleTimeout  time.Duration      `mapstructure:"single_timeout"`
	ScorerTimeout  time.Duration      `mapstructure:"scorer_timeout"`
	ScoreThreshold int                `mapstructure:"score_threshold"`
	RecordTTL      time.Duration      `mapstructure:"record_ttl"`
	StatsTTL       time.Duration      `mapstructure:"stats_ttl"`
}

type QueueConfig struct {
	Workers          int           `mapstructure:"workers"`
	Buffer           int           `mapstructure:"buffer"`
	MaxBulkPerTenant int           `mapstructure:"max_bulk_per_tenant"`
	Retention        time.Duration `mapstructure:"retention"`
}

var errInvalidConfig = errors.New("invalid configuration")

// Load reads talent-match.yaml when present and environment variables
// always; env wins. Keys nest with underscores, e.g. APP_HTTP_PORT,
// QUEUE_WORKERS, MATCHING_SCORE_THRESHOLD.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "talent-match")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.debug", false)

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.ssl_mode", "disable")

	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", "6379")
	v.SetDefault("cache.ttl", 10*time.Minute)

	v.SetDefault("matching.single_timeout", 2*time.Second)
	v.SetDefault("matching.scorer_timeout", time.Second)
	v.SetDefault("matching.score_threshold", 70)
	v.SetDefault("matching.record_ttl", time.Minute)
	v.SetDefault("matching.stats_ttl", 5*time.Minute)

	v.SetDefault("queue.workers", 0) // 0 means derive from GOMAXPROCS
	v.SetDefault("queue.buffer", 0)
	v.SetDefault("queue.max_bulk_per_tenant", 4)
	v.SetDefault("queue.retention", time.Hour)

	v.SetConfigName("talent-match")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/talent-match")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.App.HTTPPort == "" {
		return fmt.Errorf("%w: app.http_port is required", errInvalidConfig)
	}
	if c.Matching.ScoreThreshold < 1 || c.Matching.ScoreThreshold > 100 {
		return fmt.Errorf("%w: matching.score_threshold must be in [1,100]", errInvalidConfig)
	}
	for name, w := range c.Matching.Weights {
		if w < 0 {
			return fmt.Errorf("%w: matching.weights.%s is negative", errInvalidConfig, name)
		}
	}
	return nil
}
