// Package config defines the configuration structures for the CentralBankTalk
// atlas.  No I/O or parsing logic lives here, only plain data types and
// validation.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Dataset source kinds.
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceMinIO = "minio"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetPaths names the static JSON documents the atlas is built from.
// Paths are relative to the source root (base_dir, base_url or bucket).
// InstitutionHistoryDir holds one <institution_id>.json per central bank.
type DatasetPaths struct {
	CountryNameToCode     string `mapstructure:"country_name_to_code"`
	CountryToInstitution  string `mapstructure:"country_to_institution"`
	InstitutionMetadata   string `mapstructure:"institution_metadata"`
	Geography             string `mapstructure:"geography"`
	InstitutionHistoryDir string `mapstructure:"institution_history_dir"`
}

// FetchConfig bounds remote dataset reads.
type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	RetryMax  int           `mapstructure:"retry_max"`
	RetryWait time.Duration `mapstructure:"retry_wait"`
}

// DatasetsConfig selects where datasets are read from.
type DatasetsConfig struct {
	Source       string       `mapstructure:"source"` // "file" | "http" | "minio"
	BaseDir      string       `mapstructure:"base_dir"`
	BaseURL      string       `mapstructure:"base_url"`
	Paths        DatasetPaths `mapstructure:"paths"`
	ExcludeISOA2 []string     `mapstructure:"exclude_iso_a2"`
	Fetch        FetchConfig  `mapstructure:"fetch"`
}

// RedisConfig holds parameters of the optional shared payload cache.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	DefaultTTL   time.Duration `mapstructure:"default_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// CacheConfig groups cache tiers. Only redis exists today.
type CacheConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// MinIOConfig holds MinIO / S3-compatible object-storage parameters.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RenderConfig holds choropleth rendering defaults.
type RenderConfig struct {
	DefaultIndicator string `mapstructure:"default_indicator"`
	// BlendSpace is "rgb" or "lab".
	BlendSpace string `mapstructure:"blend_space"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Datasets DatasetsConfig `mapstructure:"datasets"`
	Cache    CacheConfig    `mapstructure:"cache"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Render   RenderConfig   `mapstructure:"render"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config and
// returns the first error encountered.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}

	switch c.Datasets.Source {
	case SourceFile:
		if c.Datasets.BaseDir == "" {
			return fmt.Errorf("config: datasets.base_dir is required for source %q", SourceFile)
		}
	case SourceHTTP:
		u, err := url.Parse(c.Datasets.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: datasets.base_url %q is not an absolute URL", c.Datasets.BaseURL)
		}
	case SourceMinIO:
		if c.MinIO.Endpoint == "" {
			return fmt.Errorf("config: minio.endpoint is required for source %q", SourceMinIO)
		}
		if c.MinIO.Bucket == "" {
			return fmt.Errorf("config: minio.bucket is required for source %q", SourceMinIO)
		}
	default:
		return fmt.Errorf("config: datasets.source %q is invalid; expected file|http|minio", c.Datasets.Source)
	}

	p := c.Datasets.Paths
	for name, v := range map[string]string{
		"country_name_to_code":    p.CountryNameToCode,
		"country_to_institution":  p.CountryToInstitution,
		"institution_metadata":    p.InstitutionMetadata,
		"geography":               p.Geography,
		"institution_history_dir": p.InstitutionHistoryDir,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("config: datasets.paths.%s is required", name)
		}
	}
	if c.Datasets.Fetch.RetryMax < 0 {
		return fmt.Errorf("config: datasets.fetch.retry_max must be >= 0, got %d", c.Datasets.Fetch.RetryMax)
	}

	if c.Cache.Redis.Enabled {
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("config: cache.redis.addr is required when redis is enabled")
		}
		if c.Cache.Redis.DB < 0 {
			return fmt.Errorf("config: cache.redis.db must be >= 0, got %d", c.Cache.Redis.DB)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	switch c.Render.BlendSpace {
	case "rgb", "lab":
	default:
		return fmt.Errorf("config: render.blend_space %q is invalid; expected rgb|lab", c.Render.BlendSpace)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("config: metrics.path %q must start with /", c.Metrics.Path)
	}

	return nil
}

//Personal.AI order the ending
