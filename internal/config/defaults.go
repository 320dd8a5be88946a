package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerHost            = "0.0.0.0"
	DefaultServerPort            = 8080
	DefaultServerReadTimeout     = 15 * time.Second
	DefaultServerWriteTimeout    = 30 * time.Second
	DefaultServerIdleTimeout     = 60 * time.Second
	DefaultServerShutdownTimeout = 10 * time.Second

	DefaultDatasetSource  = SourceFile
	DefaultDatasetBaseDir = "./public/data"

	DefaultPathCountryNameToCode    = "country_name_to_iso3.json"
	DefaultPathCountryToInstitution = "central_banks/country_central_bank_mapping.json"
	DefaultPathInstitutionMetadata  = "central_banks/central_banks_metadata.json"
	DefaultPathGeography            = "world_map.json"
	DefaultPathInstitutionHistory   = "central_banks"

	DefaultFetchTimeout   = 10 * time.Second
	DefaultFetchRetryMax  = 3
	DefaultFetchRetryWait = 200 * time.Millisecond

	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPoolSize  = 10
	DefaultRedisTTL       = 24 * time.Hour
	DefaultRedisKeyPrefix = "cbtalk:dataset:"

	DefaultMinIOEndpoint = "localhost:9000"
	DefaultMinIOBucket   = "cbtalk-data"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsNamespace = "cbtalk"
	DefaultMetricsPath      = "/metrics"

	DefaultIndicator  = "speeches"
	DefaultBlendSpace = "rgb"
)

// DefaultExcludeISOA2 lists geography features dropped before rendering.
// Antarctica has no central bank and dominates the projection.
var DefaultExcludeISOA2 = []string{"AQ"}

// ApplyDefaults fills every zero-value field in cfg with its default.
// Explicitly configured values are left unchanged.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Server ────────────────────────────────────────────────────────────────
	if cfg.Server.Host == "" {
		cfg.Server.Host = DefaultServerHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultServerReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultServerWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultServerIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultServerShutdownTimeout
	}

	// ── Datasets ──────────────────────────────────────────────────────────────
	if cfg.Datasets.Source == "" {
		cfg.Datasets.Source = DefaultDatasetSource
	}
	if cfg.Datasets.Source == SourceFile && cfg.Datasets.BaseDir == "" {
		cfg.Datasets.BaseDir = DefaultDatasetBaseDir
	}
	if cfg.Datasets.Paths.CountryNameToCode == "" {
		cfg.Datasets.Paths.CountryNameToCode = DefaultPathCountryNameToCode
	}
	if cfg.Datasets.Paths.CountryToInstitution == "" {
		cfg.Datasets.Paths.CountryToInstitution = DefaultPathCountryToInstitution
	}
	if cfg.Datasets.Paths.InstitutionMetadata == "" {
		cfg.Datasets.Paths.InstitutionMetadata = DefaultPathInstitutionMetadata
	}
	if cfg.Datasets.Paths.Geography == "" {
		cfg.Datasets.Paths.Geography = DefaultPathGeography
	}
	if cfg.Datasets.Paths.InstitutionHistoryDir == "" {
		cfg.Datasets.Paths.InstitutionHistoryDir = DefaultPathInstitutionHistory
	}
	if cfg.Datasets.ExcludeISOA2 == nil {
		cfg.Datasets.ExcludeISOA2 = append([]string(nil), DefaultExcludeISOA2...)
	}
	if cfg.Datasets.Fetch.Timeout == 0 {
		cfg.Datasets.Fetch.Timeout = DefaultFetchTimeout
	}
	if cfg.Datasets.Fetch.RetryMax == 0 {
		cfg.Datasets.Fetch.RetryMax = DefaultFetchRetryMax
	}
	if cfg.Datasets.Fetch.RetryWait == 0 {
		cfg.Datasets.Fetch.RetryWait = DefaultFetchRetryWait
	}

	// ── Cache ─────────────────────────────────────────────────────────────────
	if cfg.Cache.Redis.Addr == "" {
		cfg.Cache.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Cache.Redis.PoolSize == 0 {
		cfg.Cache.Redis.PoolSize = DefaultRedisPoolSize
	}
	if cfg.Cache.Redis.DefaultTTL == 0 {
		cfg.Cache.Redis.DefaultTTL = DefaultRedisTTL
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = DefaultRedisKeyPrefix
	}

	// ── MinIO ─────────────────────────────────────────────────────────────────
	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}
	if cfg.MinIO.Bucket == "" {
		cfg.MinIO.Bucket = DefaultMinIOBucket
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}

	// ── Render ────────────────────────────────────────────────────────────────
	if cfg.Render.DefaultIndicator == "" {
		cfg.Render.DefaultIndicator = DefaultIndicator
	}
	if cfg.Render.BlendSpace == "" {
		cfg.Render.BlendSpace = DefaultBlendSpace
	}
}

//Personal.AI order the ending
