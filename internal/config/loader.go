// Package config provides configuration loading, defaults, and validation for
// the CentralBankTalk atlas.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "CBTALK"

// newViper builds a Viper instance with YAML file type, the CBTALK_ env
// prefix, automatic env binding and a "." → "_" key replacer, so that
// "datasets.base_dir" resolves to CBTALK_DATASETS_BASE_DIR.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	registerKeys(v)
	return v
}

// registerKeys declares every key viper must know about. Unmarshal only
// consults the environment for keys it has seen, so env-only deployments
// depend on this list.
func registerKeys(v *viper.Viper) {
	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.read_timeout", DefaultServerReadTimeout)
	v.SetDefault("server.write_timeout", DefaultServerWriteTimeout)
	v.SetDefault("server.idle_timeout", DefaultServerIdleTimeout)
	v.SetDefault("server.shutdown_timeout", DefaultServerShutdownTimeout)

	v.SetDefault("datasets.source", DefaultDatasetSource)
	v.SetDefault("datasets.base_dir", "")
	v.SetDefault("datasets.base_url", "")
	v.SetDefault("datasets.paths.country_name_to_code", DefaultPathCountryNameToCode)
	v.SetDefault("datasets.paths.country_to_institution", DefaultPathCountryToInstitution)
	v.SetDefault("datasets.paths.institution_metadata", DefaultPathInstitutionMetadata)
	v.SetDefault("datasets.paths.geography", DefaultPathGeography)
	v.SetDefault("datasets.paths.institution_history_dir", DefaultPathInstitutionHistory)
	v.SetDefault("datasets.exclude_iso_a2", DefaultExcludeISOA2)
	v.SetDefault("datasets.fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("datasets.fetch.retry_max", DefaultFetchRetryMax)
	v.SetDefault("datasets.fetch.retry_wait", DefaultFetchRetryWait)

	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.addr", DefaultRedisAddr)
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.default_ttl", DefaultRedisTTL)
	v.SetDefault("cache.redis.key_prefix", DefaultRedisKeyPrefix)

	v.SetDefault("minio.endpoint", DefaultMinIOEndpoint)
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", DefaultMinIOBucket)
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.path", DefaultMetricsPath)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("render.default_indicator", DefaultIndicator)
	v.SetDefault("render.blend_space", DefaultBlendSpace)
}

// Load reads the YAML file at configPath, merges CBTALK_* environment
// overrides, applies defaults for unset fields and validates the result.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from CBTALK_* environment variables and
// defaults, with no config file.
//
//	CBTALK_<SECTION>_<FIELD>   e.g.  CBTALK_DATASETS_SOURCE, CBTALK_CACHE_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

// LoadOrEnv loads configPath when it is non-empty and falls back to
// LoadFromEnv otherwise.
func LoadOrEnv(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	return Load(configPath)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return cfg, nil
}

// MustLoad wraps Load and panics on any error. Intended for main().
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
