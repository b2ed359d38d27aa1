package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Provider defaults used when an API key is configured.
const (
	APIProxyBaseURL    = "https://api.unstoppabledomains.com/resolve"
	DefaultZNSProvider = "https://api.zilliqa.com"
	DefaultLibAgent    = "UnstoppableDomains/resolution-swift/6.2.2"
)

// Config holds all configuration for the application.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Logger     LoggerConfig     `mapstructure:"logger"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Metadata   MetadataConfig   `mapstructure:"metadata"`
	Resolution ResolutionConfig `mapstructure:"resolution"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	Output   string `mapstructure:"output"`
}

// CacheConfig holds settings for the token metadata cache. It is off by
// default and never holds layer results.
type CacheConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// MetadataConfig holds settings for fetching token metadata documents.
type MetadataConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ResolutionConfig holds the providers and contract overrides of every layer.
type ResolutionConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	LibAgent       string        `mapstructure:"lib_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Layer1         LayerConfig   `mapstructure:"layer1"`
	Layer2         LayerConfig   `mapstructure:"layer2"`
	ZNS            LayerConfig   `mapstructure:"zns"`
}

// LayerConfig describes how one registry layer is reached.
type LayerConfig struct {
	ProviderURL       string            `mapstructure:"provider_url"`
	Network           string            `mapstructure:"network"`
	ProxyReader       string            `mapstructure:"proxy_reader"`
	RegistryAddresses []string          `mapstructure:"registry_addresses"`
	Headers           map[string]string `mapstructure:"headers"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "uns-resolution")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.default_expiration", "10m")
	v.SetDefault("cache.cleanup_interval", "30m")
	v.SetDefault("metadata.request_timeout", "15s")
	v.SetDefault("resolution.api_key", "")
	v.SetDefault("resolution.lib_agent", DefaultLibAgent)
	v.SetDefault("resolution.request_timeout", "10s")
	v.SetDefault("resolution.layer1.provider_url", "")
	v.SetDefault("resolution.layer1.network", "")
	v.SetDefault("resolution.layer2.provider_url", "")
	v.SetDefault("resolution.layer2.network", "")
	v.SetDefault("resolution.zns.provider_url", DefaultZNSProvider)
	v.SetDefault("resolution.zns.network", "mainnet")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("UNS_RESOLUTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Resolution.ApplyAPIKey()
	if err := cfg.Resolution.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyAPIKey points unset UNS layers at the hosted RPC proxy and attaches
// the credential headers when an API key is configured.
func (c *ResolutionConfig) ApplyAPIKey() {
	if c.APIKey == "" {
		return
	}
	if c.LibAgent == "" {
		c.LibAgent = DefaultLibAgent
	}
	apply := func(layer *LayerConfig, chain, network string) {
		if layer.ProviderURL == "" {
			layer.ProviderURL = fmt.Sprintf("%s/chains/%s/rpc", APIProxyBaseURL, chain)
			if layer.Network == "" {
				layer.Network = network
			}
		}
		if layer.Headers == nil {
			layer.Headers = make(map[string]string, 2)
		}
		if _, ok := layer.Headers["Authorization"]; !ok {
			layer.Headers["Authorization"] = "Bearer " + c.APIKey
		}
		if _, ok := layer.Headers["X-Lib-Agent"]; !ok {
			layer.Headers["X-Lib-Agent"] = c.LibAgent
		}
	}
	apply(&c.Layer1, "eth", "mainnet")
	apply(&c.Layer2, "matic", "polygon-mainnet")
}

// Validate checks that every layer has a provider.
func (c ResolutionConfig) Validate() error {
	for name, layer := range map[string]LayerConfig{
		"layer1": c.Layer1,
		"layer2": c.Layer2,
		"zns":    c.ZNS,
	} {
		if strings.TrimSpace(layer.ProviderURL) == "" {
			return fmt.Errorf("resolution.%s.provider_url is required when resolution.api_key is not set", name)
		}
	}
	return nil
}

func (c ResolutionConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c MetadataConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
