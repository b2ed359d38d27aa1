package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoad_FromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
resolution:
  request_timeout: 3s
  layer1:
    provider_url: https://eth.example/rpc
    network: mainnet
    proxy_reader: "0x578853aa776Eef10CeE6c4dd2B5862bdcE767A8B"
  layer2:
    provider_url: wss://polygon.example/ws
    registry_addresses:
      - "0xa9a6A3626993D487d2Dbda3173cf58cA1a9D9e9f"
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "uns-resolution", cfg.App.Name)
	assert.Equal(t, 3*time.Second, cfg.Resolution.GetRequestTimeout())
	assert.Equal(t, "https://eth.example/rpc", cfg.Resolution.Layer1.ProviderURL)
	assert.Equal(t, "0x578853aa776Eef10CeE6c4dd2B5862bdcE767A8B", cfg.Resolution.Layer1.ProxyReader)
	assert.Equal(t, []string{"0xa9a6A3626993D487d2Dbda3173cf58cA1a9D9e9f"}, cfg.Resolution.Layer2.RegistryAddresses)
	assert.Empty(t, cfg.Resolution.Layer2.Network)
	assert.Equal(t, DefaultZNSProvider, cfg.Resolution.ZNS.ProviderURL)
	assert.Equal(t, "mainnet", cfg.Resolution.ZNS.Network)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 10*time.Minute, cfg.Cache.GetDefaultExpiration())
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := writeConfig(t, `
resolution:
  layer1:
    provider_url: https://eth.example/rpc
  layer2:
    provider_url: https://polygon.example/rpc
`)
	t.Setenv("UNS_RESOLUTION_SERVER_PORT", "7070")
	t.Setenv("UNS_RESOLUTION_LOGGER_LEVEL", "debug")
	t.Setenv("UNS_RESOLUTION_CACHE_ENABLED", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_RequiresProviders(t *testing.T) {
	dir := writeConfig(t, "app:\n  name: test\n")
	_, err := Load(dir)
	assert.ErrorContains(t, err, "provider_url is required")
}

func TestLoad_APIKey(t *testing.T) {
	dir := writeConfig(t, "resolution:\n  api_key: secret\n")

	cfg, err := Load(dir)
	require.NoError(t, err)

	l1, l2 := cfg.Resolution.Layer1, cfg.Resolution.Layer2
	assert.Equal(t, "https://api.unstoppabledomains.com/resolve/chains/eth/rpc", l1.ProviderURL)
	assert.Equal(t, "mainnet", l1.Network)
	assert.Equal(t, "https://api.unstoppabledomains.com/resolve/chains/matic/rpc", l2.ProviderURL)
	assert.Equal(t, "polygon-mainnet", l2.Network)
	for _, layer := range []LayerConfig{l1, l2} {
		assert.Equal(t, "Bearer secret", layer.Headers["Authorization"])
		assert.Equal(t, DefaultLibAgent, layer.Headers["X-Lib-Agent"])
	}
	assert.Empty(t, cfg.Resolution.ZNS.Headers)
}

func TestApplyAPIKey_KeepsExplicitProvider(t *testing.T) {
	cfg := ResolutionConfig{
		APIKey: "k",
		Layer1: LayerConfig{ProviderURL: "https://own.example", Network: "goerli"},
	}
	cfg.ApplyAPIKey()

	assert.Equal(t, "https://own.example", cfg.Layer1.ProviderURL)
	assert.Equal(t, "goerli", cfg.Layer1.Network)
	assert.Equal(t, "Bearer k", cfg.Layer1.Headers["Authorization"])
	assert.Contains(t, cfg.Layer2.ProviderURL, "/chains/matic/rpc")
}
