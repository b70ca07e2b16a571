package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-testing-purposes"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "")
	t.Setenv("NEXT_PUBLIC_SELLER_SERVICE_URL", "")
	t.Setenv("LATENCY_READ_MS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ModeMock, cfg.GatewayMode)
	assert.Equal(t, SourceSeed, cfg.CatalogSource)
	assert.Equal(t, 300*time.Millisecond, cfg.Latency.Read)
	assert.Equal(t, "http://localhost:12000", cfg.Services.API)
	assert.Equal(t, cfg.Services.API, cfg.Services.Seller)
	assert.False(t, cfg.SearchRequireCriteria)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://api:12000")
	t.Setenv("NEXT_PUBLIC_SELLER_SERVICE_URL", "http://seller:8002")
	t.Setenv("LATENCY_SEARCH_MS", "25")
	t.Setenv("LATENCY_WRITE_MS", "0")
	t.Setenv("SEARCH_REQUIRE_CRITERIA", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("IDENTITY_TOKENS", "tok-a=1234567890,broken,tok-b=5555555555")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://seller:8002", cfg.Services.Seller)
	assert.Equal(t, "http://api:12000", cfg.Services.Customer)
	assert.Equal(t, 25*time.Millisecond, cfg.Latency.Search)
	assert.Equal(t, 400*time.Millisecond, cfg.Latency.Write, "zero latency falls back to the default")
	assert.True(t, cfg.SearchRequireCriteria)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, map[string]string{"tok-a": "1234567890", "tok-b": "5555555555"}, cfg.IdentityTokens)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{GatewayMode: ModeMock, CatalogSource: SourceSeed, JWTSecret: testSecret}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, ErrMissingSecret},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, ErrShortSecret},
		{"http mode needs no secret", func(c *Config) { c.GatewayMode = ModeHTTP; c.JWTSecret = "" }, nil},
		{"unknown mode", func(c *Config) { c.GatewayMode = "grpc" }, ErrGatewayMode},
		{"unknown source", func(c *Config) { c.CatalogSource = "mysql" }, ErrCatalogSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
