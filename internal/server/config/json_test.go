package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_LoadsAllFields(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http": "www.example:9000",
		"database_dsn":       "portal.db",
		"secret_key":         "my_secret_key",
		"webhook_url":        "https://hooks.example/complete",
		"shutdown_timeout":   "30s",
		"s3_root_user":       "user",
		"s3_root_password":   "password",
		"s3_bucket":          "bucket",
		"s3_region":          "region",
		"s3_base_endpoint":   "base_endpoint",
	})

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
	assert.Equal(t, "portal.db", cfg.DatabaseDSN)
	assert.Equal(t, "my_secret_key", cfg.SecretKey)
	assert.Equal(t, "https://hooks.example/complete", cfg.WebhookURL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "user", cfg.S3RootUser)
	assert.Equal(t, "password", cfg.S3RootPassword)
	assert.Equal(t, "bucket", cfg.S3Bucket)
	assert.Equal(t, "region", cfg.S3Region)
	assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
}

func Test_parseJson_NoFileDoesNothing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin"}

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)

	assert.Equal(t, before, *cfg)
}
