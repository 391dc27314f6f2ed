package commons

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/config"
)

func TestLoadConfigFile_OverlaysNonZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
  corsOrigin: "https://shop.example.com"
storage:
  dataFile: /var/lib/vitrine/orders.json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Server.Environment = "production"
	cfg.Storage.Driver = "file"
	cfg.Log.Level = "info"

	err := LoadConfigFile(path, cfg)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://shop.example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, "/var/lib/vitrine/orders.json", cfg.Storage.DataFile)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Values absent from the file stay untouched.
	assert.Equal(t, "production", cfg.Server.Environment)
	assert.Equal(t, "file", cfg.Storage.Driver)
}

func TestLoadConfigFile_MissingFile(t *testing.T) {
	cfg := &config.Config{}
	err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"), cfg)
	assert.Error(t, err)
}

func TestLoadConfigFile_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	cfg := &config.Config{}
	err := LoadConfigFile(path, cfg)
	assert.Error(t, err)
}
