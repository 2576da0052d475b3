package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := &Config{
		Addr:      "localhost:9999",
		AuthToken: "tok",
		DBPath:    "/tmp/mm.db",
	}
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Config
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, *cfg, loaded)
}

func TestSave_FieldNames(t *testing.T) {
	// the file is read back by the daemon's viper loader, which looks the
	// values up under these keys
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := &Config{Addr: "localhost:1", AuthToken: "tok", DBPath: "/tmp/x.db"}
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "addr")
	assert.Contains(t, raw, "auth_token")
	assert.Contains(t, raw, "db_path")
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Addr: "localhost:1"}).Validate())
	assert.NoError(t, (&Config{Addr: "localhost:1", DBPath: "/tmp/x.db"}).Validate())
}
