package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/guardianhealth/medmaintain/internal/utils"
)

var (
	home, _           = os.UserHomeDir()
	DefaultConfigPath = filepath.Join(home, ".medmaintain", "config.json")
	DefaultDBPath     = filepath.Join(home, ".medmaintain", "medmaintain.db")
	DefaultAddr       = "localhost:7943"
)

// Config is the daemon's own configuration, separate from the operator
// settings held in the record store.
type Config struct {
	Addr      string `json:"addr"`
	AuthToken string `json:"auth_token"`
	DBPath    string `json:"db_path"`
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: listen address required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("config: db path required")
	}
	return nil
}

// Save writes the config as indented JSON so operators can edit it by
// hand; later runs read it back through the daemon's config loading.
func (c *Config) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
