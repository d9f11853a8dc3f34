// Package config loads the server configuration from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/portside/ftpd/log"
	"github.com/portside/ftpd/models"
	"github.com/portside/ftpd/utils"
)

// Config is the on-disk server configuration.
type Config struct {
	// ListenAddr is the control-connection listen address, e.g. ":21".
	ListenAddr string `json:"listen_addr"`

	// RootDir is the directory under which per-user home directories live.
	RootDir string `json:"root_dir"`

	// UsersFile is the flat credential file, one "username,password" per line.
	UsersFile string `json:"users_file"`

	// PasswordScheme selects how stored passwords are compared:
	// "plain" (default), "sha256" or "bcrypt".
	PasswordScheme string `json:"password_scheme"`

	// DataSourcePort, when non-zero, is the local port data connections are
	// bound to before dialing the client (conventionally port 20). Zero means
	// an ephemeral port, which doesn't require privileges.
	DataSourcePort int `json:"data_source_port"`

	// Access selects the filesystem backend. Nil means the local OS filesystem.
	Access *models.Access `json:"access"`
}

// NewConfig reads and validates the configuration at path.
func NewConfig(path string, logger log.Logger) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.ListenAddr == "" {
		c.ListenAddr = ":2121"
	}
	if c.UsersFile == "" {
		c.UsersFile = "users.csv"
	}
	c.RootDir = utils.AbsPath(c.RootDir)
	if c.Access == nil {
		c.Access = &models.Access{Fs: "os"}
	}

	logger.Info("config loaded",
		"path", path,
		"listen_addr", c.ListenAddr,
		"root_dir", c.RootDir,
		"fs", c.Access.Fs,
	)

	return &c, nil
}
