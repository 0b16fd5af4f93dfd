// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

//lint:file-ignore SA5008 duplicated struct tags are ok for config

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"code.vegaprotocol.io/stateproof/gateway"
	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/metrics"
	"code.vegaprotocol.io/stateproof/objectstore"
	"code.vegaprotocol.io/stateproof/sqlstore"
	"code.vegaprotocol.io/stateproof/stateproof"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Empty is used when a command or sub-command receives no argument.
type Empty struct{}

// HomeFlag is the flag pointing to the directory holding the configuration file.
type HomeFlag struct {
	Home string `long:"home" description:"Path to the directory holding the configuration file" default:"."`
}

// Config ties together all other application configuration types.
type Config struct {
	Logging     logging.Config     `group:"Logging" namespace:"logging"`
	SQLStore    sqlstore.Config    `group:"Sqlstore" namespace:"sqlstore"`
	ObjectStore objectstore.Config `group:"ObjectStore" namespace:"objectstore"`
	StateProof  stateproof.Config  `group:"StateProof" namespace:"stateproof"`
	Gateway     gateway.Config     `group:"Gateway" namespace:"gateway"`
	Metrics     metrics.Config     `group:"Metrics" namespace:"metrics"`
}

// NewDefaultConfig returns a set of default configs for all packages, as specified at the per package
// config level.
func NewDefaultConfig() Config {
	return Config{
		Logging:     logging.NewDefaultConfig(),
		SQLStore:    sqlstore.NewDefaultConfig(),
		ObjectStore: objectstore.NewDefaultConfig(),
		StateProof:  stateproof.NewDefaultConfig(),
		Gateway:     gateway.NewDefaultConfig(),
		Metrics:     metrics.NewDefaultConfig(),
	}
}

// FilePath is the location of the configuration file in home.
func FilePath(home string) string {
	return filepath.Join(home, configFileName)
}

// Exists tells whether home already holds a configuration file.
func Exists(home string) (bool, error) {
	_, err := os.Stat(FilePath(home))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Read loads the configuration file of home on top of the default configuration.
func Read(home string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := decode(FilePath(home), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as the configuration file of home, creating the directory if needed.
func Save(home string, cfg *Config) error {
	buf := new(bytes.Buffer)
	if err := toml.NewEncoder(buf).Encode(cfg); err != nil {
		return fmt.Errorf("couldn't encode configuration: %w", err)
	}
	if err := os.MkdirAll(home, 0o700); err != nil {
		return fmt.Errorf("couldn't create configuration directory: %w", err)
	}
	if err := os.WriteFile(FilePath(home), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("couldn't write configuration file: %w", err)
	}
	return nil
}

func decode(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("couldn't read configuration file %s: %w", path, err)
	}
	return nil
}
