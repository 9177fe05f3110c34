// Copyright 2025 Events Paradise
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/events-paradise/evp/pkg/util"
)

const (
	ParadiseTOMLFile = "paradise.toml"

	DefaultEntrypoint   = "run.py"
	DefaultRequirements = "requirements.txt"
	DefaultVenvDir      = ".venv"
	DefaultHost         = "localhost"
	DefaultPort         = 5000
)

var (
	ErrInvalidConfig = errors.New("invalid configuration file")

	// Environment variables run.py expects before the integrations
	// (mail, Stripe) will function. Missing ones are a warning, not
	// an error.
	DefaultRequiredEnv = []string{
		"SECRET_KEY",
		"MAIL_USERNAME",
		"MAIL_PASSWORD",
		"STRIPE_PUBLISHABLE_KEY",
		"STRIPE_SECRET_KEY",
	}

	// Directories the application expects to exist before startup.
	DefaultInstanceDirs = []string{
		"instance/uploads/images",
		"instance/uploads/documents",
		"instance/uploads/profiles",
		"instance/uploads/events",
		"instance/uploads/vendors",
		"instance/uploads/temp",
		"instance/exports",
		"static/qrcodes",
	}
)

// ParadiseTOML is the optional per-project config file. A project
// without one runs with the defaults that match the stock
// Events Paradise checkout.
type ParadiseTOML struct {
	App *ParadiseTOMLAppConfig `toml:"app"` // Required
}

type ParadiseTOMLAppConfig struct {
	Name          string   `toml:"name"`
	Entrypoint    string   `toml:"entrypoint"`
	Requirements  string   `toml:"requirements"`
	VenvDir       string   `toml:"venv_dir"`
	Host          string   `toml:"host"`
	Port          int      `toml:"port"`
	MaxUploadSize string   `toml:"max_upload_size"`
	RequiredEnv   []string `toml:"required_env"`
	InstanceDirs  []string `toml:"instance_dirs"`
}

func NewParadiseTOML(name string) *ParadiseTOML {
	return &ParadiseTOML{
		App: &ParadiseTOMLAppConfig{
			Name:          name,
			Entrypoint:    DefaultEntrypoint,
			Requirements:  DefaultRequirements,
			VenvDir:       DefaultVenvDir,
			Host:          DefaultHost,
			Port:          DefaultPort,
			MaxUploadSize: "16Mi",
			RequiredEnv:   DefaultRequiredEnv,
			InstanceDirs:  DefaultInstanceDirs,
		},
	}
}

// Validate fills in defaults for unset fields and rejects values the
// application cannot start with.
func (c *ParadiseTOML) Validate() error {
	if c.App == nil {
		return fmt.Errorf("missing [app] section: %w", ErrInvalidConfig)
	}
	if c.App.Entrypoint == "" {
		c.App.Entrypoint = DefaultEntrypoint
	}
	if c.App.Requirements == "" {
		c.App.Requirements = DefaultRequirements
	}
	if c.App.VenvDir == "" {
		c.App.VenvDir = DefaultVenvDir
	}
	if c.App.Host == "" {
		c.App.Host = DefaultHost
	}
	if c.App.Port == 0 {
		c.App.Port = DefaultPort
	}
	if c.App.Port < 0 || c.App.Port > 65535 {
		return fmt.Errorf("port %d out of range: %w", c.App.Port, ErrInvalidConfig)
	}
	if c.App.RequiredEnv == nil {
		c.App.RequiredEnv = DefaultRequiredEnv
	}
	if c.App.InstanceDirs == nil {
		c.App.InstanceDirs = DefaultInstanceDirs
	}
	if c.App.MaxUploadSize != "" {
		if _, err := resource.ParseQuantity(c.App.MaxUploadSize); err != nil {
			return fmt.Errorf("max_upload_size %q is not a valid quantity: %w", c.App.MaxUploadSize, ErrInvalidConfig)
		}
	}
	return nil
}

// MaxUploadBytes returns the configured upload cap in bytes, or 0 when unset.
func (c *ParadiseTOMLAppConfig) MaxUploadBytes() int64 {
	if c.MaxUploadSize == "" {
		return 0
	}
	q, err := resource.ParseQuantity(c.MaxUploadSize)
	if err != nil {
		return 0
	}
	return q.Value()
}

func (c *ParadiseTOMLAppConfig) URL() string {
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}

func (c *ParadiseTOML) SaveTOMLFile(dir string, tomlFileName string) error {
	f, err := os.Create(filepath.Join(dir, tomlFileName))
	if err != nil {
		return err
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("error encoding TOML: %w", err)
	}
	fmt.Printf("Saving config file [%s]\n", util.Accented(tomlFileName))
	return nil
}

// LoadTOMLFile reads dir/tomlFileName. The second return value reports
// whether the file exists; a project without one is not an error.
func LoadTOMLFile(dir string, tomlFileName string) (*ParadiseTOML, bool, error) {
	var config *ParadiseTOML
	var err error
	var configExists bool

	tomlFile := filepath.Join(dir, tomlFileName)

	if _, err = os.Stat(tomlFile); err == nil {
		configExists = true
		if _, err = toml.DecodeFile(tomlFile, &config); err != nil {
			return nil, configExists, err
		}
		if err = config.Validate(); err != nil {
			return nil, configExists, err
		}
	} else {
		configExists = !errors.Is(err, fs.ErrNotExist)
		err = nil
	}

	return config, configExists, err
}
