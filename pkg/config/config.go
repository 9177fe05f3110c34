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
	"fmt"
	"os"
	"path"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/events-paradise/evp/pkg/util"
)

const maxRecentProjects = 10

type CLIConfig struct {
	// Interpreter to prefer over PATH discovery, e.g. /usr/local/bin/python3.12
	PythonPath     string   `yaml:"python_path"`
	RecentProjects []string `yaml:"recent_projects"`
	// absent from YAML
	hasPersisted bool
}

// LoadOrCreate loads the config file from ~/.evp/cli-config.yaml.
// If it doesn't exist, it'll return an empty config.
func LoadOrCreate() (*CLIConfig, error) {
	configPath, err := getConfigLocation()
	if err != nil {
		return nil, err
	}

	c := &CLIConfig{}
	if s, err := os.Stat(configPath); os.IsNotExist(err) {
		return c, nil
	} else if err != nil {
		return nil, err
	} else if s.Mode().Perm()&0077 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: config file %s should have permissions %o\n", configPath, 0600)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(content, c); err != nil {
		return nil, err
	}
	c.hasPersisted = true

	return c, nil
}

// RememberProject records dir as the most recently used project directory.
func (c *CLIConfig) RememberProject(dir string) {
	c.RecentProjects = slices.DeleteFunc(c.RecentProjects, func(p string) bool {
		return p == dir
	})
	c.RecentProjects = append([]string{dir}, c.RecentProjects...)
	if len(c.RecentProjects) > maxRecentProjects {
		c.RecentProjects = c.RecentProjects[:maxRecentProjects]
	}
}

func (c *CLIConfig) PersistIfNeeded() error {
	if c.PythonPath == "" && len(c.RecentProjects) == 0 && !c.hasPersisted {
		// doesn't need to be persisted
		return nil
	}

	configPath, err := getConfigLocation()
	if err != nil {
		return err
	}
	if err = os.MkdirAll(path.Dir(configPath), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	if err = os.WriteFile(configPath, data, 0600); err != nil {
		return err
	}
	fmt.Printf("Saved CLI config to [%s]\n", util.Accented(configPath))
	c.hasPersisted = true
	return nil
}

func getConfigLocation() (string, error) {
	if override := os.Getenv("EVP_CONFIG_HOME"); override != "" {
		return path.Join(override, "cli-config.yaml"), nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return path.Join(dir, ".evp", "cli-config.yaml"), nil
}
