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

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/urfave/cli/v3"

	"github.com/events-paradise/evp/pkg/config"
)

var (
	log logr.Logger = logr.Discard()

	tomlFilename   string = config.ParadiseTOMLFile
	pythonOverride string

	globalFlags = []cli.Flag{
		&cli.StringFlag{
			Name:        "python",
			Usage:       "`PATH` to the python interpreter to use",
			Sources:     cli.EnvVars("EVP_PYTHON"),
			Destination: &pythonOverride,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Config `TOML` to use in the project directory",
			Value:       config.ParadiseTOMLFile,
			Destination: &tomlFilename,
			Required:    false,
		},
		&cli.BoolFlag{
			Name:  "silent",
			Usage: "If set, will not prompt for confirmation",
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Required: false,
		},
	}
)

func initLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	verbosity := 0
	if cmd.Bool("verbose") {
		verbosity = 1
	}
	log = funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{Verbosity: verbosity}).WithName("evp")

	return nil, nil
}

// resolveProjectDir returns the project directory from the first
// positional argument, defaulting to the working directory.
func resolveProjectDir(cmd *cli.Command) (string, error) {
	dir := cmd.Args().First()
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return "", fmt.Errorf("project directory %s does not exist", abs)
	}
	return abs, nil
}

// loadProjectConfig loads dir's paradise.toml, falling back to the
// defaults that match a stock Events Paradise checkout.
func loadProjectConfig(dir string) (*config.ParadiseTOML, error) {
	cfg, exists, err := config.LoadTOMLFile(dir, tomlFilename)
	if err != nil {
		return nil, err
	}
	if !exists || cfg == nil {
		cfg = config.NewParadiseTOML(filepath.Base(dir))
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	log.V(1).Info("loaded project config", "file", tomlFilename)
	return cfg, nil
}

// pythonPreference merges the --python flag with the persisted CLI
// config, flag first.
func pythonPreference(cliConf *config.CLIConfig) string {
	if pythonOverride != "" {
		return pythonOverride
	}
	if cliConf != nil {
		return cliConf.PythonPath
	}
	return ""
}

func rememberProject(dir string) {
	cliConf, err := config.LoadOrCreate()
	if err != nil {
		log.V(1).Info("could not load CLI config", "error", err.Error())
		return
	}
	cliConf.RememberProject(dir)
	if err := cliConf.PersistIfNeeded(); err != nil {
		log.V(1).Info("could not persist CLI config", "error", err.Error())
	}
}
