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
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/events-paradise/evp/pkg/bootstrap"
	"github.com/events-paradise/evp/pkg/config"
	"github.com/events-paradise/evp/pkg/util"
)

var (
	forceSetup bool

	SetupCommands = []*cli.Command{
		{
			Name:      "setup",
			Usage:     "Provision the virtual environment and install dependencies without launching",
			Action:    setupProject,
			ArgsUsage: "[project-dir]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "force",
					Usage:       "Recreate the virtual environment from scratch",
					Destination: &forceSetup,
				},
			},
		},
	}
)

func setupProject(ctx context.Context, cmd *cli.Command) error {
	dir, err := resolveProjectDir(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(dir)
	if err != nil {
		return err
	}
	app := cfg.App

	cliConf, err := config.LoadOrCreate()
	if err != nil {
		return err
	}

	interpreter, version, err := bootstrap.CheckInterpreter(ctx, pythonPreference(cliConf))
	if err != nil {
		return err
	}
	fmt.Printf("Using Python %s [%s]\n", version, util.Dimmed(interpreter))

	projectType, err := bootstrap.DetectProjectType(dir, app.Requirements)
	if err != nil {
		return err
	}
	if found, manifest := bootstrap.LocateManifest(dir, projectType, app.Requirements); found {
		fmt.Println("Installing from [" + util.Accented(manifest) + "]")
	}

	venv := bootstrap.NewVenv(dir, app.VenvDir)
	if forceSetup && venv.Exists() {
		recreate := true
		if !cmd.Bool("silent") {
			if err := huh.NewForm(huh.NewGroup(huh.NewConfirm().
				Title(fmt.Sprintf("Delete and recreate [%s]?", app.VenvDir)).
				Value(&recreate).
				Inline(true).
				WithTheme(util.Theme))).
				RunWithContext(ctx); err != nil {
				return err
			}
		}
		if !recreate {
			return errors.New("setup aborted")
		}
		if err := venv.Remove(); err != nil {
			return err
		}
	}

	var created bool
	if err := step(ctx, cmd, "Creating virtual environment...", func(ctx context.Context) error {
		var err error
		created, err = venv.Ensure(ctx, interpreter)
		return err
	}); err != nil {
		return err
	}
	if created {
		fmt.Println("Created virtual environment [" + util.Accented(app.VenvDir) + "]")
	} else {
		fmt.Println("Using existing virtual environment [" + util.Accented(app.VenvDir) + "]")
	}

	if err := step(ctx, cmd, "Installing dependencies...", func(ctx context.Context) error {
		return bootstrap.InstallDependencies(ctx, projectType, bootstrap.InstallOptions{
			ProjectDir:   dir,
			Venv:         venv,
			Requirements: app.Requirements,
			Verbose:      cmd.Bool("verbose"),
		})
	}); err != nil {
		return err
	}

	rememberProject(dir)
	fmt.Println(util.OK("Setup complete.") + " Run [" + util.Accented("evp start") + "] to launch the application.")
	return nil
}
