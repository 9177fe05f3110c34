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
	"strings"

	"github.com/frostbyte73/core"
	"github.com/pkg/browser"
	"github.com/urfave/cli/v3"

	"github.com/events-paradise/evp/pkg/bootstrap"
	"github.com/events-paradise/evp/pkg/config"
	"github.com/events-paradise/evp/pkg/util"
)

const defaultAdminLogin = "admin / admin123"

var (
	openBrowser bool
	skipInstall bool

	StartCommands = []*cli.Command{
		{
			Name:      "start",
			Aliases:   []string{"run"},
			Usage:     "Provision the environment and run the application",
			Action:    startApp,
			ArgsUsage: "[project-dir]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "open",
					Usage:       "Open the application in a browser once it is reachable",
					Destination: &openBrowser,
				},
				&cli.BoolFlag{
					Name:        "skip-install",
					Usage:       "Skip dependency installation",
					Destination: &skipInstall,
				},
			},
		},
	}
)

func startApp(ctx context.Context, cmd *cli.Command) error {
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
	log.V(1).Info("using interpreter", "path", interpreter, "version", version.String())

	projectType, err := bootstrap.DetectProjectType(dir, app.Requirements)
	if err != nil {
		return err
	}
	if projectType == bootstrap.ProjectTypePythonPip && !util.FileExists(dir, app.Requirements) {
		return fmt.Errorf("%s not found in %s", app.Requirements, dir)
	}
	if !util.FileExists(dir, app.Entrypoint) && !bootstrap.HasTask(dir, bootstrap.TaskDev) {
		return fmt.Errorf("entry point %s not found in %s", app.Entrypoint, dir)
	}

	venv := bootstrap.NewVenv(dir, app.VenvDir)
	if !venv.Exists() {
		if err := step(ctx, cmd, "Creating virtual environment...", func(ctx context.Context) error {
			return venv.Create(ctx, interpreter)
		}); err != nil {
			return err
		}
		fmt.Println("Created virtual environment [" + util.Accented(app.VenvDir) + "]")
	} else {
		log.V(1).Info("virtual environment already present", "path", venv.Root)
	}

	if !skipInstall {
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
	}

	if missing := bootstrap.CheckRequiredEnv(dir, app.RequiredEnv); len(missing) > 0 {
		fmt.Println(util.Warn("Warning: the following environment variables are not set:"))
		for _, key := range missing {
			fmt.Println("   - " + key)
		}
		fmt.Println(util.Dimmed("Some features may not work without them. Set them in your .env file or environment."))
	}

	if err := bootstrap.EnsureInstanceDirs(dir, app.InstanceDirs); err != nil {
		return err
	}

	rememberProject(dir)
	printBanner(app)

	exited := new(core.Fuse)
	defer exited.Break()
	if openBrowser {
		go func() {
			if err := bootstrap.WaitUntilReady(ctx, app.URL(), exited); err != nil {
				log.V(1).Info("not opening browser", "reason", err.Error())
				return
			}
			if err := browser.OpenURL(app.URL()); err != nil {
				log.V(1).Info("failed to open browser", "error", err.Error())
			}
		}()
	}

	return bootstrap.Launch(ctx, bootstrap.LaunchOptions{
		ProjectDir: dir,
		Venv:       venv,
		Entrypoint: app.Entrypoint,
		Verbose:    cmd.Bool("verbose"),
	})
}

func printBanner(app *config.ParadiseTOMLAppConfig) {
	name := app.Name
	if name == "" {
		name = "Events Paradise"
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Println(util.Accented(name))
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Access the application at: %s\n", util.Accented(app.URL()))
	fmt.Printf("Default admin login: %s\n", defaultAdminLogin)
	fmt.Println(util.Dimmed("Press Ctrl+C to stop"))
	fmt.Println()
}

// step runs fn behind a spinner, except in verbose mode where the
// step's own output streams through.
func step(ctx context.Context, cmd *cli.Command, title string, fn func(ctx context.Context) error) error {
	if cmd.Bool("verbose") {
		fmt.Println(title)
		return fn(ctx)
	}
	return util.Await(title, ctx, fn)
}
