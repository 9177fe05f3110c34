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

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/events-paradise/evp/pkg/bootstrap"
	"github.com/events-paradise/evp/pkg/util"
)

var EnvCommands = []*cli.Command{
	{
		Name:  "env",
		Usage: "Manage the application's .env files",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Create .env files from .env.example templates, prompting for values",
				Action:    envInit,
				ArgsUsage: "[project-dir]",
			},
		},
	},
}

func envInit(ctx context.Context, cmd *cli.Command) error {
	dir, err := resolveProjectDir(cmd)
	if err != nil {
		return err
	}

	// a fresh secret replaces the placeholder from the template
	substitutions := map[string]string{
		"SECRET_KEY": util.RandomHex(32),
	}

	interactive := !cmd.Bool("silent") && isatty.IsTerminal(os.Stdin.Fd())
	prompt := func(key, value string) (string, error) {
		if !interactive {
			return value, nil
		}
		newValue := value
		if err := huh.NewForm(huh.NewGroup(huh.NewInput().
			Title(key).
			Placeholder(value).
			Value(&newValue).
			WithTheme(util.Theme))).
			RunWithContext(ctx); err != nil {
			return "", err
		}
		return newValue, nil
	}

	if err := bootstrap.InstantiateDotEnv(ctx, dir, substitutions, prompt); err != nil {
		return err
	}

	fmt.Println(util.OK("Environment files written.") + " " + util.Dimmed("Existing .env files were left untouched."))
	return nil
}
