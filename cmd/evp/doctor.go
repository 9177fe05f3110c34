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

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/events-paradise/evp/pkg/bootstrap"
	"github.com/events-paradise/evp/pkg/config"
	"github.com/events-paradise/evp/pkg/util"
)

type checkStatus string

const (
	checkOK   checkStatus = "ok"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

type checkResult struct {
	Name   string      `json:"name"`
	Status checkStatus `json:"status"`
	Detail string      `json:"detail,omitempty"`
}

var DoctorCommands = []*cli.Command{
	{
		Name:      "doctor",
		Usage:     "Inspect the project and report whether it is ready to run",
		Action:    runDoctor,
		ArgsUsage: "[project-dir]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
	},
}

func runDoctor(ctx context.Context, cmd *cli.Command) error {
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

	checks := []struct {
		name string
		run  func(ctx context.Context) checkResult
	}{
		{
			name: "interpreter",
			run: func(ctx context.Context) checkResult {
				interpreter, version, err := bootstrap.CheckInterpreter(ctx, pythonPreference(cliConf))
				if err != nil {
					return checkResult{Status: checkFail, Detail: err.Error()}
				}
				return checkResult{Status: checkOK, Detail: fmt.Sprintf("Python %s (%s)", version, interpreter)}
			},
		},
		{
			name: "project type",
			run: func(ctx context.Context) checkResult {
				projectType, err := bootstrap.DetectProjectType(dir, app.Requirements)
				if err != nil {
					return checkResult{Status: checkFail, Detail: err.Error()}
				}
				_, manifest := bootstrap.LocateManifest(dir, projectType, app.Requirements)
				return checkResult{Status: checkOK, Detail: fmt.Sprintf("%s via %s", projectType, manifest)}
			},
		},
		{
			name: "virtual environment",
			run: func(ctx context.Context) checkResult {
				venv := bootstrap.NewVenv(dir, app.VenvDir)
				if !venv.Exists() {
					return checkResult{Status: checkWarn, Detail: app.VenvDir + " not created yet, run `evp setup`"}
				}
				return checkResult{Status: checkOK, Detail: venv.Root}
			},
		},
		{
			name: "entry point",
			run: func(ctx context.Context) checkResult {
				if !util.FileExists(dir, app.Entrypoint) {
					return checkResult{Status: checkFail, Detail: app.Entrypoint + " not found"}
				}
				return checkResult{Status: checkOK, Detail: app.Entrypoint}
			},
		},
		{
			name: "environment variables",
			run: func(ctx context.Context) checkResult {
				missing := bootstrap.CheckRequiredEnv(dir, app.RequiredEnv)
				if len(missing) > 0 {
					return checkResult{Status: checkWarn, Detail: "unset: " + strings.Join(missing, ", ")}
				}
				return checkResult{Status: checkOK, Detail: "all required variables set"}
			},
		},
		{
			name: "upload limit",
			run: func(ctx context.Context) checkResult {
				if app.MaxUploadSize == "" {
					return checkResult{Status: checkOK, Detail: "no limit configured"}
				}
				return checkResult{Status: checkOK, Detail: fmt.Sprintf("%s (%d bytes)", app.MaxUploadSize, app.MaxUploadBytes())}
			},
		},
	}

	results := make([]checkResult, len(checks))
	group, gctx := errgroup.WithContext(ctx)
	for i, check := range checks {
		group.Go(func() error {
			result := check.run(gctx)
			result.Name = check.name
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		util.PrintJSON(results)
	} else {
		for _, r := range results {
			switch r.Status {
			case checkOK:
				fmt.Printf("%s %s: %s\n", util.OK("✓"), r.Name, util.Dimmed(r.Detail))
			case checkWarn:
				fmt.Printf("%s %s: %s\n", util.Warn("!"), r.Name, r.Detail)
			case checkFail:
				fmt.Printf("%s %s: %s\n", util.Fail("✗"), r.Name, r.Detail)
			}
		}
	}

	var failed int
	for _, r := range results {
		if r.Status == checkFail {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}
