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

package bootstrap

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

type InstallOptions struct {
	ProjectDir   string
	Venv         *Venv
	Requirements string
	Verbose      bool
}

// InstallDependencies installs the project's declared dependencies
// into the virtual environment. Projects that carry a taskfile with an
// install task delegate to it; otherwise the installer matching the
// detected project type runs.
func InstallDependencies(ctx context.Context, projectType ProjectType, opts InstallOptions) error {
	if HasTask(opts.ProjectDir, TaskInstall) {
		run, err := NewTask(ctx, opts.ProjectDir, TaskInstall, opts.Verbose)
		if err != nil {
			return err
		}
		return run()
	}

	name, args, err := installCommand(projectType, opts.Venv, opts.Requirements)
	if err != nil {
		return err
	}
	return runCommand(ctx, opts.ProjectDir, opts.Venv.Environ(), opts.Verbose, name, args...)
}

// installCommand picks the installer invocation for the project type.
// pip runs out of the venv; uv and poetry are host tools that pick up
// the venv through VIRTUAL_ENV.
func installCommand(projectType ProjectType, venv *Venv, requirements string) (string, []string, error) {
	switch projectType {
	case ProjectTypePythonPip:
		return venv.Pip(), []string{"install", "-r", requirements}, nil
	case ProjectTypePythonUV:
		if !CommandExists("uv") {
			return "", nil, errors.New("project uses uv, but uv is not installed")
		}
		return "uv", []string{"sync", "--active"}, nil
	case ProjectTypePythonPoetry:
		if !CommandExists("poetry") {
			return "", nil, errors.New("project uses poetry, but poetry is not installed")
		}
		return "poetry", []string{"install"}, nil
	default:
		return "", nil, errors.Errorf("cannot install dependencies for project type %q", projectType)
	}
}

// runCommand executes a provisioning step. In verbose mode output
// streams through; otherwise it is captured and surfaced only on
// failure.
func runCommand(ctx context.Context, dir string, env []string, verbose bool, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env

	display := name + " " + strings.Join(args, " ")
	if verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return errors.Wrapf(err, "%s failed", display)
		}
		return nil
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "%s failed:\n%s", display, strings.TrimSpace(string(out)))
	}
	return nil
}
