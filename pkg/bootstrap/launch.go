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
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"

	"github.com/events-paradise/evp/pkg/util"
)

// ExitError carries a launched application's exit status so the CLI
// can terminate with the same code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("application exited with status %d", e.Code)
}

type LaunchOptions struct {
	ProjectDir string
	Venv       *Venv
	Entrypoint string
	Verbose    bool
}

// Launch runs the application entry point in the foreground with
// inherited stdio, blocking until the process exits or ctx is
// canceled. A non-zero exit surfaces as *ExitError. Projects with a
// taskfile dev task run that instead.
func Launch(ctx context.Context, opts LaunchOptions) error {
	if HasTask(opts.ProjectDir, TaskDev) {
		run, err := NewTask(ctx, opts.ProjectDir, TaskDev, true)
		if err != nil {
			return err
		}
		return run()
	}

	if !util.FileExists(opts.ProjectDir, opts.Entrypoint) {
		return errors.Errorf("entry point %q not found in %s", opts.Entrypoint, opts.ProjectDir)
	}

	cmd := exec.CommandContext(ctx, opts.Venv.Python(), opts.Entrypoint)
	cmd.Dir = opts.ProjectDir
	cmd.Env = opts.Venv.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// give the server a chance to shut down cleanly before the kill
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()
	if ctx.Err() != nil {
		// stopped by the user, not the application
		return ctx.Err()
	}
	if xe, ok := err.(*exec.ExitError); ok {
		code := xe.ExitCode()
		if code < 0 {
			// terminated by a signal
			code = 1
		}
		return &ExitError{Code: code}
	}
	return err
}
