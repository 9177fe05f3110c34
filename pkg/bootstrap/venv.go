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
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/events-paradise/evp/pkg/util"
)

// Venv is the project's virtual environment. There is no shell
// activation step: children are run with the venv's own binaries and
// an environment equivalent to what `activate` would set up.
type Venv struct {
	Root string
}

func NewVenv(projectDir, venvDir string) *Venv {
	return &Venv{Root: filepath.Join(projectDir, venvDir)}
}

func (v *Venv) binDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(v.Root, "Scripts")
	}
	return filepath.Join(v.Root, "bin")
}

func (v *Venv) Python() string {
	return filepath.Join(v.binDir(), exeName("python"))
}

func (v *Venv) Pip() string {
	return filepath.Join(v.binDir(), exeName("pip"))
}

func (v *Venv) Exists() bool {
	return util.DirExists(v.Root)
}

// Environ returns the process environment with the venv activated:
// VIRTUAL_ENV set and the venv's bin directory prepended to PATH.
func (v *Venv) Environ() []string {
	env := []string{
		"VIRTUAL_ENV=" + v.Root,
		"PATH=" + v.binDir() + string(os.PathListSeparator) + os.Getenv("PATH"),
	}
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "PATH=") || strings.HasPrefix(kv, "VIRTUAL_ENV=") {
			continue
		}
		env = append(env, kv)
	}
	return env
}

// Create runs `python -m venv` for this environment's root.
func (v *Venv) Create(ctx context.Context, interpreter string) error {
	out, err := exec.CommandContext(ctx, interpreter, "-m", "venv", v.Root).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "failed to create virtual environment:\n%s", string(out))
	}
	return nil
}

func (v *Venv) Remove() error {
	return os.RemoveAll(v.Root)
}

// Ensure creates the venv if it is absent. It reports whether a new
// environment was created; an existing directory is used as-is.
func (v *Venv) Ensure(ctx context.Context, interpreter string) (created bool, err error) {
	if v.Exists() {
		return false, nil
	}
	if err := v.Create(ctx, interpreter); err != nil {
		return false, err
	}
	return true, nil
}

func exeName(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}
