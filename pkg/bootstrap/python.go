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
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

var (
	ErrNoInterpreter = errors.New("no python interpreter found in PATH")

	// Flask 3 and the app's integrations require 3.9+.
	MinPythonVersion = semver.MustParse("3.9.0")

	// Searched in order. `py` covers the Windows launcher.
	DefaultInterpreters = []string{"python3", "python", "py"}

	pythonVersionRe = regexp.MustCompile(`Python (\d+\.\d+(?:\.\d+)?)`)
)

// FindInterpreter resolves the interpreter to use. A non-empty override
// (flag or CLI config) must resolve or it is an error; otherwise the
// default candidates are searched in order.
func FindInterpreter(override string) (string, error) {
	if override != "" {
		p, err := exec.LookPath(override)
		if err != nil {
			return "", errors.Wrapf(ErrNoInterpreter, "%q not found", override)
		}
		return p, nil
	}
	for _, candidate := range DefaultInterpreters {
		if p, err := exec.LookPath(candidate); err == nil {
			return p, nil
		}
	}
	return "", ErrNoInterpreter
}

// InterpreterVersion invokes `python --version` and parses the result.
func InterpreterVersion(ctx context.Context, interpreter string) (*semver.Version, error) {
	// python2 printed the version to stderr
	out, err := exec.CommandContext(ctx, interpreter, "--version").CombinedOutput()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %s --version", interpreter)
	}
	return ParsePythonVersion(string(out))
}

func ParsePythonVersion(out string) (*semver.Version, error) {
	matches := pythonVersionRe.FindStringSubmatch(strings.TrimSpace(out))
	if len(matches) < 2 {
		return nil, errors.Errorf("unrecognized version output %q", strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(matches[1])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid version %q", matches[1])
	}
	return v, nil
}

// CheckInterpreter locates an interpreter and verifies it meets the
// minimum supported version.
func CheckInterpreter(ctx context.Context, override string) (string, *semver.Version, error) {
	interpreter, err := FindInterpreter(override)
	if err != nil {
		return "", nil, err
	}
	version, err := InterpreterVersion(ctx, interpreter)
	if err != nil {
		return interpreter, nil, err
	}
	if version.LessThan(MinPythonVersion) {
		return interpreter, version, errors.Errorf(
			"python %s is too old, need %s or newer", version, MinPythonVersion)
	}
	return interpreter, version, nil
}
