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

// Package bootstrap provisions and launches the Events Paradise
// application: it locates a Python interpreter, manages the project's
// virtual environment, installs declared dependencies, and runs the
// entry point, propagating its exit status.
package bootstrap

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvExampleFile = ".env.example"
	EnvFile        = ".env"
)

// Determine if `cmd` is a binary in PATH or a known alias
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return (err == nil || CommandIsAlias(cmd))
}

// Determine if `cmd` is a known alias
func CommandIsAlias(cmd string) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	out, err := exec.Command("alias", cmd).Output()
	if err != nil {
		return false
	}
	output := strings.TrimSpace(string(out))
	return strings.HasPrefix(output, cmd+"=")
}

type PromptFunc func(key string, value string) (string, error)

// Recursively walk the project, reading in any .env.example file if
// present in that directory, replacing all `substitutions`, prompting
// for others, and writing to .env in that directory. Existing .env
// files are left alone.
func InstantiateDotEnv(ctx context.Context, rootDir string, substitutions map[string]string, prompt PromptFunc) error {
	promptedVars := map[string]string{}

	return filepath.WalkDir(rootDir, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.Name() == EnvExampleFile {
			envPath := path.Join(path.Dir(filePath), EnvFile)
			if _, err := os.Stat(envPath); err == nil {
				return nil
			}

			envMap, err := godotenv.Read(filePath)
			if err != nil {
				return err
			}

			for key, oldValue := range envMap {
				// if key is a substitution, replace it
				if value, ok := substitutions[key]; ok {
					envMap[key] = value
					// if key was already prompted, use that value
				} else if alreadyPromptedValue, ok := promptedVars[key]; ok {
					envMap[key] = alreadyPromptedValue
				} else {
					// prompt for value
					newValue, err := prompt(key, oldValue)
					if err != nil {
						return err
					}
					envMap[key] = newValue
					promptedVars[key] = newValue
				}
			}

			envContents, err := godotenv.Marshal(envMap)
			if err != nil {
				return err
			}

			if err := os.WriteFile(envPath, []byte(envContents), 0600); err != nil {
				return err
			}
		}

		return nil
	})
}

// CheckRequiredEnv reports which of the required variables are unset,
// considering both the process environment and the project's .env file.
func CheckRequiredEnv(projectDir string, required []string) []string {
	fromFile := map[string]string{}
	if envMap, err := godotenv.Read(filepath.Join(projectDir, EnvFile)); err == nil {
		fromFile = envMap
	}

	var missing []string
	for _, key := range required {
		if os.Getenv(key) != "" {
			continue
		}
		if fromFile[key] != "" {
			continue
		}
		missing = append(missing, key)
	}
	return missing
}

// EnsureInstanceDirs creates the directories the application expects
// for uploads, exports, and generated QR codes.
func EnsureInstanceDirs(projectDir string, dirs []string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(filepath.Join(projectDir, filepath.FromSlash(dir)), 0755); err != nil {
			return err
		}
	}
	return nil
}
