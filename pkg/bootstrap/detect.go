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
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"

	"github.com/events-paradise/evp/pkg/util"
)

type ProjectType string

const (
	ProjectTypePythonPip    ProjectType = "python.pip"
	ProjectTypePythonUV     ProjectType = "python.uv"
	ProjectTypePythonPoetry ProjectType = "python.poetry"
	ProjectTypeUnknown      ProjectType = "unknown"
)

func (p ProjectType) IsPython() bool {
	return p == ProjectTypePythonPip || p == ProjectTypePythonUV || p == ProjectTypePythonPoetry
}

// DetectProjectType determines how dependencies are declared by
// checking for manifest and lock files, most definitive first.
// requirements is the configured requirements filename; the stock
// requirements.txt is always recognized as a fallback.
func DetectProjectType(dir, requirements string) (ProjectType, error) {
	if util.FileExists(dir, "uv.lock") {
		return ProjectTypePythonUV, nil
	}
	if util.FileExists(dir, "poetry.lock") {
		return ProjectTypePythonPoetry, nil
	}
	if util.FileExists(dir, "Pipfile.lock") || util.FileExists(dir, "pdm.lock") {
		return ProjectTypePythonPip, nil // pip-compatible
	}
	if requirements != "" && util.FileExists(dir, requirements) {
		return ProjectTypePythonPip, nil
	}
	if util.FileExists(dir, "requirements.txt") {
		return ProjectTypePythonPip, nil
	}
	if util.FileExists(dir, "pyproject.toml") {
		data, err := os.ReadFile(filepath.Join(dir, "pyproject.toml"))
		if err == nil {
			var doc map[string]any
			if err := toml.Unmarshal(data, &doc); err == nil {
				if tool, ok := doc["tool"].(map[string]any); ok {
					if _, hasPoetry := tool["poetry"]; hasPoetry {
						return ProjectTypePythonPoetry, nil
					}
					if _, hasUv := tool["uv"]; hasUv {
						return ProjectTypePythonUV, nil
					}
				}
			}
		}
		// Default to pip if pyproject.toml is present but not informative
		return ProjectTypePythonPip, nil
	}

	return ProjectTypeUnknown, errors.New("not a python project; expected requirements.txt, pyproject.toml, or lock files")
}

// LocateManifest returns the dependency manifest that will drive the
// install for the given project type, preferring lock files. A
// configured requirements filename takes precedence for pip projects.
func LocateManifest(dir string, p ProjectType, requirements string) (bool, string) {
	var filesToCheck []string

	switch p {
	case ProjectTypePythonPip:
		filesToCheck = []string{"requirements.txt", "pyproject.toml"}
		if requirements != "" && requirements != "requirements.txt" {
			filesToCheck = append([]string{requirements}, filesToCheck...)
		}
	case ProjectTypePythonUV:
		filesToCheck = []string{"uv.lock", "pyproject.toml", "requirements.txt"}
	case ProjectTypePythonPoetry:
		filesToCheck = []string{"poetry.lock", "pyproject.toml"}
	default:
		return false, ""
	}

	for _, filename := range filesToCheck {
		if util.FileExists(dir, filename) {
			return true, filename
		}
	}
	return false, ""
}
