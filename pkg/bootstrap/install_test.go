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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallCommandPip(t *testing.T) {
	v := NewVenv(t.TempDir(), ".venv")
	name, args, err := installCommand(ProjectTypePythonPip, v, "requirements.txt")
	require.NoError(t, err)
	assert.Equal(t, v.Pip(), name)
	assert.Equal(t, []string{"install", "-r", "requirements.txt"}, args)
}

func TestInstallCommandUnknown(t *testing.T) {
	v := NewVenv(t.TempDir(), ".venv")
	_, _, err := installCommand(ProjectTypeUnknown, v, "requirements.txt")
	assert.Error(t, err)
}

func TestInstallDependenciesFailingInstaller(t *testing.T) {
	dir := t.TempDir()
	v := NewVenv(dir, ".venv")

	// the venv was never created, so its pip does not exist and the
	// install must fail without launching anything
	err := InstallDependencies(context.Background(), ProjectTypePythonPip, InstallOptions{
		ProjectDir:   dir,
		Venv:         v,
		Requirements: "requirements.txt",
	})
	require.Error(t, err)
}
