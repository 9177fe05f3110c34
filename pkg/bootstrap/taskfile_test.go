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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasTask(t *testing.T) {
	dir := t.TempDir()
	contents := `version: "3"
tasks:
  install:
    cmds:
      - echo install
  dev:
    cmds:
      - echo dev
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, TaskFile), []byte(contents), 0644))

	assert.True(t, HasTask(dir, TaskInstall))
	assert.True(t, HasTask(dir, TaskDev))
	assert.False(t, HasTask(dir, "deploy"))
}

func TestHasTaskNoTaskfile(t *testing.T) {
	assert.False(t, HasTask(t.TempDir(), TaskInstall))
}

func TestHasTaskMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TaskFile), []byte("\ttasks: {"), 0644))
	assert.False(t, HasTask(dir, TaskInstall))
}
