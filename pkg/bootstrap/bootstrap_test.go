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
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRequiredEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := "EVP_TEST_MAIL_USER=mailer@example.com\nEVP_TEST_EMPTY=\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte(dotenv), 0600))

	t.Setenv("EVP_TEST_SECRET", "hunter2")

	missing := CheckRequiredEnv(dir, []string{
		"EVP_TEST_SECRET",    // set in process env
		"EVP_TEST_MAIL_USER", // set in .env
		"EVP_TEST_EMPTY",     // present but empty
		"EVP_TEST_STRIPE",    // absent everywhere
	})
	assert.Equal(t, []string{"EVP_TEST_EMPTY", "EVP_TEST_STRIPE"}, missing)
}

func TestCheckRequiredEnvNoDotenv(t *testing.T) {
	missing := CheckRequiredEnv(t.TempDir(), []string{"EVP_TEST_NOT_SET"})
	assert.Equal(t, []string{"EVP_TEST_NOT_SET"}, missing)
}

func TestEnsureInstanceDirs(t *testing.T) {
	dir := t.TempDir()
	dirs := []string{
		"instance/uploads/images",
		"instance/exports",
		"static/qrcodes",
	}
	require.NoError(t, EnsureInstanceDirs(dir, dirs))
	for _, d := range dirs {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(d)))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// idempotent
	require.NoError(t, EnsureInstanceDirs(dir, dirs))
}

func TestInstantiateDotEnv(t *testing.T) {
	dir := t.TempDir()
	example := "SECRET_KEY=change-me\nMAIL_USERNAME=you@example.com\nDEBUG=true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvExampleFile), []byte(example), 0644))

	var prompted []string
	err := InstantiateDotEnv(context.Background(), dir,
		map[string]string{"SECRET_KEY": "generated-secret"},
		func(key, value string) (string, error) {
			prompted = append(prompted, key)
			return value + "-confirmed", nil
		})
	require.NoError(t, err)

	// substituted keys are never prompted
	assert.NotContains(t, prompted, "SECRET_KEY")
	assert.ElementsMatch(t, []string{"MAIL_USERNAME", "DEBUG"}, prompted)

	envMap, err := godotenv.Read(filepath.Join(dir, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "generated-secret", envMap["SECRET_KEY"])
	assert.Equal(t, "you@example.com-confirmed", envMap["MAIL_USERNAME"])
	assert.Equal(t, "true-confirmed", envMap["DEBUG"])
}

func TestInstantiateDotEnvKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvExampleFile), []byte("A=1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnvFile), []byte("A=keep\n"), 0600))

	err := InstantiateDotEnv(context.Background(), dir, nil,
		func(key, value string) (string, error) {
			t.Fatal("prompt should not run when .env already exists")
			return "", nil
		})
	require.NoError(t, err)

	envMap, err := godotenv.Read(filepath.Join(dir, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "keep", envMap["A"])
}

func TestInstantiateDotEnvWalksSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "services", "mailer")
	require.NoError(t, os.MkdirAll(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, EnvExampleFile), []byte("MAIL_PORT=587\n"), 0644))

	err := InstantiateDotEnv(context.Background(), dir, nil,
		func(key, value string) (string, error) { return value, nil })
	require.NoError(t, err)

	envMap, err := godotenv.Read(filepath.Join(sub, EnvFile))
	require.NoError(t, err)
	assert.Equal(t, "587", envMap["MAIL_PORT"])
}

func TestCommandExists(t *testing.T) {
	// something from PATH that exists on every CI image
	assert.True(t, CommandExists("go") || CommandExists("ls"))
	assert.False(t, CommandExists("definitely-not-a-real-command-xyz"))
}
