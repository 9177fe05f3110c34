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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/frostbyte73/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError(t *testing.T) {
	err := &ExitError{Code: 3}
	assert.Equal(t, "application exited with status 3", err.Error())
}

// fakeVenv lays out a stub environment whose python is a shell script
// running the given body.
func fakeVenv(t *testing.T, projectDir, body string) *Venv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub interpreter is a shell script")
	}
	v := NewVenv(projectDir, ".venv")
	require.NoError(t, os.MkdirAll(filepath.Join(v.Root, "bin"), 0755))
	require.NoError(t, os.WriteFile(v.Python(), []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return v
}

func TestLaunchPropagatesExitCode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.py"), []byte(""), 0644))
	venv := fakeVenv(t, dir, "exit 7")

	err := Launch(context.Background(), LaunchOptions{
		ProjectDir: dir,
		Venv:       venv,
		Entrypoint: "run.py",
	})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.Code)
}

func TestLaunchCleanExit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.py"), []byte(""), 0644))
	venv := fakeVenv(t, dir, "exit 0")

	require.NoError(t, Launch(context.Background(), LaunchOptions{
		ProjectDir: dir,
		Venv:       venv,
		Entrypoint: "run.py",
	}))
}

func TestLaunchSignaledChild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.py"), []byte(""), 0644))
	venv := fakeVenv(t, dir, "kill -KILL $$")

	// a signal death has no exit code; it maps to a plain failure
	err := Launch(context.Background(), LaunchOptions{
		ProjectDir: dir,
		Venv:       venv,
		Entrypoint: "run.py",
	})
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestLaunchMissingEntrypoint(t *testing.T) {
	dir := t.TempDir()
	err := Launch(context.Background(), LaunchOptions{
		ProjectDir: dir,
		Venv:       NewVenv(dir, ".venv"),
		Entrypoint: "run.py",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run.py")
}

func TestWaitUntilReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exited := new(core.Fuse)
	require.NoError(t, WaitUntilReady(ctx, srv.URL, exited))
}

func TestWaitUntilReadyAppExited(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exited := new(core.Fuse)
	exited.Break()

	// nothing is listening on the URL; the broken fuse must win
	err := WaitUntilReady(ctx, "http://127.0.0.1:1", exited)
	assert.ErrorIs(t, err, ErrAppExited)
}

func TestWaitUntilReadyContextCanceled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := WaitUntilReady(ctx, "http://127.0.0.1:1", new(core.Fuse))
	assert.Error(t, err)
}
