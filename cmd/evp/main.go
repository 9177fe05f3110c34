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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	evp "github.com/events-paradise/evp"
	"github.com/events-paradise/evp/pkg/bootstrap"
)

func main() {
	app := &cli.Command{
		Name:                   "evp",
		Usage:                  "Launcher for the Events Paradise event management system",
		Description:            "Provisions a Python virtual environment, installs the application's dependencies, and runs the web server, so a checkout starts with a single command.",
		Version:                evp.Version,
		EnableShellCompletion:  true,
		Suggest:                true,
		HideHelpCommand:        true,
		UseShortOptionHandling: true,
		Flags:                  globalFlags,
		Before:                 initLogger,
	}

	app.Commands = append(app.Commands, StartCommands...)
	app.Commands = append(app.Commands, SetupCommands...)
	app.Commands = append(app.Commands, DoctorCommands...)
	app.Commands = append(app.Commands, EnvCommands...)

	// Register cleanup hook for SIGINT, SIGTERM, SIGQUIT
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	go func() {
		<-ctx.Done()
		stop()
	}()

	if err := app.Run(ctx, os.Args); err != nil {
		// interrupting the foreground app is a normal way to stop
		if errors.Is(err, context.Canceled) {
			return
		}
		var exitErr *bootstrap.ExitError
		if errors.As(err, &exitErr) {
			// the launched application's status is our status
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
