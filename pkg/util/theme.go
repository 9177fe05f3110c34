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

package util

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	Theme = func() *huh.Theme {
		t := huh.ThemeBase16()
		t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("7")).Background(lipgloss.Color("4"))
		t.Focused.TextInput.Cursor.Foreground(lipgloss.Color("4"))
		return t
	}()

	Accented = func(text string) string {
		return Theme.Focused.Title.Render(text)
	}
	Dimmed = func(text string) string {
		return Theme.Focused.Description.Render(text)
	}

	green  = lipgloss.AdaptiveColor{Light: "#036D26", Dark: "#06DB4D"}
	yellow = lipgloss.AdaptiveColor{Light: "#DB9406", Dark: "#F9B11F"}
	red    = lipgloss.AdaptiveColor{Light: "#CE4A3B", Dark: "#FF6352"}

	okStyle   = lipgloss.NewStyle().Foreground(green)
	warnStyle = lipgloss.NewStyle().Foreground(yellow)
	failStyle = lipgloss.NewStyle().Foreground(red)

	OK = func(text string) string {
		return okStyle.Render(text)
	}
	Warn = func(text string) string {
		return warnStyle.Render(text)
	}
	Fail = func(text string) string {
		return failStyle.Render(text)
	}
)
