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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePythonVersion(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{
			name:   "cpython",
			output: "Python 3.11.4\n",
			want:   "3.11.4",
		},
		{
			name:   "two-part version",
			output: "Python 3.12",
			want:   "3.12.0",
		},
		{
			name:   "trailing noise",
			output: "Python 3.10.2+ (heads/main)",
			want:   "3.10.2",
		},
		{
			name:    "garbage",
			output:  "zsh: command not found",
			wantErr: true,
		},
		{
			name:    "empty",
			output:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParsePythonVersion(tt.output)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestFindInterpreterMissingOverride(t *testing.T) {
	_, err := FindInterpreter("definitely-not-a-python-binary")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoInterpreter))
}

func TestFindInterpreterEmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := FindInterpreter("")
	assert.ErrorIs(t, err, ErrNoInterpreter)
}
