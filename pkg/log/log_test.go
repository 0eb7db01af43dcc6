// Copyright 2025 walteh LLC
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

package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_run_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.StartRunOperation(context.Background(), RunOperation{
					Mode:    "clone",
					Root:    "/tmp/Bar",
					OldName: "Foo",
					NewName: "Bar",
				})
			},
			wantLogs: []string{
				"[clone /tmp/Bar]",
				"◆ Foo → Bar",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"❌ error message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Infof("info %s", "test")
				logger.Warningf("warning %s", "test")
				logger.Errorf("error %s", "test")
				logger.Successf("success %s", "test")
			},
			wantLogs: []string{
				"ℹ️  info test",
				"⚠️  warning test",
				"❌ error test",
				"✅ success test",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("realigning project")
			},
			wantLogs: []string{
				"projrename • realigning project",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.NotSame(t, logger, fallback)
	assert.NotPanics(t, func() { fallback.Info("discarded") })
}

func TestFileOperationFormatting(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	line := func(symbol, path, status, suffix string) string {
		return strings.TrimSpace(fmt.Sprintf("    %s %-35s %-10s%s", symbol, path, status, suffix))
	}

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "updated_file",
			op: FileOperation{
				Path:         "Scripts/Patch.cs",
				IsUpdated:    true,
				Replacements: 2,
			},
			want: line("⟳", "Scripts/Patch.cs", "updated", " (2 replacements)"),
		},
		{
			name: "renamed_file",
			op: FileOperation{
				Path:      "Foo.csproj",
				RenamedTo: "Bar.csproj",
				IsRenamed: true,
			},
			want: line("→", "Foo.csproj", "renamed", " Bar.csproj"),
		},
		{
			name: "dry_run_update",
			op: FileOperation{
				Path:      "Foo.sln",
				IsUpdated: true,
				DryRun:    true,
			},
			want: line("⟳", "Foo.sln", "would be updated", ""),
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path: "notes.txt",
			},
			want: line("-", "notes.txt", "unchanged", ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Nop())

			logger.LogFileOperation(context.Background(), tt.op)

			output := strings.TrimSpace(buf.String())
			assert.Equal(t, tt.want, output, "formatted output should match")
		})
	}
}

func TestEndRunOperation(t *testing.T) {
	color.NoColor = true
	pterm.DisableStyling()
	defer func() {
		color.NoColor = false
		pterm.EnableStyling()
	}()

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)))

	// no-op without a started run
	logger.EndRunOperation(context.Background(), Summary{Updated: 9})
	assert.Empty(t, buf.String())

	logger.StartRunOperation(context.Background(), RunOperation{Mode: "realign", Root: "/mods/Bar", OldName: "Foo", NewName: "Bar"})
	logger.LogFileOperation(context.Background(), FileOperation{Path: "a.cs", IsUpdated: true, Replacements: 1})
	logger.EndRunOperation(context.Background(), Summary{Scanned: 3, Updated: 1, Renamed: 2, Replacements: 1})

	output := buf.String()
	assert.Contains(t, output, "scanned")
	assert.Contains(t, output, "Updated 1 file contents.")
	assert.Contains(t, output, "Renamed 2 files.")
}
