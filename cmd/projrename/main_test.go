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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

const project = "<Project>\n  <AssemblyName>Foo</AssemblyName>\n</Project>\n"

func TestRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name       string
		files      map[string]string
		args       func(dir string) []string
		wantCode   int
		wantStdout []string
		wantStderr []string
		validate   func(t *testing.T, dir string)
	}{
		{
			name: "clone",
			files: map[string]string{
				"Foo/Foo.csproj":   project,
				"Foo/src/Mod.cs":   "namespace Foo { class M { void A() { Debug.Log(\"[Foo] up\"); } } }",
				"Foo/About/a.yaml": "name: Foo\n",
			},
			args: func(dir string) []string {
				return []string{"clone", filepath.Join(dir, "Foo"), filepath.Join(dir, "Bar")}
			},
			wantCode: 0,
			wantStdout: []string{
				"Copied ",
				"Updated 3 file contents.",
				"Renamed 1 files.",
				"clone complete for 'Bar'",
			},
			validate: func(t *testing.T, dir string) {
				assert.Contains(t, readFile(t, filepath.Join(dir, "Bar", "Bar.csproj")), "<AssemblyName>Bar</AssemblyName>")
				assert.Equal(t, "namespace Bar { class M { void A() { Debug.Log(\"[Bar] up\"); } } }", readFile(t, filepath.Join(dir, "Bar", "src", "Mod.cs")))
				assert.Equal(t, "name: Bar\n", readFile(t, filepath.Join(dir, "Bar", "About", "a.yaml")))
				assert.Equal(t, project, readFile(t, filepath.Join(dir, "Foo", "Foo.csproj")))
			},
		},
		{
			name: "clone_existing_target",
			files: map[string]string{
				"Foo/Foo.csproj": project,
				"Bar/keep.cs":    "class Foo {}",
			},
			args: func(dir string) []string {
				return []string{"clone", filepath.Join(dir, "Foo"), filepath.Join(dir, "Bar")}
			},
			wantCode:   1,
			wantStderr: []string{"❌ projrename clone: ", "target directory already exists"},
			validate: func(t *testing.T, dir string) {
				assert.Equal(t, "class Foo {}", readFile(t, filepath.Join(dir, "Bar", "keep.cs")))
			},
		},
		{
			name: "clone_missing_source",
			args: func(dir string) []string {
				return []string{"clone", filepath.Join(dir, "Nope"), filepath.Join(dir, "Bar")}
			},
			wantCode:   1,
			wantStderr: []string{"source directory does not exist"},
		},
		{
			name: "clone_dry_run",
			files: map[string]string{
				"Foo/Foo.csproj": project,
			},
			args: func(dir string) []string {
				return []string{"clone", "--dry-run", filepath.Join(dir, "Foo"), filepath.Join(dir, "Bar")}
			},
			wantCode:   1,
			wantStderr: []string{"dry run is not supported"},
		},
		{
			name: "clone_wrong_arg_count",
			args: func(dir string) []string {
				return []string{"clone", filepath.Join(dir, "Foo")}
			},
			wantCode:   1,
			wantStderr: []string{"accepts 2 arg(s)"},
		},
		{
			name: "realign",
			files: map[string]string{
				"Bar/Foo.csproj":         project,
				"Bar/Scripts/FooMain.cs": "// FOO\nclass FooMain { string k = \"foo\"; }",
			},
			args: func(dir string) []string {
				return []string{"realign", filepath.Join(dir, "Bar")}
			},
			wantCode: 0,
			wantStdout: []string{
				"◆ Foo → Bar",
				"Updated 2 file contents.",
				"Renamed 2 files.",
			},
			validate: func(t *testing.T, dir string) {
				assert.Equal(t, "// BAR\nclass BarMain { string k = \"bar\"; }", readFile(t, filepath.Join(dir, "Bar", "Scripts", "BarMain.cs")))
				assert.FileExists(t, filepath.Join(dir, "Bar", "Bar.csproj"))
			},
		},
		{
			name: "realign_unknown_name",
			files: map[string]string{
				"Bar/Bar.csproj": "<Project />",
			},
			args: func(dir string) []string {
				return []string{"realign", filepath.Join(dir, "Bar")}
			},
			wantCode:   1,
			wantStderr: []string{"could not detect original project name"},
		},
		{
			name: "realign_dry_run",
			files: map[string]string{
				"Bar/Foo.csproj": project,
			},
			args: func(dir string) []string {
				return []string{"realign", "--dry-run", filepath.Join(dir, "Bar")}
			},
			wantCode:   0,
			wantStdout: []string{"would be updated", "Dry run: realign"},
			validate: func(t *testing.T, dir string) {
				assert.Equal(t, project, readFile(t, filepath.Join(dir, "Bar", "Foo.csproj")))
			},
		},
		{
			name: "realign_with_config_flag",
			files: map[string]string{
				"Bar/Foo.csproj":       project,
				"Bar/readme.txt":       "made by ACME",
				"settings/rename.json": `{"extensions": [".txt"], "replacements": [{"old": "ACME", "new": "Initech", "file": "*.txt"}]}`,
			},
			args: func(dir string) []string {
				return []string{"realign", "--config", filepath.Join(dir, "settings", "rename.json"), filepath.Join(dir, "Bar")}
			},
			wantCode: 0,
			validate: func(t *testing.T, dir string) {
				assert.Equal(t, "made by Initech", readFile(t, filepath.Join(dir, "Bar", "readme.txt")))
			},
		},
		{
			name: "bad_config_flag",
			files: map[string]string{
				"Bar/Foo.csproj":    project,
				"settings/bad.yaml": "unknown_field: true\n",
			},
			args: func(dir string) []string {
				return []string{"realign", "-c", filepath.Join(dir, "settings", "bad.yaml"), filepath.Join(dir, "Bar")}
			},
			wantCode:   1,
			wantStderr: []string{"loading config"},
			validate: func(t *testing.T, dir string) {
				assert.Equal(t, project, readFile(t, filepath.Join(dir, "Bar", "Foo.csproj")))
			},
		},
		{
			name: "repair",
			files: map[string]string{
				"Sweep/Old.csproj": "<AssemblyName>Old</AssemblyName>",
				"Sweep/Main.cs":    "namespace Whatever { }",
			},
			args: func(dir string) []string {
				return []string{"repair", "--debug", filepath.Join(dir, "Sweep")}
			},
			wantCode:   0,
			wantStdout: []string{"projrename • repair", "Repairing project to match directory name: Sweep", "repair complete for 'Sweep'"},
			wantStderr: []string{"options ready"},
			validate: func(t *testing.T, dir string) {
				assert.Equal(t, "<AssemblyName>Sweep</AssemblyName>", readFile(t, filepath.Join(dir, "Sweep", "Sweep.csproj")))
				assert.Equal(t, "namespace Sweep { }", readFile(t, filepath.Join(dir, "Sweep", "Main.cs")))
			},
		},
		{
			name: "repair_missing_folder",
			args: func(dir string) []string {
				return []string{"repair", filepath.Join(dir, "Nope")}
			},
			wantCode:   1,
			wantStderr: []string{"directory does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files)

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			code := run(context.Background(), tt.args(dir), stdout, stderr)
			assert.Equal(t, tt.wantCode, code, "stdout:\n%s\nstderr:\n%s", stdout.String(), stderr.String())

			for _, want := range tt.wantStdout {
				assert.Contains(t, stdout.String(), want)
			}
			for _, want := range tt.wantStderr {
				assert.Contains(t, stderr.String(), want)
			}

			if tt.validate != nil {
				tt.validate(t, dir)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	stdout := &bytes.Buffer{}
	code := run(context.Background(), []string{"--version"}, stdout, &bytes.Buffer{})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "projrename ")
	assert.Contains(t, stdout.String(), "platform: ")
}
