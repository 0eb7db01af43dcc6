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

package config

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/projrename/pkg/text"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_yaml",
			file: ".projrename.yaml",
			config: `
extensions: [".props", ".asmdef"]
ignore:
  - "Library/**"
replacements:
  - old: Copyright Foo
    new: Copyright Bar
  - old: foo.example.com
    new: bar.example.com
    file: "**/*.md"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{".props", ".asmdef"}, cfg.Extensions)
				assert.Equal(t, []string{"Library/**"}, cfg.Ignore)
				require.Len(t, cfg.Replacements, 2)
				assert.Equal(t, "Copyright Foo", cfg.Replacements[0].Old)
				assert.Nil(t, cfg.Replacements[0].File)
				require.NotNil(t, cfg.Replacements[1].File)
				assert.Equal(t, "**/*.md", *cfg.Replacements[1].File)
				assert.Equal(t, "/proj/.projrename.yaml", cfg.Location())
			},
		},
		{
			name:   "empty_yaml",
			file:   ".projrename.yml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Extensions)
				assert.Empty(t, cfg.Replacements)
			},
		},
		{
			name: "valid_hcl",
			file: ".projrename.hcl",
			config: `
extensions = [".props"]
ignore     = ["Library/**"]

replacement {
  old  = "Copyright Foo"
  new  = "Copyright Bar"
  file = "**/*.cs"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{".props"}, cfg.Extensions)
				require.Len(t, cfg.Replacements, 1)
				assert.Equal(t, "Copyright Bar", cfg.Replacements[0].New)
				require.NotNil(t, cfg.Replacements[0].File)
				assert.Equal(t, "**/*.cs", *cfg.Replacements[0].File)
			},
		},
		{
			name:   "valid_json",
			file:   ".projrename.json",
			config: `{"ignore": ["bin/**", "obj/**"], "replacements": [{"old": "a", "new": "b"}]}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"bin/**", "obj/**"}, cfg.Ignore)
				require.Len(t, cfg.Replacements, 1)
			},
		},
		{
			name:        "unknown_yaml_field",
			file:        ".projrename.yaml",
			config:      "rename_dirs: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			file:        ".projrename.json",
			config:      `{"destination": "/tmp"}`,
			errContains: "parsing JSON",
		},
		{
			name:        "unknown_hcl_attribute",
			file:        ".projrename.hcl",
			config:      `destination = "/tmp"`,
			errContains: "decoding HCL",
		},
		{
			name:        "bad_extension",
			file:        ".projrename.yaml",
			config:      "extensions: [props]\n",
			errContains: "must look like",
		},
		{
			name:        "bad_ignore_glob",
			file:        ".projrename.yaml",
			config:      "ignore: [\"[oops\"]\n",
			errContains: "invalid glob",
		},
		{
			name:        "empty_replacement_old",
			file:        ".projrename.yaml",
			config:      "replacements:\n  - new: x\n",
			errContains: "old is required",
		},
		{
			name:        "unsupported_extension",
			file:        "projrename.toml",
			config:      "",
			errContains: "unsupported file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			fs := memfs.New()
			path := "/proj/" + tt.file
			require.NoError(t, util.WriteFile(fs, path, []byte(tt.config), 0o644))

			cfg, err := LoadConfig(ctx, fs, path)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := testContext(t)
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/empty", 0o755))
	require.NoError(t, util.WriteFile(fs, "/proj/.projrename.hcl", []byte(`ignore = ["bin/**"]`), 0o644))
	require.NoError(t, util.WriteFile(fs, "/proj/.projrename.json", []byte(`{"ignore": ["obj/**"]}`), 0o644))

	cfg, err := LoadOrDefault(ctx, fs, "/empty")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Location())
	assert.Contains(t, cfg.String(), "defaults")

	cfg, err = LoadOrDefault(ctx, fs, "/proj")
	require.NoError(t, err)
	assert.Equal(t, "/proj/.projrename.hcl", cfg.Location(), "hcl is looked up before json")
	assert.Equal(t, []string{"bin/**"}, cfg.Ignore)
}

func TestConfig_IsIgnored(t *testing.T) {
	cfg := &Config{Ignore: []string{"Library/**", "**/*.Designer.cs"}}

	assert.True(t, cfg.IsIgnored(".git"))
	assert.True(t, cfg.IsIgnored(".git/HEAD"))
	assert.True(t, cfg.IsIgnored("Library/cache/x.cs"))
	assert.True(t, cfg.IsIgnored("UI/Form.Designer.cs"))
	assert.False(t, cfg.IsIgnored("Scripts/Patch.cs"))
	assert.False(t, cfg.IsIgnored(".gitignore"))

	assert.False(t, Default().IsIgnored("Scripts/Patch.cs"))
}

func TestConfig_Apply(t *testing.T) {
	file := "**/*.md"
	cfg := &Config{
		Extensions: []string{".props"},
		Replacements: []Replacement{
			{Old: "Foo Studio", New: "Bar Studio", File: &file},
		},
	}

	rules := cfg.Apply(text.CloneRules("Foo", "Bar"))
	assert.True(t, rules.Eligible("Directory.Build.props"))
	assert.Len(t, rules.Rules, len(text.CloneRules("Foo", "Bar").Rules)+1)

	result, err := rules.Apply(testContext(t), "docs/readme.md", []byte("by Foo Studio"))
	require.NoError(t, err)
	assert.Equal(t, "by Bar Studio", string(result.ModifiedContent))
}
