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

// Package project derives project identifiers from directories and project
// metadata files.
package project

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrAssemblyNameNotFound is returned when no project file declares an assembly name
var ErrAssemblyNameNotFound = errors.Base("assembly name not found")

// ProjectFileExt is the extension of files scanned for metadata
const ProjectFileExt = ".csproj"

var assemblyNamePattern = regexp.MustCompile(`(?i)<AssemblyName>(.*?)</AssemblyName>`)

var errStopWalk = errors.Base("stop walk")

// 📛 NameFromDir returns the identifier implied by a directory path, ignoring
// trailing separators.
func NameFromDir(path string) string {
	return filepath.Base(filepath.Clean(path))
}

// 🔍 AssemblyName returns the first assembly name declared in content
func AssemblyName(content []byte) (string, bool) {
	m := assemblyNamePattern.FindSubmatch(content)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// 🔍 DetectAssemblyName walks root in lexical order and returns the first
// <AssemblyName> found in a project file.
func DetectAssemblyName(ctx context.Context, fs billy.Filesystem, root string) (string, error) {
	logger := zerolog.Ctx(ctx)

	var found string
	err := util.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() || !strings.HasSuffix(info.Name(), ProjectFileExt) {
			return nil
		}

		content, err := util.ReadFile(fs, path)
		if err != nil {
			return errors.Errorf("reading %s: %w", path, err)
		}

		name, ok := AssemblyName(content)
		if !ok {
			logger.Debug().Str("file", path).Msg("project file has no assembly name")
			return nil
		}

		logger.Debug().Str("file", path).Str("assembly_name", name).Msg("detected assembly name")
		found = name
		return errStopWalk
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return "", errors.Errorf("scanning %s for project files: %w", root, err)
	}

	if found == "" {
		return "", errors.Errorf("%w under %s", ErrAssemblyNameNotFound, root)
	}
	return found, nil
}
