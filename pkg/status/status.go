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

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sync"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrRenameConflict is returned when a rename target already exists
var ErrRenameConflict = errors.Base("rename target already exists")

const tempSuffix = ".projrename.tmp"

// 📊 FileStatus represents what happened to a file during a run
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusUnchanged            // File was scanned, content already matched
	StatusUpdated              // File content was rewritten
	StatusRenamed              // File was moved to a new name
	StatusCopied               // File was copied from a source tree
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	default:
		return "unknown"
	}
}

// 📄 FileInfo contains what is known about a file touched by a run
type FileInfo struct {
	Path         string     // Path of the file when it was first seen
	Status       FileStatus // Most significant status reached
	RenamedTo    string     // New path, set once the file is renamed
	Replacements int        // Number of replacements made in its content
	Checksum     string     // Content hash after the last write
	Scanned      bool       // Content was read by a rewrite pass
	Copied       bool       // File was created by CopyTree
}

// 📈 Counts summarizes tracked files
type Counts struct {
	Scanned int
	Updated int
	Renamed int
	Copied  int
}

// 🔧 Manager performs every filesystem operation of a run and records its outcome
type Manager struct {
	fs     billy.Filesystem
	dryRun bool

	mu    sync.RWMutex
	files map[string]*FileInfo
	order []string
}

// 🏭 New creates a new status manager. When dryRun is set, mutations are
// recorded but never applied.
func New(fs billy.Filesystem, dryRun bool) *Manager {
	return &Manager{
		fs:     fs,
		dryRun: dryRun,
		files:  make(map[string]*FileInfo),
	}
}

// DryRun reports whether mutations are skipped
func (m *Manager) DryRun() bool {
	return m.dryRun
}

// Filesystem returns the underlying filesystem
func (m *Manager) Filesystem() billy.Filesystem {
	return m.fs
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := util.ReadFile(m.fs, path)
	if err != nil {
		return nil, errors.Errorf("reading file %s: %w", path, err)
	}
	return content, nil
}

func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	_, err := m.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking existence of %s: %w", path, err)
}

func (m *Manager) IsDir(ctx context.Context, path string) (bool, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("checking %s: %w", path, err)
	}
	return info.IsDir(), nil
}

// 💾 WriteFileAtomic replaces the content of path through a temp file in the
// same directory, keeping the original file mode. A stale temp file from an
// interrupted run makes the write fail instead of being clobbered.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	if m.dryRun {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("dry run, skipping write")
		return nil
	}

	mode := os.FileMode(0o644)
	if info, err := m.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("stat %s: %w", path, err)
	}

	tempPath := path + tempSuffix
	tmp, err := m.fs.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_EXCL, mode)
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		m.fs.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		m.fs.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := m.fs.Rename(tempPath, path); err != nil {
		m.fs.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🚚 Rename moves from to to, refusing to replace an existing file
func (m *Manager) Rename(ctx context.Context, from, to string) error {
	exists, err := m.Exists(ctx, to)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("%w: %s", ErrRenameConflict, to)
	}

	if m.dryRun {
		zerolog.Ctx(ctx).Debug().Str("from", from).Str("to", to).Msg("dry run, skipping rename")
		return nil
	}

	if err := m.fs.Rename(from, to); err != nil {
		return errors.Errorf("renaming %s: %w", from, err)
	}
	return nil
}

// 🚶 Walk visits root and everything below it in lexical order
func (m *Manager) Walk(ctx context.Context, root string, fn filepath.WalkFunc) error {
	return util.Walk(m.fs, root, func(path string, info os.FileInfo, err error) error {
		if err == nil {
			if cerr := ctx.Err(); cerr != nil {
				return errors.Errorf("walk interrupted: %w", cerr)
			}
		}
		return fn(path, info, err)
	})
}

// 📦 CopyTree copies the directory src to dst recursively, preserving file
// modes. dst must not exist yet. It returns the number of files copied.
func (m *Manager) CopyTree(ctx context.Context, src, dst string) (int, error) {
	if m.dryRun {
		return 0, errors.Errorf("copying %s: not supported in dry run", src)
	}

	copied := 0
	err := m.Walk(ctx, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.IsDir():
			if err := m.fs.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return errors.Errorf("creating directory %s: %w", target, err)
			}
		case info.Mode()&os.ModeSymlink != 0:
			link, err := m.fs.Readlink(path)
			if err != nil {
				return errors.Errorf("reading link %s: %w", path, err)
			}
			if err := m.fs.Symlink(link, target); err != nil {
				return errors.Errorf("creating link %s: %w", target, err)
			}
		default:
			if err := m.copyFile(path, target, info.Mode().Perm()); err != nil {
				return err
			}
			copied++
			m.track(target, func(fi *FileInfo) {
				fi.Status = StatusCopied
				fi.Copied = true
			})
		}
		return nil
	})
	if err != nil {
		return copied, errors.Errorf("copying %s to %s: %w", src, dst, err)
	}

	return copied, nil
}

func (m *Manager) copyFile(src, dst string, mode os.FileMode) error {
	source, err := m.fs.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := m.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file content: %w", err)
	}

	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	return nil
}

// Tracking

func (m *Manager) track(path string, update func(*FileInfo)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fi, ok := m.files[path]
	if !ok {
		fi = &FileInfo{Path: path}
		m.files[path] = fi
		m.order = append(m.order, path)
	}
	update(fi)
}

// TrackScanned records that path was read and left unchanged
func (m *Manager) TrackScanned(path string) {
	m.track(path, func(fi *FileInfo) {
		fi.Scanned = true
		if fi.Status == StatusUnknown || fi.Status == StatusCopied {
			fi.Status = StatusUnchanged
		}
	})
}

// TrackUpdated records a content rewrite of path
func (m *Manager) TrackUpdated(path string, replacements int, content []byte) {
	m.track(path, func(fi *FileInfo) {
		fi.Scanned = true
		fi.Status = StatusUpdated
		fi.Replacements += replacements
		fi.Checksum = calculateChecksum(content)
	})
}

// TrackRenamed records that path now lives at to. Content updates made
// earlier in the run are still counted.
func (m *Manager) TrackRenamed(path, to string) {
	m.track(path, func(fi *FileInfo) {
		fi.RenamedTo = to
		if fi.Status != StatusUpdated {
			fi.Status = StatusRenamed
		}
	})
}

func (m *Manager) GetFileInfo(path string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	info, ok := m.files[path]
	if !ok {
		return FileInfo{}, errors.Errorf("file not tracked: %s", path)
	}
	return *info, nil
}

// ListFiles returns tracked files in the order they were first seen
func (m *Manager) ListFiles() []FileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]FileInfo, 0, len(m.order))
	for _, path := range m.order {
		files = append(files, *m.files[path])
	}
	return files
}

// Counts tallies tracked files. A file that was both updated and renamed
// counts once for each.
func (m *Manager) Counts() Counts {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var c Counts
	for _, fi := range m.files {
		if fi.Copied {
			c.Copied++
		}
		if fi.Scanned {
			c.Scanned++
		}
		if fi.Status == StatusUpdated {
			c.Updated++
		}
		if fi.RenamedTo != "" {
			c.Renamed++
		}
	}
	return c
}
