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
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 10 // Width for status text
)

// 🎯 FileOperation represents a file operation for logging
type FileOperation struct {
	Path         string // File path
	RenamedTo    string // New path when the file was renamed
	IsUpdated    bool   // Whether the content was rewritten
	IsRenamed    bool   // Whether the file was renamed
	Replacements int    // Number of replacements made
	DryRun       bool   // Whether the change was only planned
}

// 📦 RunOperation describes a propagation run for logging
type RunOperation struct {
	Mode    string // clone / realign / repair
	Root    string // Project root being rewritten
	OldName string // Identifier being replaced
	NewName string // Identifier replacing it
	DryRun  bool   // Whether writes are skipped
}

// 📊 Summary is the final tally of a run
type Summary struct {
	Scanned      int
	Updated      int
	Renamed      int
	Replacements int
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *RunOperation
	operations []FileOperation
}

// 🏭 New creates a new logger. Console lines go to console, structured
// events go to zlog.
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to one that
// discards console output and logs through zerolog.Ctx.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return New(io.Discard, *zerolog.Ctx(ctx))
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	var status string
	switch {
	case op.IsRenamed:
		symbol = '→'
		symbolColor = color.FgMagenta
		status = "renamed"
	case op.IsUpdated:
		symbol = '⟳'
		symbolColor = color.FgBlue
		status = "updated"
	default:
		symbol = '-'
		symbolColor = color.FgYellow
		status = "unchanged"
	}
	if op.DryRun {
		status = "would be " + status
	}

	line := fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, op.Path),
		fmt.Sprintf("%-*s", statusWidth, status))

	switch {
	case op.IsRenamed:
		line += " " + color.New(color.FgCyan).Sprint(op.RenamedTo)
	case op.Replacements > 0:
		line += " " + color.New(color.Faint).Sprintf("(%d replacements)", op.Replacements)
	}
	return line
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("file", op.Path).
		Str("renamed_to", op.RenamedTo).
		Bool("is_updated", op.IsUpdated).
		Bool("is_renamed", op.IsRenamed).
		Bool("dry_run", op.DryRun).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📝 StartRunOperation starts a new propagation run
func (l *Logger) StartRunOperation(ctx context.Context, op RunOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	fmt.Fprintf(l.console, "[%s %s]\n",
		op.Mode,
		color.New(color.FgCyan).Sprint(op.Root))

	fmt.Fprintf(l.console, "%s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprint(op.OldName),
		color.New(color.Faint).Sprint("→"),
		color.New(color.FgYellow).Sprint(op.NewName))

	l.zlog.Info().
		Str("mode", op.Mode).
		Str("root", op.Root).
		Str("old_name", op.OldName).
		Str("new_name", op.NewName).
		Bool("dry_run", op.DryRun).
		Msg("starting run")
}

// 📝 EndRunOperation ends the current run and prints its summary
func (l *Logger) EndRunOperation(ctx context.Context, summary Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.currentOp == nil {
		return
	}

	data := pterm.TableData{
		{"scanned", "updated", "renamed", "replacements"},
		{
			strconv.Itoa(summary.Scanned),
			strconv.Itoa(summary.Updated),
			strconv.Itoa(summary.Renamed),
			strconv.Itoa(summary.Replacements),
		},
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		l.zlog.Debug().Err(err).Msg("rendering summary table")
	} else {
		fmt.Fprintf(l.console, "\n%s\n", table)
	}
	fmt.Fprintf(l.console, "Updated %d file contents.\nRenamed %d files.\n", summary.Updated, summary.Renamed)

	l.zlog.Info().
		Str("mode", l.currentOp.Mode).
		Int("scanned", summary.Scanned).
		Int("updated", summary.Updated).
		Int("renamed", summary.Renamed).
		Int("replacements", summary.Replacements).
		Int("operations", len(l.operations)).
		Msg("run complete")

	l.currentOp = nil
	l.operations = nil
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("projrename")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
