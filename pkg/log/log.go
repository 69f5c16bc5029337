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
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	rowIndent  = 4  // spaces to indent table rows
	nameWidth  = 30 // Base width for SOP name
	descWidth  = 60 // Max width for descriptions before truncation
	identWidth = 40 // Width for source identity strings
)

// 📊 SourceOperation represents one source's contribution for display
type SourceOperation struct {
	Identity   string // Source identity string
	Count      int    // SOPs loaded from this source
	Duplicates int    // SOPs dropped as duplicates
	Failed     bool   // Whether the source failed to load
}

// 📄 SOPRow is one row of the merged-SOP table
type SOPRow struct {
	Name        string
	Description string
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatSourceOperation formats a source load summary for display
func (l *Logger) formatSourceOperation(op SourceOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.Failed:
		symbol = '✗'
		symbolColor = color.FgRed
	case op.Count == 0:
		symbol = '-'
		symbolColor = color.FgYellow
	default:
		symbol = '✓'
		symbolColor = color.FgGreen
	}

	detail := fmt.Sprintf("%d sops", op.Count)
	if op.Duplicates > 0 {
		detail += fmt.Sprintf(" (%d duplicates dropped)", op.Duplicates)
	}
	if op.Failed {
		detail = "failed"
	}

	return fmt.Sprintf("%s%s %s %s",
		fmt.Sprintf("%*s", rowIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", identWidth, op.Identity),
		color.New(color.Faint).Sprint(detail))
}

// 📝 LogSourceOperation logs one source's load summary
func (l *Logger) LogSourceOperation(ctx context.Context, op SourceOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatSourceOperation(op))

	l.zlog.Info().
		Str("source", op.Identity).
		Int("count", op.Count).
		Int("duplicates", op.Duplicates).
		Bool("failed", op.Failed).
		Msg("source load")
}

// 📝 LogSOPRow logs one row of the merged-SOP table
func (l *Logger) LogSOPRow(ctx context.Context, row SOPRow) {
	l.mu.Lock()
	defer l.mu.Unlock()

	desc := row.Description
	if runes := []rune(desc); len(runes) > descWidth {
		desc = string(runes[:descWidth-3]) + "..."
	}

	fmt.Fprintf(l.console, "%s%s %s\n",
		fmt.Sprintf("%*s", rowIndent, ""),
		color.New(color.FgCyan).Sprint(fmt.Sprintf("%-*s", nameWidth, row.Name)),
		desc)

	l.zlog.Info().
		Str("sop", row.Name).
		Str("description", row.Description).
		Msg("sop")
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
	soprcText := color.New(color.Bold, color.FgCyan).Sprint("soprc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", soprcText, color.New(color.Faint).Sprint("• "+msg))
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
