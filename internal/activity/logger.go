// ABOUTME: Append-only logfmt activity log. Mirrors the SQLite feed into a flat
// ABOUTME: file inside the workspace so history survives database resets.

package activity

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/UmeshaJayakody/taskdep/internal/depgraph"
)

const (
	// LogFileName is the activity log filename inside the workspace directory.
	LogFileName = "activity.log"

	logFileMode = 0o644
	logDirMode  = 0o755
)

// FileLogger appends one logfmt line per event. Write failures are reported
// on the warnings writer and otherwise ignored: a broken log file must not
// block task operations.
type FileLogger struct {
	path     string
	warnings io.Writer
	now      func() time.Time
	mu       sync.Mutex
}

// NewFileLogger builds a logger appending to the given path. A nil warnings
// writer falls back to stderr.
func NewFileLogger(path string, warnings io.Writer) *FileLogger {
	if warnings == nil {
		warnings = os.Stderr
	}
	return &FileLogger{
		path:     path,
		warnings: warnings,
		now:      time.Now,
	}
}

// RecordEvent implements depgraph.ActivitySink.
func (l *FileLogger) RecordEvent(_ context.Context, evt depgraph.Event) {
	if l == nil || l.path == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.appendLine(l.formatEvent(evt)); err != nil {
		fmt.Fprintf(l.warnings, "activity log write failed for %s: %v\n", l.path, err)
	}
}

// formatEvent renders the event as one logfmt line, fixed fields first and
// metadata keys in sorted order so output is reproducible.
func (l *FileLogger) formatEvent(evt depgraph.Event) string {
	now := l.now
	if now == nil {
		now = time.Now
	}

	fields := []string{
		formatField("ts", now().UTC().Format(time.RFC3339)),
		formatField("kind", evt.Kind),
		formatField("actor", evt.Actor),
	}
	if evt.TaskID != "" {
		fields = append(fields, formatField("task", evt.TaskID))
	}
	if evt.ScopeID != "" {
		fields = append(fields, formatField("team", evt.ScopeID))
	}
	fields = append(fields, formatField("msg", evt.Description))

	keys := make([]string, 0, len(evt.Metadata))
	for k := range evt.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if evt.Metadata[k] == "" {
			continue
		}
		fields = append(fields, formatField(k, evt.Metadata[k]))
	}
	return strings.Join(fields, " ")
}

func (l *FileLogger) appendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), logDirMode); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("write log: %w", err)
	}
	return file.Close()
}

// formatField encodes a logfmt key/value pair, quoting when needed.
func formatField(key, value string) string {
	value = strings.ReplaceAll(value, "\n", `\n`)
	value = strings.ReplaceAll(value, "\r", `\r`)
	if needsQuoting(value) {
		value = strings.ReplaceAll(value, `\`, `\\`)
		value = strings.ReplaceAll(value, `"`, `\"`)
		return fmt.Sprintf(`%s="%s"`, key, value)
	}
	return fmt.Sprintf("%s=%s", key, value)
}

func needsQuoting(value string) bool {
	if value == "" {
		return true
	}
	for _, r := range value {
		if r == ' ' || r == '\t' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
