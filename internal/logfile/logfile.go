// Package logfile reads and appends the plain-text key event log files.
package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nixlim/keyrec/internal/keylog"
)

// HeaderPrefix starts the first line of every saved block.
const HeaderPrefix = "# Key event log saved: "

// ErrCancelled reports that the user gave no path.
var ErrCancelled = errors.New("cancelled")

// ErrNotText is returned by ReadText for content that is not UTF-8.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// AppendBlock appends one save block for records to the file at path,
// creating it if needed. Existing content is never truncated.
func AppendBlock(path string, records []keylog.Record, savedAt time.Time) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	w.WriteString(HeaderPrefix + keylog.FormatTimestamp(savedAt) + "\n")
	for _, r := range records {
		w.WriteString(r.TSVLine() + "\n")
	}
	w.WriteString("\n")

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ReadText returns the full content of path. Content is shown verbatim, so
// only UTF-8 text is accepted.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("reading %s: %w", path, ErrNotText)
	}
	return string(data), nil
}

// ResolveSavePath turns user input from the save prompt into a path.
// Blank input means the prompt was cancelled. Relative paths are placed in
// dir when dir is set, and a path without an extension gets defaultExt.
func ResolveSavePath(input, dir, defaultExt string) (string, error) {
	p := strings.TrimSpace(input)
	if p == "" {
		return "", ErrCancelled
	}
	p = expandTilde(p)
	if dir != "" && !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	if filepath.Ext(p) == "" && defaultExt != "" {
		p += defaultExt
	}
	return p, nil
}

// ResolveOpenPath turns user input from the open prompt into a path.
func ResolveOpenPath(input string) (string, error) {
	p := strings.TrimSpace(input)
	if p == "" {
		return "", ErrCancelled
	}
	return expandTilde(p), nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
