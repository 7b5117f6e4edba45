// Package toolsutil holds helpers shared by the built-in tools.
package toolsutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Package-level logger for tools. Defaults to discard so library use stays
// quiet; the CLI wires its own.
var logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
	Level: slog.LevelError,
}))

// SetLogger allows setting a custom logger for the tools package
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// GetLogger returns the package logger
func GetLogger() *slog.Logger {
	return logger
}

var (
	ErrUnsafePath    = errors.New("unsafe path")
	ErrFileTooLarge  = errors.New("file too large")
	ErrNotTextFile   = errors.New("not a text file")
	ErrInvalidParams = errors.New("invalid parameters")
)

// IsPathSafe rejects paths that reach outside the working tree or point at
// system locations a tool has no business touching.
func IsPathSafe(path string) bool {
	if path == "" {
		return false
	}

	cleanPath := filepath.Clean(path)

	dangerousPaths := []string{
		"/etc",
		"/sys",
		"/proc",
		"/dev",
		"/boot",
		"/usr/bin",
		"/usr/sbin",
		"/usr/lib",
		"/usr/lib64",
	}
	for _, dangerous := range dangerousPaths {
		if cleanPath == dangerous || strings.HasPrefix(cleanPath, dangerous+"/") {
			return false
		}
	}

	if strings.Contains(cleanPath, "../") || strings.Contains(cleanPath, "..\\") {
		return false
	}

	if strings.Contains(cleanPath, "\x00") {
		return false
	}

	return true
}

// ValidateFileSize checks if the file size is within the read limit.
func ValidateFileSize(size int64) error {
	const maxFileSize = 10 * 1024 * 1024 // 10MB
	if size > maxFileSize {
		return fmt.Errorf("%w: file size %s exceeds maximum %s", ErrFileTooLarge, FormatBytes(size), FormatBytes(maxFileSize))
	}
	return nil
}

// IsTextFile checks if content appears to be text.
func IsTextFile(content []byte) bool {
	if len(content) == 0 {
		return true
	}

	// Binary files almost always carry null bytes early.
	for i := 0; i < len(content) && i < 8192; i++ {
		if content[i] == 0 {
			return false
		}
	}

	if !utf8.Valid(content) {
		return false
	}

	sampleSize := len(content)
	if sampleSize > 8192 {
		sampleSize = 8192
	}

	printable := 0
	for _, b := range content[:sampleSize] {
		if b >= 32 && b <= 126 || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}

	return float64(printable)/float64(sampleSize) > 0.70
}

// FormatBytes formats byte count as a human-readable string.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
