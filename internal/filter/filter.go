// Package filter decides which directory entries the scanner descends into.
package filter

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lumipallolabs/diskusage/internal/config"
)

// Filter applies the hidden, ignore, symlink and bundle rules
type Filter struct {
	settings *config.Settings
	goos     string
}

// New creates a filter for the given settings
func New(s *config.Settings) *Filter {
	return &Filter{settings: s, goos: runtime.GOOS}
}

// IsHidden reports whether the entry's base name starts with a dot
func (f *Filter) IsHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// Allowed applies the hidden policy: hidden entries pass only when the
// settings include them.
func (f *Filter) Allowed(path string) bool {
	return f.settings.Hidden() || !f.IsHidden(path)
}

// ShouldSkip reports whether the entry must not be counted or descended into.
// Symbolic links are never followed. On macOS, .app bundles are opaque.
func (f *Filter) ShouldSkip(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink != 0 {
		return true
	}
	if f.settings.MatchIgnore(path) {
		return true
	}
	if d.IsDir() && f.goos == "darwin" && strings.Contains(d.Name(), ".app") {
		return true
	}
	return false
}
