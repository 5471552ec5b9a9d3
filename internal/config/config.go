package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Defaults
const (
	DefaultRoot           = "/"
	DefaultReclaimable    = "**/node_modules"
	DefaultTopN           = 100
	DefaultLargeThreshold = 50 * 1024 * 1024 // 50 MiB
)

var (
	// ErrInvalidPattern is returned for a malformed ignore or reclaimable glob
	ErrInvalidPattern = errors.New("invalid glob pattern")
	// ErrInvalidSettings is returned for out of range settings
	ErrInvalidSettings = errors.New("invalid settings")
)

// Raw holds unvalidated scan settings as read from flags or a config file
type Raw struct {
	Root           string `json:"root"`
	Ignore         string `json:"ignore"`
	Reclaimable    string `json:"reclaimable"`
	Hidden         bool   `json:"hidden"`
	TopN           int    `json:"top_n"`
	LargeThreshold int64  `json:"large_threshold"`
}

// Default returns the default raw settings
func Default() Raw {
	return Raw{
		Root:           DefaultRoot,
		Reclaimable:    DefaultReclaimable,
		TopN:           DefaultTopN,
		LargeThreshold: DefaultLargeThreshold,
	}
}

// Load reads a JSON config file. Fields present in the file override base.
func Load(path string, base Raw) (Raw, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Raw{}, fmt.Errorf("read config %s: %w", path, err)
	}
	raw := base
	if err := json.Unmarshal(content, &raw); err != nil {
		return Raw{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return raw, nil
}

// DefaultPaths returns the config file locations checked when none is given
func DefaultPaths() []string {
	paths := []string{}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "diskusage", "config.json"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "diskusage", "config.json"))
	}
	return paths
}

// Resolve returns the config file to load: explicit if set, otherwise the
// first existing default path. ok is false when there is nothing to load.
func Resolve(explicit string) (path string, ok bool) {
	if explicit != "" {
		return explicit, true
	}
	for _, candidate := range DefaultPaths() {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Settings is the validated, immutable configuration of one scan
type Settings struct {
	root           string
	ignore         string
	reclaimable    string
	hidden         bool
	topN           int
	largeThreshold int64
}

// New validates raw and returns immutable settings. Malformed globs are
// rejected here so a scan never starts with them.
func New(raw Raw) (*Settings, error) {
	if strings.TrimSpace(raw.Root) == "" {
		return nil, fmt.Errorf("%w: root directory is empty", ErrInvalidSettings)
	}
	if raw.TopN < 0 {
		return nil, fmt.Errorf("%w: top-n must be >= 0, got %d", ErrInvalidSettings, raw.TopN)
	}
	if raw.LargeThreshold < 0 {
		return nil, fmt.Errorf("%w: large threshold must be >= 0, got %d", ErrInvalidSettings, raw.LargeThreshold)
	}

	ignore := filepath.ToSlash(raw.Ignore)
	if ignore != "" && !doublestar.ValidatePattern(ignore) {
		return nil, fmt.Errorf("%w: ignore %q", ErrInvalidPattern, raw.Ignore)
	}
	reclaimable := filepath.ToSlash(raw.Reclaimable)
	if reclaimable != "" && !doublestar.ValidatePattern(reclaimable) {
		return nil, fmt.Errorf("%w: reclaimable %q", ErrInvalidPattern, raw.Reclaimable)
	}

	root, err := filepath.Abs(raw.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", raw.Root, err)
	}

	return &Settings{
		root:           root,
		ignore:         ignore,
		reclaimable:    reclaimable,
		hidden:         raw.Hidden,
		topN:           raw.TopN,
		largeThreshold: raw.LargeThreshold,
	}, nil
}

// Root returns the absolute scan root
func (s *Settings) Root() string { return s.root }

// Hidden reports whether hidden entries are included
func (s *Settings) Hidden() bool { return s.hidden }

// TopN returns the capacity of the largest-files list
func (s *Settings) TopN() int { return s.topN }

// LargeThreshold returns the minimum size for the largest-files list
func (s *Settings) LargeThreshold() int64 { return s.largeThreshold }

// IgnorePattern returns the ignore glob, empty when nothing is ignored
func (s *Settings) IgnorePattern() string { return s.ignore }

// ReclaimablePattern returns the reclaimable-directory glob
func (s *Settings) ReclaimablePattern() string { return s.reclaimable }

// MatchIgnore reports whether the absolute path matches the ignore glob
func (s *Settings) MatchIgnore(path string) bool {
	return matchPath(s.ignore, path)
}

// MatchReclaimable reports whether a directory matches the reclaimable glob,
// either by its full path or by its base name.
func (s *Settings) MatchReclaimable(path string) bool {
	if s.reclaimable == "" {
		return false
	}
	if matchPath(s.reclaimable, path) {
		return true
	}
	ok, _ := doublestar.Match(s.reclaimable, filepath.Base(path))
	return ok
}

func matchPath(pattern, path string) bool {
	if pattern == "" {
		return false
	}
	p := filepath.ToSlash(path)
	if ok, _ := doublestar.Match(pattern, p); ok {
		return true
	}
	// Relative patterns such as "**/cache" should also match absolute paths
	if trimmed := strings.TrimPrefix(p, "/"); trimmed != p {
		ok, _ := doublestar.Match(pattern, trimmed)
		return ok
	}
	return false
}
