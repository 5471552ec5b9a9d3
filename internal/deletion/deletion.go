// Package deletion removes deletion candidates picked from a finished scan,
// either by moving them to the trash or by deleting them outright.
package deletion

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charlievieth/fastwalk"
)

var (
	// ErrNotCandidate is returned for paths that were not offered for deletion
	ErrNotCandidate = errors.New("path is not a deletion candidate")
	// ErrTrashUnsupported is returned when no trash location is known
	ErrTrashUnsupported = errors.New("trash is not supported on this platform")
	// ErrCrossDevice is returned when the item lives on another filesystem
	// than the home trash
	ErrCrossDevice = errors.New("cannot trash across filesystems")
)

// Deleter performs deletions of scan candidates
type Deleter struct {
	mu         sync.Mutex
	candidates map[string]struct{}
	trashDir   string
	now        func() time.Time
	rename     func(oldpath, newpath string) error
}

// Option configures a Deleter
type Option func(*Deleter)

// WithTrashDir overrides the trash location
func WithTrashDir(dir string) Option {
	return func(d *Deleter) { d.trashDir = dir }
}

// New creates a deleter restricted to candidates. A nil slice allows any path.
func New(candidates []string, opts ...Option) *Deleter {
	d := &Deleter{
		trashDir: DefaultTrashDir(),
		now:      time.Now,
		rename:   os.Rename,
	}
	if candidates != nil {
		d.candidates = make(map[string]struct{}, len(candidates))
		for _, p := range candidates {
			d.candidates[filepath.Clean(p)] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultTrashDir returns the user's trash directory, or "" if unknown
func DefaultTrashDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".Trash")
	case "windows":
		return ""
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "Trash")
		}
		return filepath.Join(home, ".local", "share", "Trash")
	}
}

// Trash moves path into the trash and returns its size
func (d *Deleter) Trash(path string) (int64, error) {
	return d.remove(path, d.moveToTrash)
}

// ForceDelete removes path permanently and returns its size
func (d *Deleter) ForceDelete(path string) (int64, error) {
	return d.remove(path, os.RemoveAll)
}

func (d *Deleter) remove(path string, fn func(string) error) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	path = filepath.Clean(path)
	if d.candidates != nil {
		if _, ok := d.candidates[path]; !ok {
			return 0, fmt.Errorf("%w: %s", ErrNotCandidate, path)
		}
	}

	size, err := Measure(path)
	if err != nil {
		return 0, err
	}
	if err := fn(path); err != nil {
		return 0, err
	}

	delete(d.candidates, path)
	return size, nil
}

// moveToTrash follows the freedesktop.org layout: the item goes to
// files/ and a matching .trashinfo is written to info/. On macOS only the
// move is performed.
func (d *Deleter) moveToTrash(path string) error {
	if d.trashDir == "" {
		return ErrTrashUnsupported
	}

	filesDir := filepath.Join(d.trashDir, "files")
	infoDir := filepath.Join(d.trashDir, "info")
	withInfo := runtime.GOOS != "darwin"
	if !withInfo {
		filesDir = d.trashDir
	}
	if err := os.MkdirAll(filesDir, 0700); err != nil {
		return fmt.Errorf("create trash: %w", err)
	}
	if withInfo {
		if err := os.MkdirAll(infoDir, 0700); err != nil {
			return fmt.Errorf("create trash info: %w", err)
		}
	}

	var name string
	if withInfo {
		var err error
		if name, err = d.writeTrashInfo(infoDir, filesDir, path); err != nil {
			return err
		}
	} else {
		name = uniqueName(filesDir, "", filepath.Base(path))
	}

	if err := d.rename(path, filepath.Join(filesDir, name)); err != nil {
		if withInfo {
			_ = os.Remove(filepath.Join(infoDir, name+".trashinfo"))
		}
		if errors.Is(err, syscall.EXDEV) {
			return fmt.Errorf("%w: %s is not on the same filesystem as %s ($topdir/.Trash-$uid is not supported, force delete instead)",
				ErrCrossDevice, path, d.trashDir)
		}
		return fmt.Errorf("move to trash: %w", err)
	}
	return nil
}

// writeTrashInfo reserves a name free in both files/ and info/ by creating
// its .trashinfo exclusively, and returns that name.
func (d *Deleter) writeTrashInfo(infoDir, filesDir, path string) (string, error) {
	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		(&url.URL{Path: path}).EscapedPath(),
		d.now().Format("2006-01-02T15:04:05"))

	for {
		name := uniqueName(filesDir, infoDir, filepath.Base(path))
		f, err := os.OpenFile(filepath.Join(infoDir, name+".trashinfo"), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("write trash info: %w", err)
		}
		_, err = f.WriteString(info)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write trash info: %w", err)
		}
		return name, nil
	}
}

// uniqueName returns base, or base.N, unused in dir and, when infoDir is
// set, without a .trashinfo in infoDir.
func uniqueName(dir, infoDir, base string) string {
	taken := func(name string) bool {
		if _, err := os.Lstat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			return true
		}
		if infoDir == "" {
			return false
		}
		_, err := os.Lstat(filepath.Join(infoDir, name+".trashinfo"))
		return !os.IsNotExist(err)
	}

	name := base
	for i := 2; taken(name); i++ {
		name = base + "." + strconv.Itoa(i)
	}
	return name
}

// Measure returns the bytes of regular files at or beneath path. Symbolic
// links are not followed.
func Measure(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return info.Size(), nil
		}
		return 0, nil
	}

	var size atomic.Int64
	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip entries with errors
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		size.Add(fi.Size())
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("measure %s: %w", path, err)
	}
	return size.Load(), nil
}
