package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/lumipallolabs/diskusage/internal/config"
	"github.com/lumipallolabs/diskusage/internal/filter"
	"github.com/lumipallolabs/diskusage/internal/logging"
	"github.com/lumipallolabs/diskusage/internal/model"
	"github.com/lumipallolabs/diskusage/internal/usage"
)

// Engine performs one single-threaded depth-first scan. Only the snapshot
// is shared with other goroutines.
type Engine struct {
	settings *config.Settings
	filter   *filter.Filter
	tracker  *usage.Tracker
	snap     *model.Snapshot
	now      func() time.Time
	readDir  func(name string) ([]fs.DirEntry, error)

	started atomic.Bool
}

// NewEngine creates an engine that publishes into snap
func NewEngine(s *config.Settings, snap *model.Snapshot) *Engine {
	return &Engine{
		settings: s,
		filter:   filter.New(s),
		tracker:  usage.NewTracker(s),
		snap:     snap,
		now:      time.Now,
		readDir:  os.ReadDir,
	}
}

// Run scans the settings' root. Per-entry I/O errors are logged and skipped;
// an error is returned only when the root itself cannot be listed, in which
// case the snapshot ends as Failed. Cancelling ctx stops the walk at the next
// entry and the snapshot ends as Cancelled.
func (e *Engine) Run(ctx context.Context) (int64, error) {
	if !e.started.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRun
	}

	root := e.settings.Root()
	e.snap.Begin(e.now())
	logging.Scanner.Printf("scan started: %s", root)

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = fmt.Errorf("%w: %s", ErrRootNotDirectory, root)
		} else {
			err = fmt.Errorf("%w: %w", ErrRootNotDirectory, err)
		}
		logging.Scanner.Printf("scan failed: %v", err)
		e.finish(model.PhaseFailed, err)
		return 0, err
	}

	rootReclaimable := e.settings.MatchReclaimable(root)
	total := e.scanDir(ctx, root, rootReclaimable)
	if rootReclaimable {
		e.tracker.RegisterDirUsage(root, total)
	}

	phase := model.PhaseCompleted
	if ctx.Err() != nil {
		phase = model.PhaseCancelled
	}
	e.finish(phase, nil)
	logging.Scanner.Printf("scan %s: %s, %d bytes", phase, root, total)
	return total, nil
}

// scanDir returns the bytes of all counted files beneath dir. inReclaimable
// is set below a directory that already matched the reclaimable pattern, so
// nested matches are not recorded twice.
func (e *Engine) scanDir(ctx context.Context, dir string, inReclaimable bool) int64 {
	entries, err := e.readDir(dir)
	if err != nil {
		logging.Scanner.Printf("skip dir %s: %v", dir, err)
		e.snap.RecordSkip()
		return 0
	}

	var subtotal int64
	for _, d := range entries {
		if ctx.Err() != nil {
			return subtotal
		}

		path := filepath.Join(dir, d.Name())
		if !e.filter.Allowed(path) {
			continue
		}
		if e.filter.ShouldSkip(path, d) {
			logging.Scanner.Printf("skip %s", path)
			continue
		}

		switch {
		case d.IsDir():
			matched := !inReclaimable && e.settings.MatchReclaimable(path)
			size := e.scanDir(ctx, path, inReclaimable || matched)
			subtotal += size

			var reclaimed *model.DirUsage
			if matched && e.tracker.RegisterDirUsage(path, size) {
				reclaimed = &model.DirUsage{Path: path, Size: size}
			}
			e.snap.RecordDir(reclaimed)

		case d.Type().IsRegular():
			subtotal += e.scanFile(path, d)

		default:
			// devices, sockets, pipes
		}
	}
	return subtotal
}

func (e *Engine) scanFile(path string, d fs.DirEntry) int64 {
	e.snap.Visit(path)

	info, err := d.Info()
	if err != nil {
		logging.Scanner.Printf("skip file %s: %v", path, err)
		e.snap.RecordSkip()
		return 0
	}

	size := info.Size()
	_, changed := e.tracker.RegisterFile(path, size)

	var largest []model.LargeFile
	if changed {
		largest = e.tracker.Largest()
	}
	e.snap.RecordFile(size, e.tracker.Totals(), largest)
	return size
}

func (e *Engine) finish(phase model.Phase, err error) {
	reclaimable, reclaimableTotal := e.tracker.Reclaimable()
	e.snap.Finish(model.Result{
		Phase:            phase,
		Err:              err,
		Categories:       e.tracker.Totals(),
		Largest:          e.tracker.Largest(),
		Reclaimable:      reclaimable,
		ReclaimableTotal: reclaimableTotal,
	}, e.now())
}

var _ Scanner = (*Engine)(nil)
