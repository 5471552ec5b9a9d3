package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lumipallolabs/diskusage/internal/config"
	"github.com/lumipallolabs/diskusage/internal/deletion"
	"github.com/lumipallolabs/diskusage/internal/logging"
	"github.com/lumipallolabs/diskusage/internal/model"
	"github.com/lumipallolabs/diskusage/internal/scanner"
)

var (
	// ErrScanInProgress is returned when starting a scan while one runs
	ErrScanInProgress = errors.New("a scan is already in progress")
	// ErrNoResults is returned when deleting before any scan completed
	ErrNoResults = errors.New("no completed scan")
)

// Controller runs scans on a background goroutine and hands out the shared
// snapshot. It owns the deletion collaborator for the latest results.
type Controller struct {
	mu sync.RWMutex

	snap     *model.Snapshot
	cancel   context.CancelFunc
	done     chan struct{}
	scanning bool

	deleter *deletion.Deleter
	freed   FreedState

	// newDeleter is replaced in tests to redirect the trash directory
	newDeleter func(candidates []string) *deletion.Deleter
}

// NewController creates an idle controller
func NewController() *Controller {
	return &Controller{
		newDeleter: func(candidates []string) *deletion.Deleter {
			return deletion.New(candidates)
		},
	}
}

// RunScan starts scanning on its own goroutine and immediately returns the
// snapshot the scan publishes into.
func (c *Controller) RunScan(ctx context.Context, s *config.Settings) (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scanning {
		return nil, ErrScanInProgress
	}

	scanCtx, cancel := context.WithCancel(ctx)
	snap := model.NewSnapshot(s.Root())
	done := make(chan struct{})

	c.snap = snap
	c.cancel = cancel
	c.done = done
	c.scanning = true
	c.deleter = nil

	go c.runScan(scanCtx, cancel, scanner.NewEngine(s, snap), done)

	return snap, nil
}

// runScan executes the scan in a goroutine. The scan context is released
// once the engine returns.
func (c *Controller) runScan(ctx context.Context, cancel context.CancelFunc, engine scanner.Scanner, done chan struct{}) {
	defer close(done)
	defer cancel()

	logging.Debug.Printf("[Controller] Starting scan")
	total, err := engine.Run(ctx)
	if err != nil {
		logging.Debug.Printf("[Controller] Scan failed: %v", err)
	} else {
		logging.Debug.Printf("[Controller] Scan finished, %d bytes", total)
	}

	c.mu.Lock()
	c.scanning = false
	c.cancel = nil
	c.mu.Unlock()
}

// Scanning reports whether a scan is running
func (c *Controller) Scanning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scanning
}

// Snapshot returns the snapshot of the latest scan, or nil
func (c *Controller) Snapshot() *model.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// State returns a read-only copy of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := AppState{
		Scanning: c.scanning,
		Freed:    c.freed,
	}
	if c.snap != nil {
		state.Scan = c.snap.View()
	}
	return state
}

// Stop requests cancellation of the running scan and waits for it to end
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.Wait()
}

// Wait blocks until the latest scan has finished
func (c *Controller) Wait() {
	c.mu.RLock()
	done := c.done
	c.mu.RUnlock()

	if done != nil {
		<-done
	}
}

// Delete removes a deletion candidate of the latest finished scan, moving it
// to the trash unless force is set. It returns the bytes freed.
func (c *Controller) Delete(path string, force bool) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap == nil || c.scanning {
		return 0, ErrNoResults
	}
	if c.deleter == nil {
		v := c.snap.View()
		c.deleter = c.newDeleter(model.Paths(v.Largest, v.Reclaimable))
	}

	var (
		freed int64
		err   error
	)
	if force {
		freed, err = c.deleter.ForceDelete(path)
	} else {
		freed, err = c.deleter.Trash(path)
	}
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", path, err)
	}

	c.freed.Session += freed
	c.freed.Items++
	logging.Debug.Printf("[Controller] Deleted %s (%d bytes, force=%v)", path, freed, force)
	return freed, nil
}
