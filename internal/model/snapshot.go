package model

import (
	"sync"
	"time"
)

// Phase represents the lifecycle state of a scan
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhaseCompleted
	PhaseCancelled
	PhaseFailed
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "Not started"
	case PhaseRunning:
		return "Scanning"
	case PhaseCompleted:
		return "Completed"
	case PhaseCancelled:
		return "Cancelled"
	case PhaseFailed:
		return "Failed"
	default:
		return ""
	}
}

// Final reports whether p is a terminal phase
func (p Phase) Final() bool {
	return p == PhaseCompleted || p == PhaseCancelled || p == PhaseFailed
}

// SnapshotView is a consistent copy of a scan's state. CompletedAt is zero
// while the scan runs; CurrentFile is empty once it has finished.
type SnapshotView struct {
	Root        string
	Phase       Phase
	Err         error
	StartedAt   time.Time
	CompletedAt time.Time
	CurrentFile string

	TotalBytes   int64
	FilesScanned int64
	DirsScanned  int64
	SkippedPaths int64

	Categories       CategoryTotals
	Largest          []LargeFile
	Reclaimable      []DirUsage
	ReclaimableTotal int64
}

// Elapsed returns the scan duration so far, or the total once completed
func (v SnapshotView) Elapsed() time.Duration {
	if v.StartedAt.IsZero() {
		return 0
	}
	if !v.CompletedAt.IsZero() {
		return v.CompletedAt.Sub(v.StartedAt)
	}
	return time.Since(v.StartedAt)
}

// Result is the final summary published when a scan ends
type Result struct {
	Phase            Phase
	Err              error
	Categories       CategoryTotals
	Largest          []LargeFile
	Reclaimable      []DirUsage
	ReclaimableTotal int64
}

// Snapshot is the shared live state of one scan. A single writer (the scan
// engine) mutates it; any number of readers take copies with View. All fields
// sit behind one RWMutex so a reader never sees fields from different points
// of the traversal.
type Snapshot struct {
	mu   sync.RWMutex
	v    SnapshotView
	done chan struct{}
}

// NewSnapshot creates an empty snapshot for a scan of root
func NewSnapshot(root string) *Snapshot {
	return &Snapshot{
		v:    SnapshotView{Root: root},
		done: make(chan struct{}),
	}
}

// View returns a deep copy of the current state
func (s *Snapshot) View() SnapshotView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.v
	v.Largest = append([]LargeFile(nil), s.v.Largest...)
	v.Reclaimable = append([]DirUsage(nil), s.v.Reclaimable...)
	return v
}

// Done is closed once the snapshot has been finalized
func (s *Snapshot) Done() <-chan struct{} {
	return s.done
}

// Begin marks the scan as running
func (s *Snapshot) Begin(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.v.Phase != PhaseNotStarted {
		return
	}
	s.v.Phase = PhaseRunning
	s.v.StartedAt = at
}

// Visit publishes the file the engine is about to read
func (s *Snapshot) Visit(path string) {
	s.mu.Lock()
	s.v.CurrentFile = path
	s.mu.Unlock()
}

// RecordFile publishes a counted file. largest is nil when the largest-files
// list did not change.
func (s *Snapshot) RecordFile(size int64, totals CategoryTotals, largest []LargeFile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.FilesScanned++
	s.v.TotalBytes += size
	s.v.Categories = totals
	if largest != nil {
		s.v.Largest = largest
	}
}

// RecordDir publishes a finished directory and, if it matched the
// reclaimable pattern, its usage.
func (s *Snapshot) RecordDir(reclaimable *DirUsage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.DirsScanned++
	if reclaimable != nil {
		s.v.Reclaimable = append(s.v.Reclaimable, *reclaimable)
		s.v.ReclaimableTotal += reclaimable.Size
	}
}

// RecordSkip counts a path that could not be read
func (s *Snapshot) RecordSkip() {
	s.mu.Lock()
	s.v.SkippedPaths++
	s.mu.Unlock()
}

// Finish publishes the final summary. Only the first call has an effect;
// it reports whether this call finalized the snapshot.
func (s *Snapshot) Finish(r Result, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.v.Phase.Final() {
		return false
	}

	s.v.Phase = r.Phase
	s.v.Err = r.Err
	s.v.Categories = r.Categories
	s.v.Largest = r.Largest
	s.v.Reclaimable = r.Reclaimable
	s.v.ReclaimableTotal = r.ReclaimableTotal
	s.v.CurrentFile = ""
	s.v.CompletedAt = at
	if s.v.StartedAt.IsZero() {
		s.v.StartedAt = at
	}
	close(s.done)
	return true
}
