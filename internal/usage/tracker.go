// Package usage aggregates per-category totals, the largest files and
// reclaimable directories of a scan.
package usage

import (
	"github.com/lumipallolabs/diskusage/internal/classify"
	"github.com/lumipallolabs/diskusage/internal/config"
	"github.com/lumipallolabs/diskusage/internal/model"
)

// Tracker is owned by a single scan goroutine and is not safe for
// concurrent use.
type Tracker struct {
	settings *config.Settings
	classify func(string) model.Category

	totals           model.CategoryTotals
	largest          *topFiles
	reclaimable      []model.DirUsage
	reclaimableTotal int64
}

// NewTracker creates an empty tracker
func NewTracker(s *config.Settings) *Tracker {
	return &Tracker{
		settings: s,
		classify: classify.Classify,
		largest:  newTopFiles(s.TopN(), s.LargeThreshold()),
	}
}

// RegisterFile attributes size to the file's category and offers it to the
// largest-files list. changed reports whether that list was modified.
func (t *Tracker) RegisterFile(path string, size int64) (category model.Category, changed bool) {
	category = t.classify(path)
	t.totals.Add(category, size)
	changed = t.largest.offer(path, size)
	return category, changed
}

// RegisterDirUsage records dir as reclaimable if it matches the pattern
func (t *Tracker) RegisterDirUsage(dir string, bytes int64) bool {
	if !t.settings.MatchReclaimable(dir) {
		return false
	}
	t.reclaimable = append(t.reclaimable, model.DirUsage{Path: dir, Size: bytes})
	t.reclaimableTotal += bytes
	return true
}

// Largest returns a copy of the largest-files list
func (t *Tracker) Largest() []model.LargeFile {
	return t.largest.sorted()
}

// Totals returns the per-category byte totals
func (t *Tracker) Totals() model.CategoryTotals {
	return t.totals
}

// Reclaimable returns a copy of the reclaimable directories and their total
func (t *Tracker) Reclaimable() ([]model.DirUsage, int64) {
	dirs := make([]model.DirUsage, len(t.reclaimable))
	copy(dirs, t.reclaimable)
	return dirs, t.reclaimableTotal
}
