package core

import "github.com/lumipallolabs/diskusage/internal/model"

// FreedState tracks space recovered from deletions this session
type FreedState struct {
	Session int64
	Items   int
}

// AppState holds the complete controller state (read-only view)
type AppState struct {
	Scanning bool
	Scan     model.SnapshotView
	Freed    FreedState
}

// HasScan reports whether a scan has been started
func (s AppState) HasScan() bool {
	return s.Scan.Phase != model.PhaseNotStarted
}
