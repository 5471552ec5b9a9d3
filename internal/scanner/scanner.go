// Package scanner walks a directory tree depth-first, feeding the usage
// tracker and publishing progress into a shared snapshot.
package scanner

import (
	"context"
	"errors"
)

var (
	// ErrRootNotDirectory is returned when the scan root cannot be listed
	ErrRootNotDirectory = errors.New("scan root is not a readable directory")
	// ErrAlreadyRun is returned when an engine is run a second time
	ErrAlreadyRun = errors.New("scan engine already run")
)

// Scanner runs a single scan to completion
type Scanner interface {
	// Run walks the tree and returns the bytes counted under the root
	Run(ctx context.Context) (int64, error)
}
