// Package report renders a textual summary of a scan snapshot.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/lumipallolabs/diskusage/internal/model"
)

// Size formats a byte count the way every report shows it
func Size(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

// Duration formats d as h:mm:ss
func Duration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// Percent returns part as a share of total
func Percent(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Status returns the one-line progress or completion summary
func Status(v model.SnapshotView) string {
	switch {
	case v.Phase == model.PhaseRunning:
		return fmt.Sprintf("Scanning %s: %s seen in %d files, %s elapsed",
			v.Root, Size(v.TotalBytes), v.FilesScanned, Duration(v.Elapsed()))
	case v.Phase == model.PhaseFailed:
		return fmt.Sprintf("Scan of %s failed: %v", v.Root, v.Err)
	case v.Phase.Final():
		return fmt.Sprintf("%s %s at %s (took %s): %s total",
			v.Phase, v.Root, v.CompletedAt.Format("Mon Jan _2 15:04:05 2006"),
			Duration(v.Elapsed()), Size(v.TotalBytes))
	default:
		return "No scan yet"
	}
}

// CategoryTable renders the per-category totals
func CategoryTable(v model.SnapshotView) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Category", "Size", "Share")
	for _, c := range model.Categories {
		n := v.Categories.Get(c)
		t.Row(c.String(), Size(n), fmt.Sprintf("%5.1f%%", Percent(n, v.TotalBytes)))
	}
	return t.String()
}

// Write renders the full summary. At most limit entries of each candidate
// list are listed; limit <= 0 lists them all.
func Write(w io.Writer, v model.SnapshotView, limit int) error {
	var b strings.Builder

	b.WriteString(Status(v))
	b.WriteString("\n")
	if v.CurrentFile != "" {
		fmt.Fprintf(&b, "Current: %s\n", v.CurrentFile)
	}
	if v.SkippedPaths > 0 {
		fmt.Fprintf(&b, "Skipped %d unreadable paths; totals may be under-counted\n", v.SkippedPaths)
	}

	b.WriteString("\n")
	b.WriteString(CategoryTable(v))
	b.WriteString("\n")

	b.WriteString("\nLargest files\n")
	if len(v.Largest) == 0 {
		b.WriteString("  none\n")
	}
	for i, f := range v.Largest {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&b, "  ... %d more\n", len(v.Largest)-limit)
			break
		}
		fmt.Fprintf(&b, "  %10s  %s\n", Size(f.Size), f.Path)
	}

	fmt.Fprintf(&b, "\nReclaimable directories (%s)\n", Size(v.ReclaimableTotal))
	if len(v.Reclaimable) == 0 {
		b.WriteString("  none\n")
	}
	for i, d := range v.Reclaimable {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&b, "  ... %d more\n", len(v.Reclaimable)-limit)
			break
		}
		fmt.Fprintf(&b, "  %10s  %s\n", Size(d.Size), d.Path)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
