package usage

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumipallolabs/diskusage/internal/config"
	"github.com/lumipallolabs/diskusage/internal/model"
)

const mib = 1024 * 1024

func newTracker(t *testing.T, topN int, threshold int64) *Tracker {
	t.Helper()
	raw := config.Default()
	raw.Root = t.TempDir()
	raw.TopN = topN
	raw.LargeThreshold = threshold
	s, err := config.New(raw)
	require.NoError(t, err)

	tr := NewTracker(s)
	tr.classify = func(string) model.Category { return model.Other }
	return tr
}

func TestRegisterFileTotals(t *testing.T) {
	tr := newTracker(t, 10, 50*mib)
	tr.classify = func(path string) model.Category {
		if path == "b.jpg" {
			return model.Images
		}
		return model.Other
	}

	cat, changed := tr.RegisterFile("a.txt", 10*mib)
	assert.Equal(t, model.Other, cat)
	assert.False(t, changed, "below threshold")

	cat, changed = tr.RegisterFile("b.jpg", 60*mib)
	assert.Equal(t, model.Images, cat)
	assert.True(t, changed)

	totals := tr.Totals()
	assert.Equal(t, int64(10*mib), totals.Get(model.Other))
	assert.Equal(t, int64(60*mib), totals.Get(model.Images))
	assert.Equal(t, int64(70*mib), totals.Sum())
	assert.Equal(t, []model.LargeFile{{Path: "b.jpg", Size: 60 * mib}}, tr.Largest())
}

func TestLargestKeepsTopN(t *testing.T) {
	tr := newTracker(t, 3, 100)

	for i, size := range []int64{150, 99, 500, 300, 120, 700, 300} {
		tr.RegisterFile(fmt.Sprintf("f%d", i), size)
	}

	assert.Equal(t, []model.LargeFile{
		{Path: "f5", Size: 700},
		{Path: "f2", Size: 500},
		{Path: "f3", Size: 300},
	}, tr.Largest())
}

func TestLargestTiesKeepInsertionOrder(t *testing.T) {
	tr := newTracker(t, 2, 0)

	tr.RegisterFile("first", 10)
	tr.RegisterFile("second", 10)
	_, changed := tr.RegisterFile("third", 10)

	assert.False(t, changed, "a later tie ranks below existing entries")
	assert.Equal(t, []model.LargeFile{{Path: "first", Size: 10}, {Path: "second", Size: 10}}, tr.Largest())
}

func TestLargestZeroCapacity(t *testing.T) {
	tr := newTracker(t, 0, 0)
	_, changed := tr.RegisterFile("a", 1)
	assert.False(t, changed)
	assert.Empty(t, tr.Largest())
}

// reference is the straightforward append, stable sort and truncate policy
func reference(sizes []int64, topN int, threshold int64) []model.LargeFile {
	var list []model.LargeFile
	for i, size := range sizes {
		if size < threshold {
			continue
		}
		list = append(list, model.LargeFile{Path: fmt.Sprintf("f%d", i), Size: size})
		sort.SliceStable(list, func(a, b int) bool { return list[a].Size > list[b].Size })
		if len(list) > topN {
			list = list[:topN]
		}
	}
	return list
}

func TestLargestMatchesReferencePolicy(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		topN := rng.Intn(8) + 1
		threshold := int64(rng.Intn(50))
		sizes := make([]int64, rng.Intn(200))
		for i := range sizes {
			sizes[i] = int64(rng.Intn(100))
		}

		tr := newTracker(t, topN, threshold)
		for i, size := range sizes {
			tr.RegisterFile(fmt.Sprintf("f%d", i), size)
		}

		got := tr.Largest()
		want := reference(sizes, topN, threshold)
		if len(want) == 0 {
			assert.Empty(t, got)
			continue
		}
		require.Equal(t, want, got, "round %d", round)

		assert.LessOrEqual(t, len(got), topN)
		for i := range got {
			assert.GreaterOrEqual(t, got[i].Size, threshold)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Size, got[i].Size)
			}
		}
	}
}

func TestRegisterDirUsage(t *testing.T) {
	tr := newTracker(t, 10, 0)

	assert.True(t, tr.RegisterDirUsage("/root/app/node_modules", 200*mib))
	assert.False(t, tr.RegisterDirUsage("/root/app/src", 5*mib))
	assert.True(t, tr.RegisterDirUsage("/root/web/node_modules", 1*mib))

	dirs, total := tr.Reclaimable()
	assert.Equal(t, []model.DirUsage{
		{Path: "/root/app/node_modules", Size: 200 * mib},
		{Path: "/root/web/node_modules", Size: 1 * mib},
	}, dirs)
	assert.Equal(t, int64(201*mib), total)

	dirs[0].Path = "mutated"
	again, _ := tr.Reclaimable()
	assert.Equal(t, "/root/app/node_modules", again[0].Path)
}
