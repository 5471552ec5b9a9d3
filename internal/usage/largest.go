package usage

import (
	"container/heap"
	"sort"

	"github.com/lumipallolabs/diskusage/internal/model"
)

type rankedFile struct {
	model.LargeFile
	seq int64
}

// worse reports whether a ranks below b: smaller first, then later insertion
func worse(a, b rankedFile) bool {
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return a.seq > b.seq
}

// fileHeap is a min-heap whose root is the lowest ranked file
type fileHeap []rankedFile

func (h fileHeap) Len() int           { return len(h) }
func (h fileHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h fileHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *fileHeap) Push(x any)        { *h = append(*h, x.(rankedFile)) }
func (h *fileHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// topFiles keeps the n largest files at or above a threshold
type topFiles struct {
	capacity  int
	threshold int64
	seq       int64
	heap      fileHeap
}

func newTopFiles(capacity int, threshold int64) *topFiles {
	return &topFiles{
		capacity:  capacity,
		threshold: threshold,
		heap:      make(fileHeap, 0, capacity),
	}
}

// offer considers a file for the list and reports whether the list changed
func (t *topFiles) offer(path string, size int64) bool {
	if size < t.threshold || t.capacity == 0 {
		return false
	}

	t.seq++
	item := rankedFile{LargeFile: model.LargeFile{Path: path, Size: size}, seq: t.seq}

	if t.heap.Len() < t.capacity {
		heap.Push(&t.heap, item)
		return true
	}
	if !worse(t.heap[0], item) {
		return false
	}
	t.heap[0] = item
	heap.Fix(&t.heap, 0)
	return true
}

// sorted returns the files by size descending, earlier insertions first on ties
func (t *topFiles) sorted() []model.LargeFile {
	items := make([]rankedFile, len(t.heap))
	copy(items, t.heap)
	sort.Slice(items, func(i, j int) bool {
		return worse(items[j], items[i])
	})

	files := make([]model.LargeFile, len(items))
	for i, item := range items {
		files[i] = item.LargeFile
	}
	return files
}
