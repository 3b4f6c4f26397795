package analysis

import (
	"cmp"
	"container/heap"
	"runtime"
	"slices"

	"github.com/KaramelBytes/csvtool/internal/table"
	"golang.org/x/sync/errgroup"
)

type keyedRow struct {
	key float64
	row table.Row
}

func compareKeys(desc bool) func(a, b keyedRow) int {
	if desc {
		return func(a, b keyedRow) int { return cmp.Compare(b.key, a.key) }
	}
	return func(a, b keyedRow) int { return cmp.Compare(a.key, b.key) }
}

// sortRows orders items by key. Inputs of at least minParallel rows are
// split into one chunk per worker, sorted concurrently and k-way merged.
func sortRows(items []keyedRow, desc bool, workers, minParallel int) ([]keyedRow, error) {
	less := compareKeys(desc)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if minParallel <= 0 || len(items) < minParallel || workers < 2 {
		slices.SortFunc(items, less)
		return items, nil
	}

	size := (len(items) + workers - 1) / workers
	var chunks [][]keyedRow
	for lo := 0; lo < len(items); lo += size {
		chunks = append(chunks, items[lo:min(lo+size, len(items))])
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for _, c := range chunks {
		c := c
		g.Go(func() error {
			slices.SortFunc(c, less)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mergeChunks(chunks, less, len(items)), nil
}

type mergeItem struct {
	item   keyedRow
	source int
}

type mergeHeap struct {
	items []mergeItem
	cmp   func(a, b keyedRow) int
}

func (h *mergeHeap) Len() int           { return len(h.items) }
func (h *mergeHeap) Less(i, j int) bool { return h.cmp(h.items[i].item, h.items[j].item) < 0 }
func (h *mergeHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *mergeHeap) Push(x any)         { h.items = append(h.items, x.(mergeItem)) }
func (h *mergeHeap) Pop() any {
	n := len(h.items)
	it := h.items[n-1]
	h.items = h.items[:n-1]
	return it
}

func mergeChunks(chunks [][]keyedRow, less func(a, b keyedRow) int, total int) []keyedRow {
	out := make([]keyedRow, 0, total)
	pos := make([]int, len(chunks))
	h := &mergeHeap{cmp: less}
	for i, c := range chunks {
		if len(c) > 0 {
			h.items = append(h.items, mergeItem{item: c[0], source: i})
			pos[i] = 1
		}
	}
	heap.Init(h)
	for h.Len() > 0 {
		top := heap.Pop(h).(mergeItem)
		out = append(out, top.item)
		src := top.source
		if pos[src] < len(chunks[src]) {
			heap.Push(h, mergeItem{item: chunks[src][pos[src]], source: src})
			pos[src]++
		}
	}
	return out
}
