package crawl

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/aknapek/crawlspace"
)

// Frontier is an in-memory FIFO crawl queue with Bloom filter deduplication.
// FIFO order preserves the engine's breadth-first traversal: children of a
// task always queue behind every task of the same or earlier depth.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.BloomFilter
	queue []crawlspace.Task
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for deduplication. A false positive can only cause an
// unvisited URL to be skipped, never a duplicate fetch.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewWithEstimates(n, fpRate),
	}
}

// Push appends a task to the back of the queue.
// Returns false if the task's URL has already been seen; the URL is marked
// seen at push time so the same URL can never be enqueued twice.
func (f *Frontier) Push(task crawlspace.Task) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.TestString(task.URL) {
		return false
	}
	f.seen.AddString(task.URL)
	f.queue = append(f.queue, task)
	return true
}

// Pop removes and returns the task at the front of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (crawlspace.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return crawlspace.Task{}, false
	}
	task := f.queue[0]
	f.queue = f.queue[1:]
	return task, true
}

// Len returns the number of queued tasks.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at some point.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.TestString(url)
}
