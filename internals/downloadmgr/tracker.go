package downloadmgr

import (
	"context"
	"sync"
)

// CompleteFunc runs after an asset of a tracker has been written to disk
type CompleteFunc func(ctx context.Context, a *Asset) error

// Tracker is an ordered download queue. Size always equals the sum of the
// sizes of the queued assets.
type Tracker struct {
	mu    sync.Mutex
	queue []*Asset
	size  int64

	// OnItemComplete is optional
	OnItemComplete CompleteFunc
}

// NewTracker creates a tracker holding the given assets
func NewTracker(queue []*Asset, onComplete CompleteFunc) *Tracker {
	t := &Tracker{OnItemComplete: onComplete}
	for _, a := range queue {
		t.push(a)
	}
	return t
}

// Push appends a to the queue
func (t *Tracker) Push(a *Asset) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.push(a)
}

func (t *Tracker) push(a *Asset) {
	t.queue = append(t.queue, a)
	t.size += a.Size
}

// Pop removes and returns the first queued asset
func (t *Tracker) Pop() (*Asset, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.queue) == 0 {
		return nil, false
	}
	a := t.queue[0]
	t.queue[0] = nil
	t.queue = t.queue[1:]
	t.size -= a.Size
	return a, true
}

// Merge appends all assets of other. other is not modified
func (t *Tracker) Merge(other *Tracker) {
	for _, a := range other.Queue() {
		t.Push(a)
	}
}

// Queue returns a copy of the queued assets
func (t *Tracker) Queue() []*Asset {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*Asset(nil), t.queue...)
}

// Len returns the number of queued assets
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// Size returns the sum of all queued asset sizes
func (t *Tracker) Size() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}
