package downloadmgr

import "sync/atomic"

// Progress accumulates byte counts across all concurrently running categories
type Progress struct {
	received    atomic.Int64
	expected    atomic.Int64
	outstanding atomic.Int64
}

// Reset prepares p for a new download pass
func (p *Progress) Reset(expected int64, items int64) {
	p.received.Store(0)
	p.expected.Store(expected)
	p.outstanding.Store(items)
}

// Add records n received bytes and returns the new total
func (p *Progress) Add(n int64) int64 {
	return p.received.Add(n)
}

// AdjustExpected changes the expected total, used when a server reports
// a different size than the manifest
func (p *Progress) AdjustExpected(delta int64) int64 {
	return p.expected.Add(delta)
}

// Received bytes so far
func (p *Progress) Received() int64 { return p.received.Load() }

// Expected bytes in total
func (p *Progress) Expected() int64 { return p.expected.Load() }

// Outstanding is the number of items that have not finished (successfully or not)
func (p *Progress) Outstanding() int64 { return p.outstanding.Load() }

// done marks one item as finished and reports whether it was the last one
func (p *Progress) done() bool {
	return p.outstanding.Add(-1) == 0
}
