package image

import "sync"

// Pool reuses scratch buffers grouped by size and format.
//
// All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buf
	maxSize int // max buffers per bucket
}

type poolKey struct {
	width  int
	height int
	format Format
}

// NewPool creates a pool retaining at most maxPerBucket buffers of each
// size and format. Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[poolKey][]*Buf),
		maxSize: maxPerBucket,
	}
}

// Get returns a clear buffer with the given dimensions and format.
func (p *Pool) Get(width, height int, format Format) (*Buf, error) {
	key := poolKey{width: width, height: height, format: format}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return buf, nil
	}
	p.mu.Unlock()

	return NewBuf(width, height, format)
}

// Put returns a buffer to the pool. Views, clipped buffers and buffers
// over a full bucket are discarded.
func (p *Pool) Put(buf *Buf) {
	if buf == nil || buf.parent != nil || buf.stride != buf.format.RowBytes(buf.width) {
		return
	}
	if !buf.clear {
		buf.Clear()
	}
	buf.SetClipRegion(nil)

	key := poolKey{width: buf.width, height: buf.height, format: buf.format}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of pooled buffers.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
