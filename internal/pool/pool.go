// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pool provides a chunked bump allocator with O(1) reset.
//
// Elements are addressed by Ref, an index into a sequence of equally
// sized chunks. Allocation bumps a cursor in the current chunk; when the
// chunk is exhausted the next one is taken from the free list of chunks
// recycled by an earlier Reset, or allocated fresh. Reset keeps the first
// chunk in place and moves every other chunk onto the free list, so a
// pool that is reused for similar workloads stops allocating after the
// first run.
//
// A Pool is owned by a single scan converter and is not safe for
// concurrent use.
package pool

import (
	"math/bits"

	"github.com/gogpu/glitter/internal/status"
)

// Ref addresses an element of a Pool.
type Ref int32

// Nil is the invalid reference, returned with allocation errors and used as
// a list terminator by callers.
const Nil Ref = -1

// Option configures a Pool.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit caps the number of live elements between resets. Exceeding
// the cap makes Alloc fail with status.ErrNoMemory. Zero means no cap.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// Pool is a chunked arena of T.
type Pool[T any] struct {
	chunks [][]T
	free   [][]T
	shift  uint
	mask   int32
	used   int // elements used in the last chunk
	limit  int
	count  int
	fresh  int // chunks allocated since creation
}

// New creates a pool whose chunks hold chunkSize elements, rounded up to
// a power of two. The first chunk is allocated eagerly and survives
// Reset, playing the role of an embedded chunk.
func New[T any](chunkSize int, opts ...Option) *Pool[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	shift := uint(bits.Len(uint(chunkSize - 1)))
	p := &Pool[T]{
		shift: shift,
		mask:  int32(1)<<shift - 1,
		limit: o.limit,
	}
	p.chunks = append(p.chunks, make([]T, 1<<shift))
	p.fresh = 1
	return p
}

// ChunkSize returns the number of elements per chunk.
func (p *Pool[T]) ChunkSize() int {
	return 1 << p.shift
}

// Alloc returns a reference to a zeroed element.
func (p *Pool[T]) Alloc() (Ref, error) {
	if p.limit > 0 && p.count >= p.limit {
		return Nil, status.ErrNoMemory
	}
	size := 1 << p.shift
	if len(p.chunks) == 0 || p.used == size {
		p.newChunk()
	}
	idx := len(p.chunks) - 1
	ref := Ref(idx<<p.shift | p.used)
	var zero T
	p.chunks[idx][p.used] = zero
	p.used++
	p.count++
	return ref, nil
}

func (p *Pool[T]) newChunk() {
	var c []T
	if n := len(p.free); n > 0 {
		c = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		c = make([]T, 1<<p.shift)
		p.fresh++
	}
	p.chunks = append(p.chunks, c)
	p.used = 0
}

// Get returns the element addressed by r. The pointer is valid until the
// next Reset.
func (p *Pool[T]) Get(r Ref) *T {
	return &p.chunks[int32(r)>>p.shift][int32(r)&p.mask]
}

// Len returns the number of elements allocated since the last Reset.
func (p *Pool[T]) Len() int {
	return p.count
}

// Chunks returns the number of chunks currently in use.
func (p *Pool[T]) Chunks() int {
	return len(p.chunks)
}

// FreeChunks returns the number of recycled chunks waiting for reuse.
func (p *Pool[T]) FreeChunks() int {
	return len(p.free)
}

// Allocated returns how many chunks the pool has ever allocated.
func (p *Pool[T]) Allocated() int {
	return p.fresh
}

// Reset invalidates every Ref and recycles all chunks but the first.
func (p *Pool[T]) Reset() {
	for i := len(p.chunks) - 1; i >= 1; i-- {
		p.free = append(p.free, p.chunks[i])
		p.chunks[i] = nil
	}
	if len(p.chunks) > 0 {
		p.chunks = p.chunks[:1]
	}
	p.used = 0
	p.count = 0
}

// Fini releases every chunk. A later Alloc starts over with a fresh
// chunk.
func (p *Pool[T]) Fini() {
	p.chunks = nil
	p.free = nil
	p.used = 0
	p.count = 0
}
