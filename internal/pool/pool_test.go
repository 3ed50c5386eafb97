// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/glitter/internal/status"
)

type cell struct {
	x, area int32
}

func TestChunkSizeRoundsUp(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {200, 256}, {256, 256}, {257, 512},
	}
	for _, tt := range tests {
		if got := New[cell](tt.in).ChunkSize(); got != tt.want {
			t.Errorf("New(%d).ChunkSize() = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAllocAcrossChunks(t *testing.T) {
	p := New[cell](4)
	refs := make([]Ref, 0, 10)
	for i := range 10 {
		r, err := p.Alloc()
		require.NoError(t, err)
		p.Get(r).x = int32(i)
		refs = append(refs, r)
	}
	assert.Equal(t, 10, p.Len())
	assert.Equal(t, 3, p.Chunks())
	for i, r := range refs {
		assert.Equal(t, int32(i), p.Get(r).x, "ref %d", r)
	}
}

func TestAllocReturnsZeroedAfterReset(t *testing.T) {
	p := New[cell](2)
	for range 5 {
		r, err := p.Alloc()
		require.NoError(t, err)
		p.Get(r).area = 99
	}
	p.Reset()
	for range 5 {
		r, err := p.Alloc()
		require.NoError(t, err)
		assert.Zero(t, p.Get(r).area)
	}
}

func TestResetRecyclesChunks(t *testing.T) {
	p := New[cell](8)
	fill := func() {
		for range 40 {
			_, err := p.Alloc()
			require.NoError(t, err)
		}
	}
	fill()
	allocated := p.Allocated()
	require.Equal(t, 5, allocated)

	p.Reset()
	assert.Equal(t, 1, p.Chunks())
	assert.Equal(t, 4, p.FreeChunks())
	assert.Zero(t, p.Len())

	for range 3 {
		fill()
		p.Reset()
	}
	assert.Equal(t, allocated, p.Allocated(), "reused workload must not allocate new chunks")
}

func TestLimit(t *testing.T) {
	p := New[cell](4, WithLimit(3))
	for range 3 {
		_, err := p.Alloc()
		require.NoError(t, err)
	}
	r, err := p.Alloc()
	assert.True(t, errors.Is(err, status.ErrNoMemory))
	assert.Equal(t, Nil, r)

	p.Reset()
	_, err = p.Alloc()
	assert.NoError(t, err, "limit counts live elements only")
}

func TestFini(t *testing.T) {
	p := New[cell](4)
	_, _ = p.Alloc()
	p.Fini()
	assert.Zero(t, p.Chunks())
	r, err := p.Alloc()
	require.NoError(t, err)
	assert.Equal(t, Ref(0), r)
}
