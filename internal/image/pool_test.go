package image

import (
	"sync"
	"testing"

	"github.com/gogpu/glitter/internal/color"
)

func TestPoolReuse(t *testing.T) {
	pool := NewPool(4)

	buf, err := pool.Get(8, 8, FormatA8)
	if err != nil {
		t.Fatal(err)
	}
	buf.SetPixel(1, 1, color.Pixel{A: 200})
	buf.SetClipRegion([]Rect{R(0, 0, 1, 1)})
	pool.Put(buf)

	if pool.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", pool.Len())
	}

	again, err := pool.Get(8, 8, FormatA8)
	if err != nil {
		t.Fatal(err)
	}
	if again != buf {
		t.Error("Get did not reuse the pooled buffer")
	}
	if !again.IsClear() || again.PixelAt(1, 1).A != 0 {
		t.Error("reused buffer not cleared")
	}
	if _, ok := again.ClipRegion(); ok {
		t.Error("reused buffer kept its clip region")
	}

	other, _ := pool.Get(8, 8, FormatARGB32)
	if other == buf {
		t.Error("buffers of different formats shared a bucket")
	}
}

func TestPoolLimit(t *testing.T) {
	pool := NewPool(2)
	for range 5 {
		b, _ := NewBuf(4, 4, FormatARGB32)
		pool.Put(b)
	}
	if pool.Len() != 2 {
		t.Errorf("Len() = %d, want 2", pool.Len())
	}
}

func TestPoolRejectsViews(t *testing.T) {
	pool := NewPool(0)
	parent, _ := NewBuf(4, 4, FormatARGB32)
	sub, _ := parent.Sub(R(0, 0, 2, 2))
	pool.Put(sub)
	pool.Put(nil)
	if pool.Len() != 0 {
		t.Errorf("Len() = %d, want 0", pool.Len())
	}
}

func TestPoolConcurrent(t *testing.T) {
	pool := NewPool(16)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				b, err := pool.Get(16, 16, FormatA8)
				if err != nil {
					t.Error(err)
					return
				}
				b.SetPixel(0, 0, color.Pixel{A: 1})
				pool.Put(b)
			}
		}()
	}
	wg.Wait()
}
