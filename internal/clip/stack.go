package clip

import (
	"github.com/gogpu/glitter/internal/fixed"
	"github.com/gogpu/glitter/internal/image"
)

// Stack manages nested clips with push and pop. Each push intersects
// the current clip; each pop restores the clip in effect before the
// matching push.
type Stack struct {
	saved   []*Clip
	current *Clip
}

// NewStack creates a stack whose base clip is bounds, typically the
// surface rectangle.
func NewStack(bounds image.Rect) *Stack {
	return &Stack{
		saved:   make([]*Clip, 0, 8),
		current: FromRect(bounds),
	}
}

// Push intersects the current clip with a pixel rectangle.
func (s *Stack) Push(r image.Rect) {
	s.push(s.current.IntersectRect(r))
}

// PushBox intersects the current clip with a fractional box.
func (s *Stack) PushBox(b fixed.Box) {
	s.push(s.current.IntersectBox(b))
}

// PushPath intersects the current clip with a path.
func (s *Stack) PushPath(p Path) {
	s.push(s.current.IntersectPath(p))
}

func (s *Stack) push(c *Clip) {
	s.saved = append(s.saved, s.current)
	s.current = c
}

// Pop restores the previous clip. It reports false when the stack is
// already at its base.
func (s *Stack) Pop() bool {
	n := len(s.saved)
	if n == 0 {
		return false
	}
	s.current = s.saved[n-1]
	s.saved[n-1] = nil
	s.saved = s.saved[:n-1]
	return true
}

// Current returns the clip in effect.
func (s *Stack) Current() *Clip {
	return s.current
}

// Bounds returns the integer extents of the current clip.
func (s *Stack) Bounds() image.Rect {
	r, _ := s.current.Extents()
	return r
}

// Depth returns the number of pushes not yet popped.
func (s *Stack) Depth() int {
	return len(s.saved)
}

// Reset drops every push and starts over from bounds.
func (s *Stack) Reset(bounds image.Rect) {
	clear(s.saved)
	s.saved = s.saved[:0]
	s.current = FromRect(bounds)
}
