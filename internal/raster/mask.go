// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// MaskRenderer stores coverage into an 8-bit mask whose top-left pixel
// is (X, Y) in device space. Rows that receive no spans are left
// untouched, so the mask must start out clear.
type MaskRenderer struct {
	Data   []byte
	Stride int
	X, Y   int
}

// RenderRows writes each run of non-zero coverage into every row of the
// band.
func (m *MaskRenderer) RenderRows(y, height int, spans []Span) error {
	if len(spans) < 2 {
		return nil
	}
	first := (y - m.Y) * m.Stride
	row := m.Data[first : first+m.Stride]
	for i := 0; i < len(spans)-1; i++ {
		a := spans[i].Alpha()
		if a == 0 {
			continue
		}
		x1, x2 := int(spans[i].X)-m.X, int(spans[i+1].X)-m.X
		for x := x1; x < x2; x++ {
			row[x] = a
		}
	}
	for j := 1; j < height; j++ {
		copy(m.Data[first+j*m.Stride:first+(j+1)*m.Stride], row)
	}
	return nil
}
