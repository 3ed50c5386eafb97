package blend

import "testing"

func TestSeparableModes(t *testing.T) {
	src := pixel{255, 128, 0, 255}
	dst := pixel{128, 128, 128, 255}

	tests := []struct {
		op   Operator
		want pixel
	}{
		{OpMultiply, pixel{128, 64, 0, 255}},
		{OpScreen, pixel{255, 192, 128, 255}},
		{OpDarken, pixel{128, 128, 0, 255}},
		{OpLighten, pixel{255, 128, 128, 255}},
		{OpDifference, pixel{127, 0, 128, 255}},
		{OpExclusion, pixel{127, 127, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if got := apply(tt.op, src, dst); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBlendModeIdentity checks the neutral sources of some modes.
func TestBlendModeIdentity(t *testing.T) {
	dst := pixel{40, 90, 200, 255}
	tests := []struct {
		op  Operator
		src pixel
	}{
		{OpMultiply, pixel{255, 255, 255, 255}},
		{OpScreen, pixel{0, 0, 0, 255}},
		{OpDarken, pixel{255, 255, 255, 255}},
		{OpLighten, pixel{0, 0, 0, 255}},
		{OpDifference, pixel{0, 0, 0, 255}},
		{OpExclusion, pixel{0, 0, 0, 255}},
		{OpColorDodge, pixel{0, 0, 0, 255}},
		{OpColorBurn, pixel{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if got := apply(tt.op, tt.src, dst); got != dst {
				t.Errorf("got %v, want %v", got, dst)
			}
		})
	}
}

// TestBlendModesWithTransparency checks that a transparent source or
// destination reduces every blend mode to plain OVER.
func TestBlendModesWithTransparency(t *testing.T) {
	src := pixel{100, 50, 25, 128}
	dst := pixel{30, 60, 90, 200}
	for op := OpMultiply; op < numOperators; op++ {
		if got := apply(op, pixel{}, dst); got != dst {
			t.Errorf("%v with clear source: got %v, want %v", op, got, dst)
		}
		if got := apply(op, src, pixel{}); got != src {
			t.Errorf("%v with clear destination: got %v, want %v", op, got, src)
		}
	}
}

// TestBlendModeAlpha checks the union alpha Sa + Da - Sa*Da.
func TestBlendModeAlpha(t *testing.T) {
	src := pixel{64, 32, 16, 128}
	dst := pixel{60, 30, 10, 128}
	for op := OpMultiply; op < numOperators; op++ {
		if got := apply(op, src, dst)[3]; got != 192 {
			t.Errorf("%v: alpha = %d, want 192", op, got)
		}
	}
}

func TestSoftLight(t *testing.T) {
	// Cs = 0.5 leaves the backdrop unchanged.
	dst := pixel{20, 128, 240, 255}
	if got := apply(OpSoftLight, pixel{128, 128, 128, 255}, dst); !near(got, dst, 1) {
		t.Errorf("got %v, want about %v", got, dst)
	}
}

func near(a, b pixel, tol int) bool {
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < -tol || d > tol {
			return false
		}
	}
	return true
}

func BenchmarkSoftLight(b *testing.B) {
	f := OpSoftLight.Func()
	for b.Loop() {
		f(200, 100, 50, 200, 50, 100, 150, 255)
	}
}
