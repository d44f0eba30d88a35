package geometry

import "testing"

func TestRectFromCenter(t *testing.T) {
	r := RectFromCenter(Offset{X: 200, Y: 50}, Size{Width: 150, Height: 100})
	if r.Left != 125 || r.Right != 275 || r.Top != 0 || r.Bottom != 100 {
		t.Errorf("RectFromCenter = %+v", r)
	}
	if got := r.Center(); got != (Offset{X: 200, Y: 50}) {
		t.Errorf("Center() = %v, want {200 50}", got)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := RectFromLTWH(0, 0, 100, 100)
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"inside", RectFromLTWH(10, 10, 10, 10), true},
		{"touching edge", RectFromLTWH(100, 0, 50, 50), false},
		{"disjoint", RectFromLTWH(300, 300, 10, 10), false},
		{"partial", RectFromLTWH(90, 90, 20, 20), true},
	}
	for _, tt := range tests {
		if got := a.Overlaps(tt.other); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestOffsetNearlyEqual(t *testing.T) {
	a := Offset{X: 1, Y: 2}
	if !a.NearlyEqual(Offset{X: 1.00001, Y: 2}) {
		t.Error("expected offsets within tolerance to be equal")
	}
	if a.NearlyEqual(Offset{X: 1.1, Y: 2}) {
		t.Error("expected offsets outside tolerance to differ")
	}
	if got := a.Translate(3, -1); got != (Offset{X: 4, Y: 1}) {
		t.Errorf("Translate = %v, want {4 1}", got)
	}
}
