package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tile := NewRect(680, 640, 40, 40)

	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "player overlapping tile",
			a:        NewRect(660, 600, 40, 80),
			b:        tile,
			expected: true,
		},
		{
			name:     "player standing on tile (touching)",
			a:        NewRect(680, 560, 40, 80),
			b:        tile,
			expected: false,
		},
		{
			name:     "player directly below tile (touching)",
			a:        NewRect(680, 680, 40, 80),
			b:        tile,
			expected: false,
		},
		{
			name:     "player left of tile (touching)",
			a:        NewRect(640, 640, 40, 80),
			b:        tile,
			expected: false,
		},
		{
			name:     "coin inside player",
			a:        NewRect(100, 680, 40, 80),
			b:        NewRect(110, 700, 20, 20),
			expected: true,
		},
		{
			name:     "single pixel overlap",
			a:        NewRect(0, 0, 40, 40),
			b:        NewRect(39, 39, 40, 40),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectOffset(t *testing.T) {
	r := NewRect(100, 726, 40, 80)
	moved := r.Offset(5, -46)

	if moved.X != 105 || moved.Y != 680 {
		t.Errorf("Offset() = (%d, %d), expected (105, 680)", moved.X, moved.Y)
	}
	if moved.W != 40 || moved.H != 80 {
		t.Errorf("Offset() changed size to %dx%d", moved.W, moved.H)
	}
	if r.X != 100 || r.Y != 726 {
		t.Error("Offset() must not modify the receiver")
	}
}

func TestNewRectCentered(t *testing.T) {
	r := NewRectCentered(60, 60, 20, 20)
	if r.X != 50 || r.Y != 50 || r.Right() != 70 || r.Bottom() != 70 {
		t.Errorf("NewRectCentered() = %+v, expected 50,50 20x20", r)
	}
	cx, cy := r.Center()
	if cx != 60 || cy != 60 {
		t.Errorf("Center() = (%d, %d), expected (60, 60)", cx, cy)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectDistanceSq(t *testing.T) {
	a := NewRect(0, 0, 40, 40)
	b := NewRect(30, 40, 40, 40)
	if got := a.DistanceSq(b); got != 30*30+40*40 {
		t.Errorf("DistanceSq() = %d, expected %d", got, 30*30+40*40)
	}
}

func TestFloorCeilDiv(t *testing.T) {
	tests := []struct {
		a, b        int
		floor, ceil int
	}{
		{0, 20, 0, 0},
		{19, 20, 0, 1},
		{20, 20, 1, 1},
		{41, 20, 2, 3},
		{-1, 20, -1, 0},
		{-20, 20, -1, -1},
		{-21, 20, -2, -1},
	}

	for _, tc := range tests {
		if got := FloorDiv(tc.a, tc.b); got != tc.floor {
			t.Errorf("FloorDiv(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.floor)
		}
		if got := CeilDiv(tc.a, tc.b); got != tc.ceil {
			t.Errorf("CeilDiv(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.ceil)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}

	if v := ClampF(1.3, 0, 1); v != 1 {
		t.Errorf("ClampF(1.3, 0, 1) = %f, expected 1", v)
	}
}

func TestAbsMinMax(t *testing.T) {
	if Abs(-51) != 51 || Abs(51) != 51 {
		t.Error("Abs should drop the sign")
	}
	if Min(5, 10) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max returned the wrong operand")
	}
}
