// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import "testing"

func TestDPI(t *testing.T) {
	tests := []struct {
		zoom float64
		want int
	}{
		{1.0, 72},
		{2.0, 144},
		{3.0, 216},
		{1.5, 108},
		{0.5, 36},
	}
	for _, tt := range tests {
		if got := DPI(tt.zoom); got != tt.want {
			t.Errorf("DPI(%g) = %d, want %d", tt.zoom, got, tt.want)
		}
	}
}
