package common

import "testing"

func TestLerpClamp01(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		t    float64
		want float64
	}{
		{"start", 0.877, 0.015, 0, 0.877},
		{"end", 2, 6, 1, 6},
		{"half", 0, 10, 0.5, 5},
		{"clamped_low", 0, 10, -3, 0},
		{"clamped_high", 0, 10, 7, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Lerp(tc.a, tc.b, Clamp01(tc.t)); got != tc.want {
				t.Fatalf("Lerp(%v, %v, Clamp01(%v)) = %v, want %v", tc.a, tc.b, tc.t, got, tc.want)
			}
		})
	}
}
