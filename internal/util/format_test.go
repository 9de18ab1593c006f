// ABOUTME: Tests for the fixed numeric formatting helpers
// ABOUTME: Formatting must be deterministic for reproducible embedding text
package util

import "testing"

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{100, "$100.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(23.456); got != "23.46%" {
		t.Errorf("Percent(23.456) = %q, want %q", got, "23.46%")
	}
	if got := Percent(100); got != "100.00%" {
		t.Errorf("Percent(100) = %q, want %q", got, "100.00%")
	}
}

func TestScore(t *testing.T) {
	if got := Score(0.5); got != "0.500" {
		t.Errorf("Score(0.5) = %q, want %q", got, "0.500")
	}
	if got := Score(1); got != "1.000" {
		t.Errorf("Score(1) = %q, want %q", got, "1.000")
	}
}
