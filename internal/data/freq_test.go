// ABOUTME: Tests for the insertion-ordered frequency counter
// ABOUTME: Tie-breaking must be deterministic across runs
package data

import "testing"

func TestFreqCounter_Most(t *testing.T) {
	f := newFreqCounter()
	f.Add("a")
	f.Add("b")
	f.Add("b")
	if got := f.Most(); got != "b" {
		t.Errorf("Most() = %q, want b", got)
	}
}

func TestFreqCounter_MostTieBreaksFirstSeen(t *testing.T) {
	f := newFreqCounter()
	f.Add("late")
	f.Add("early")
	f.Add("early")
	f.Add("late")
	// Both at 2; "late" was seen first.
	if got := f.Most(); got != "late" {
		t.Errorf("Most() = %q, want late", got)
	}
}

func TestFreqCounter_MostEmpty(t *testing.T) {
	f := newFreqCounter()
	if got := f.Most(); got != "" {
		t.Errorf("Most() on empty counter = %q, want empty", got)
	}
}

func TestFreqCounter_Top(t *testing.T) {
	f := newFreqCounter()
	for i := 0; i < 3; i++ {
		f.Add("Classic Cars")
	}
	for i := 0; i < 3; i++ {
		f.Add("Motorcycles")
	}
	f.Add("Planes")

	top := f.Top(2)
	if len(top) != 2 {
		t.Fatalf("Top(2) returned %d entries", len(top))
	}
	if top[0].Line != "Classic Cars" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want Classic Cars/3", top[0])
	}
	if top[1].Line != "Motorcycles" {
		t.Errorf("top[1] = %+v, want Motorcycles (first-seen tie-break)", top[1])
	}
}

func TestFreqCounter_CountsIsCopy(t *testing.T) {
	f := newFreqCounter()
	f.Add("x")
	counts := f.Counts()
	counts["x"] = 99
	if f.counts["x"] != 1 {
		t.Error("Counts() should return a copy, not the internal map")
	}
}
