package model

import "testing"

func TestLineRangeContains(t *testing.T) {
	r := LineRange{Start: 10, End: 15}
	cases := []struct {
		line int
		want bool
	}{
		{9, false},
		{10, true},
		{14, true},
		{15, false},
		{20, false},
	}
	for _, c := range cases {
		if got := r.Contains(c.line); got != c.want {
			t.Errorf("Contains(%d) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestLineRangeEmpty(t *testing.T) {
	if !(LineRange{Start: 5, End: 5}).Empty() {
		t.Error("zero-width range should be empty")
	}
	if (LineRange{Start: 5, End: 6}).Empty() {
		t.Error("one-line range should not be empty")
	}
}

func TestUnionNewRanges(t *testing.T) {
	hunks := []Hunk{
		{NewRange: LineRange{Start: 3, End: 6}},  // 3,4,5
		{NewRange: LineRange{Start: 5, End: 8}},  // 5,6,7 (overlaps)
		{NewRange: LineRange{Start: 20, End: 20}}, // empty
	}
	got := UnionNewRanges(hunks)
	want := []int{3, 4, 5, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestUnionNewRangesEmpty(t *testing.T) {
	if got := UnionNewRanges(nil); got != nil {
		t.Errorf("UnionNewRanges(nil) = %v, want nil", got)
	}
}
