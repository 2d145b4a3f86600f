package preprocess

import (
	"reflect"
	"testing"
)

func TestIsPDF(t *testing.T) {
	if !IsPDF([]byte("%PDF-1.7\n...")) {
		t.Error("expected PDF magic to be detected")
	}
	if IsPDF([]byte{0xFF, 0xD8, 0xFF}) {
		t.Error("jpeg bytes misdetected as PDF")
	}
}

func TestParsePageSelection(t *testing.T) {
	cases := []struct {
		in    string
		total int
		want  []int
	}{
		{"all", 3, []int{1, 2, 3}},
		{"", 2, []int{1, 2}},
		{"firstPage", 5, []int{1}},
		{"lastPage", 5, []int{5}},
		{"3", 5, []int{3}},
		{"1,3,5", 5, []int{1, 3, 5}},
		{"2-4", 5, []int{2, 3, 4}},
		{"2-10", 4, []int{2, 3, 4}}, // range clamped to page count
		{"1,7", 3, []int{1}},        // out-of-bounds indices dropped
	}
	for _, tc := range cases {
		sel, err := ParsePageSelection(tc.in)
		if err != nil {
			t.Errorf("ParsePageSelection(%q): %v", tc.in, err)
			continue
		}
		got := sel.Pages(tc.total)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParsePageSelection(%q).Pages(%d) = %v, want %v", tc.in, tc.total, got, tc.want)
		}
	}
}

func TestParsePageSelection_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "0", "-1", "4-2", "1,x"} {
		if _, err := ParsePageSelection(in); err == nil {
			t.Errorf("ParsePageSelection(%q) should fail", in)
		}
	}
}

func TestPages_EmptyDocument(t *testing.T) {
	if got := AllPages().Pages(0); got != nil {
		t.Errorf("zero pages should expand to nothing, got %v", got)
	}
}
