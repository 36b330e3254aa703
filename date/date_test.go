package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-10", want: New(2025, time.January, 10)},
		{in: "2025-1-2", want: New(2025, time.January, 2)},
		{in: "not-a-date", wantErr: true},
		{in: "2025-13-01", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected an error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDate_Normalization(t *testing.T) {
	// Overflowing day rolls into the next month.
	got := New(2025, time.January, 32)
	want := New(2025, time.February, 1)
	if got != want {
		t.Errorf("New(2025, January, 32) = %v, want %v", got, want)
	}

	if got := MustParse("2025-02-28").Add(1); got != New(2025, time.March, 1) {
		t.Errorf("Add(1) across month boundary = %v", got)
	}
}

func TestDate_Compare(t *testing.T) {
	a := MustParse("2025-03-01")
	b := MustParse("2025-03-02")

	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is inconsistent for %v and %v", a, b)
	}
	if !b.After(a) {
		t.Errorf("After is inconsistent for %v and %v", a, b)
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare is inconsistent for %v and %v", a, b)
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{From: MustParse("2025-01-01"), To: MustParse("2025-01-31")}

	testCases := []struct {
		day  string
		want bool
	}{
		{"2024-12-31", false},
		{"2025-01-01", true},
		{"2025-01-15", true},
		{"2025-01-31", true},
		{"2025-02-01", false},
	}
	for _, tc := range testCases {
		if got := r.Contains(MustParse(tc.day)); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.day, got, tc.want)
		}
	}

	open := Range{}
	if !open.Contains(MustParse("1900-01-01")) {
		t.Error("open range should contain any date")
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := MustParse("2025-06-30")
	data, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(data) != `"2025-06-30"` {
		t.Errorf("MarshalJSON() = %s", data)
	}
	var back Date
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error = %v", err)
	}
	if back != d {
		t.Errorf("round-trip = %v, want %v", back, d)
	}
}
