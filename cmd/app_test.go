package cmd

import (
	"testing"
)

func TestParseWeights(t *testing.T) {
	testCases := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"", nil, false},
		{"0.6,0.4", []float64{0.6, 0.4}, false},
		{" 0.5 , 0.5 ", []float64{0.5, 0.5}, false},
		{"1", []float64{1}, false},
		{"0.6,oops", nil, true},
		{",", nil, true},
	}
	for _, tc := range testCases {
		got, err := parseWeights(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseWeights(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("parseWeights(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("parseWeights(%q)[%d] = %v, want %v", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestParseWindow(t *testing.T) {
	testCases := []struct {
		name       string
		start, end string
		wantErr    bool
	}{
		{"both open", "", "", false},
		{"start only", "2025-01-02", "", false},
		{"end only", "", "2025-01-02", false},
		{"closed", "2025-01-02", "2025-06-30", false},
		{"inverted", "2025-06-30", "2025-01-02", true},
		{"bad start", "01/02/2025", "", true},
		{"bad end", "", "not-a-date", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			window, err := parseWindow(tc.start, tc.end)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseWindow(%q, %q) error = %v, wantErr %v", tc.start, tc.end, err, tc.wantErr)
			}
			if err == nil && tc.start == "" && tc.end == "" && !window.IsOpen() {
				t.Errorf("parseWindow(empty) = %s, want an open range", window)
			}
		})
	}
}
