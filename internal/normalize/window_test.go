package normalize

import (
	"testing"
	"time"
)

func TestSurveyWindowBounds(t *testing.T) {
	survey := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	w := SurveyWindow(survey)

	wantStart := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(survey) {
		t.Errorf("End = %v, want %v", w.End, survey)
	}
}

func TestWindowIsHalfOpen(t *testing.T) {
	survey := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	w := SurveyWindow(survey)

	// Exactly surveyDate - 15 days at midnight is included.
	if !w.Contains(w.Start) {
		t.Error("start bound should be inclusive")
	}
	// Exactly surveyDate at midnight is excluded.
	if w.Contains(w.End) {
		t.Error("end bound should be exclusive")
	}
	if !w.Contains(w.End.Add(-time.Second)) {
		t.Error("last second before the end bound should be included")
	}
	if w.Contains(w.Start.Add(-time.Second)) {
		t.Error("instant before the start bound should be excluded")
	}
}

func TestParseTimestampForms(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"2024-01-05T10:00:00Z", true},
		{"2024-01-05T10:00:00.123Z", true},
		{"2024-01-05T10:00:00+02:00", true},
		{"2024-01-05 10:00:00", true},
		{"", false},
		{"yesterday", false},
		{"2024-13-99T00:00:00Z", false},
	}

	for _, tt := range tests {
		_, ok := ParseTimestamp(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-05T10:00:00Z", "January 05, 2024"},
		{"2024-06-30", "June 30, 2024"},
		{"2024-06-30 08:15:00.123 UTC", "June 30, 2024"},
		{"", ""},
		{"garbage", ""},
		{"2024-1-5", ""},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
