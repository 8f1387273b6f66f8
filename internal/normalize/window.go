package normalize

import "time"

// WindowDays is the length of the trailing survey window.
const WindowDays = 15

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// SurveyWindow returns the 15-day window ending the day before surveyDate:
// [surveyDate - 15d, surveyDate).
func SurveyWindow(surveyDate time.Time) Window {
	day := surveyDate.Truncate(24 * time.Hour)
	return Window{
		Start: day.AddDate(0, 0, -WindowDays),
		End:   day,
	}
}

// Contains reports whether t falls inside the window. The start bound is
// inclusive, the end bound exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// timestampLayouts covers the forms the host's exports use: RFC 3339 with
// and without fractional seconds, and a space-separated variant.
var timestampLayouts = []string{
	time.RFC3339Nano, // parses both fractional and whole seconds
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an absolute timestamp in any accepted form.
// The boolean is false when s is empty or unparseable.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate reformats an absolute timestamp to a long-form calendar date,
// e.g. "January 05, 2024". Only the date part of the input is considered.
// Unparseable or missing input yields the empty string.
func FormatDate(s string) string {
	if len(s) < 10 {
		return ""
	}
	t, err := time.Parse("2006-01-02", s[:10])
	if err != nil {
		return ""
	}
	return t.Format("January 02, 2006")
}
