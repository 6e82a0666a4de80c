package ingestion

import (
	"testing"

	"github.com/edtrack/calendar-backend/internal/calendar"
)

func TestParseDuration_Sequential(t *testing.T) {
	d := ParseDuration("Build a Website (2 of 4)")
	if d.Type != calendar.DurationSequential {
		t.Fatalf("expected sequential, got %s", d.Type)
	}
	if d.Hours != 4 {
		t.Errorf("expected hours 4, got %v", d.Hours)
	}
	if d.SequenceNumber == nil || *d.SequenceNumber != 2 {
		t.Errorf("expected sequence number 2, got %v", d.SequenceNumber)
	}
	if d.TotalSequence == nil || *d.TotalSequence != 4 {
		t.Errorf("expected total sequence 4, got %v", d.TotalSequence)
	}
}

func TestParseDuration_Ladder(t *testing.T) {
	cases := []struct {
		text  string
		typ   calendar.DurationType
		hours float64
	}{
		{"Robotics Project (3 days)", calendar.DurationDays, 3},
		{"Intro Lecture (2 hours)", calendar.DurationHours, 2},
		{"Lab Practice (1 hour)", calendar.DurationHours, 1},
		{"Networking Unit (4 blocks)", calendar.DurationBlocks, 4},
		{"Review Session (2)", calendar.DurationHours, 2},
		{"No duration markers here", calendar.DurationHours, 1},
	}
	for _, tc := range cases {
		d := ParseDuration(tc.text)
		if d.Type != tc.typ {
			t.Errorf("%q: expected type %s, got %s", tc.text, tc.typ, d.Type)
		}
		if d.Hours != tc.hours {
			t.Errorf("%q: expected hours %v, got %v", tc.text, tc.hours, d.Hours)
		}
		if tc.typ != calendar.DurationSequential && d.SequenceNumber != nil {
			t.Errorf("%q: unexpected sequence number", tc.text)
		}
	}
}

func TestParseDuration_SequentialWinsOverBareNumber(t *testing.T) {
	d := ParseDuration("Capstone (1 of 3) review (2)")
	if d.Type != calendar.DurationSequential {
		t.Fatalf("expected sequential to win, got %s", d.Type)
	}
}

func TestExtractDateString(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"School resumes 01/06/2025 after break", "01/06/2025"},
		{"2025-09-01 First day", "2025-09-01"},
		{"Event on 12-25-2024", "12-25-2024"},
		{"Graduation 5 June 2025", "5 June 2025"},
		{"no date in this line", ""},
	}
	for _, tc := range cases {
		if got := ExtractDateString(tc.text); got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.text, tc.want, got)
		}
	}
}

func TestScrapeConfig_IsSchoolDay(t *testing.T) {
	cfg := DefaultScrapeConfig()

	if cfg.IsSchoolDay("", "Regular classes") != true {
		t.Errorf("plain day should be a school day")
	}
	for _, title := range []string{
		"No School - Thanksgiving", "Winter Break", "Labor Day Holiday",
		"Teacher Work Day", "Professional Development", "School Closed",
		"PIR Day", "Snow Day",
	} {
		if cfg.IsSchoolDay("", title) {
			t.Errorf("%q should not be a school day", title)
		}
	}
	if cfg.IsSchoolDay("no-school", "anything") {
		t.Errorf("no-school class name should win")
	}
}

func TestScrapeConfig_DayType(t *testing.T) {
	cfg := DefaultScrapeConfig()

	cases := []struct {
		className, title, want string
	}{
		{"", "Early Release Wednesday", "early_release"},
		{"", "Memorial Day Holiday", "holiday"},
		{"", "Winter Break", "no_school"},
		{"", "Regular instruction", "regular"},
		{"holiday", "", "holiday"},
	}
	for _, tc := range cases {
		if got := cfg.DayType(tc.className, tc.title); got != tc.want {
			t.Errorf("(%q,%q): expected %s, got %s", tc.className, tc.title, tc.want, got)
		}
	}
}

func TestParseScrapeConfig_Overrides(t *testing.T) {
	raw := []byte("lesson_selectors:\n  - .custom-lesson\nno_school_keywords:\n  - closure\n")
	cfg, err := ParseScrapeConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.LessonSelectors) != 1 || cfg.LessonSelectors[0] != ".custom-lesson" {
		t.Errorf("lesson selectors not overridden: %v", cfg.LessonSelectors)
	}
	if len(cfg.NoSchoolKeywords) != 1 || cfg.NoSchoolKeywords[0] != "closure" {
		t.Errorf("keywords not overridden: %v", cfg.NoSchoolKeywords)
	}
	// untouched sections keep defaults
	if len(cfg.EventSelectors) == 0 {
		t.Errorf("event selectors should keep defaults")
	}
	if cfg.UserAgent == "" {
		t.Errorf("user agent should keep default")
	}
}

func TestParseScrapeConfig_BadYAML(t *testing.T) {
	if _, err := ParseScrapeConfig([]byte("lesson_selectors: [unclosed")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
