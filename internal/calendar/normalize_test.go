package calendar

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNormalize_SortsAndDerivesFields(t *testing.T) {
	rows := []RawRow{
		{"date": "2025-09-02"},
		{"date": "2025-08-29"},
		{"date": "2025-09-01"},
	}
	timeline, err := Normalize(rows, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 3 {
		t.Fatalf("expected 3 days, got %d", len(timeline))
	}
	for i := 1; i < len(timeline); i++ {
		if !timeline[i-1].Date.Before(timeline[i].Date) {
			t.Fatalf("timeline not sorted ascending at %d", i)
		}
	}
	first := timeline[0]
	if first.Date != time.Date(2025, 8, 29, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected first date: %v", first.Date)
	}
	if first.SchoolID != 7 {
		t.Fatalf("expected school id applied, got %d", first.SchoolID)
	}
	if first.AcademicYear != "2025-2026" || first.Semester != "Fall" {
		t.Fatalf("unexpected derived fields: %q / %q", first.AcademicYear, first.Semester)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rows := []RawRow{
		{"date": "2025-09-01", "day_type": "holiday"},
		{"date": "2025-09-02"},
		{"date": "2025-09-06"},
	}
	a, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("normalizing the same rows twice differed:\n%v\n%v", a, b)
	}
}

func TestNormalize_DateColumnFallbackPriority(t *testing.T) {
	// "Date" outranks "day" in the fallback list even though both exist.
	rows := []RawRow{
		{"Date": "2025-09-01", "day": "2024-01-01"},
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := timeline[0].Date; got != time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC) {
		t.Fatalf("expected Date column to win, got %v", got)
	}
}

func TestNormalize_MissingDateColumn(t *testing.T) {
	rows := []RawRow{{"title": "Labor Day", "kind": "holiday"}}
	_, err := Normalize(rows, 1)
	var mdc *MissingDateColumnError
	if !errors.As(err, &mdc) {
		t.Fatalf("expected MissingDateColumnError, got %v", err)
	}
	msg := err.Error()
	for _, col := range []string{"kind", "title", "calendar_date"} {
		if !strings.Contains(msg, col) {
			t.Fatalf("error message should mention %q: %s", col, msg)
		}
	}
	if !IsInputError(err) {
		t.Fatalf("missing date column should be an input error")
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	_, err := Normalize(nil, 1)
	var nvd *NoValidDatesError
	if !errors.As(err, &nvd) {
		t.Fatalf("expected NoValidDatesError, got %v", err)
	}
}

func TestNormalize_DropsUnparseableRows(t *testing.T) {
	rows := []RawRow{
		{"date": "not a date"},
		{"date": "2025-09-01"},
		{"date": ""},
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 1 {
		t.Fatalf("expected bad rows dropped silently, got %d days", len(timeline))
	}
}

func TestNormalize_AllRowsUnparseable(t *testing.T) {
	rows := []RawRow{{"date": "garbage"}, {"date": "also garbage"}}
	_, err := Normalize(rows, 1)
	var nvd *NoValidDatesError
	if !errors.As(err, &nvd) {
		t.Fatalf("expected NoValidDatesError, got %v", err)
	}
}

func TestNormalize_WeekdayDefaults(t *testing.T) {
	rows := []RawRow{
		{"date": "2025-09-01"}, // Monday
		{"date": "2025-09-06"}, // Saturday
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	monday, saturday := timeline[0], timeline[1]
	if !monday.IsSchoolDay || monday.DayType != DayTypeRegular {
		t.Fatalf("weekday should default to a regular school day: %+v", monday)
	}
	if saturday.IsSchoolDay || saturday.DayType != DayTypeWeekend || !saturday.IsWeekend {
		t.Fatalf("saturday should default to a non-school weekend: %+v", saturday)
	}
}

func TestNormalize_DayTypeImpliesSchoolDay(t *testing.T) {
	rows := []RawRow{
		{"date": "2025-09-01", "day_type": "holiday"},
		{"date": "2025-09-02", "day_type": "early_release"},
		{"date": "2025-09-03", "day_type": "snow_day"},
		{"date": "2025-09-04", "day_type": "holiday", "is_school_day": true},
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline[0].IsSchoolDay {
		t.Fatalf("holiday should imply non-school day")
	}
	if !timeline[1].IsSchoolDay {
		t.Fatalf("early_release should imply school day")
	}
	if timeline[2].IsSchoolDay {
		t.Fatalf("snow_day should imply non-school day")
	}
	if !timeline[3].IsSchoolDay {
		t.Fatalf("explicit is_school_day flag should override day type")
	}
}

func TestNormalize_DuplicateDateLastWins(t *testing.T) {
	rows := []RawRow{
		{"date": "2025-09-01", "day_type": "regular"},
		{"date": "2025-09-02"},
		{"date": "2025-09-01", "day_type": "holiday"},
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 2 {
		t.Fatalf("expected duplicate collapsed, got %d days", len(timeline))
	}
	if timeline[0].DayType != DayTypeHoliday {
		t.Fatalf("expected last occurrence to win, got %s", timeline[0].DayType)
	}
}

func TestNormalize_MixedDateFormats(t *testing.T) {
	rows := []RawRow{
		{"date": "09/02/2025"},
		{"date": "2 September 2025"},
		{"date": time.Date(2025, 9, 2, 14, 30, 0, 0, time.UTC)},
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(timeline) != 1 {
		t.Fatalf("all three spellings are the same date, got %d days", len(timeline))
	}
	if timeline[0].Date.Hour() != 0 {
		t.Fatalf("dates should be truncated to midnight")
	}
}

func TestNormalize_UnknownDayTypeBecomesOther(t *testing.T) {
	rows := []RawRow{{"date": "2025-09-01", "day_type": "PIR-T"}}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if timeline[0].DayType != DayTypeOther {
		t.Fatalf("unknown day type should map to other, got %s", timeline[0].DayType)
	}
}

func TestAcademicYearBoundary(t *testing.T) {
	july := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	august := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	if got := AcademicYear(july); got != "2024-2025" {
		t.Fatalf("july: got %q", got)
	}
	if got := AcademicYear(august); got != "2025-2026" {
		t.Fatalf("august: got %q", got)
	}
	if got := Semester(july); got != "Summer" {
		t.Fatalf("july semester: got %q", got)
	}
	if got := Semester(august); got != "Fall" {
		t.Fatalf("august semester: got %q", got)
	}
}

func TestInspectStructure(t *testing.T) {
	rows := []RawRow{
		{"Date": "2025-09-01", "notes": "first day"},
		{"Date": "2025-09-02", "notes": ""},
	}
	s := InspectStructure(rows)
	if s.Rows != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Rows)
	}
	if !reflect.DeepEqual(s.Columns, []string{"Date", "notes"}) {
		t.Fatalf("unexpected columns: %v", s.Columns)
	}
	if !s.HasDateColumn || len(s.SuggestedDateColumns) != 1 || s.SuggestedDateColumns[0] != "Date" {
		t.Fatalf("expected Date suggested: %+v", s)
	}
}
