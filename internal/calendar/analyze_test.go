package calendar

import (
	"reflect"
	"testing"
)

func TestAnalyze_EmptyTimeline(t *testing.T) {
	analysis := Analyze(nil)
	if analysis.TotalDays != 0 || analysis.SchoolDays != 0 || analysis.Semesters != nil {
		t.Fatalf("empty timeline should yield a zeroed analysis: %+v", analysis)
	}
}

func TestAnalyze_Counts(t *testing.T) {
	timeline := weekdayTimeline(5)
	timeline[2].IsSchoolDay = false
	timeline[2].DayType = DayTypeHoliday

	analysis := Analyze(timeline)
	if analysis.TotalDays != 5 {
		t.Fatalf("total days: got %d", analysis.TotalDays)
	}
	if analysis.SchoolDays != 4 || analysis.NoSchoolDays != 1 {
		t.Fatalf("school/no-school split: %d/%d", analysis.SchoolDays, analysis.NoSchoolDays)
	}
	if analysis.DayTypes["regular"] != 4 || analysis.DayTypes["holiday"] != 1 {
		t.Fatalf("day type histogram: %v", analysis.DayTypes)
	}
	if analysis.Semesters["Fall"] != 5 {
		t.Fatalf("semester histogram: %v", analysis.Semesters)
	}
	if analysis.AcademicYears != 1 {
		t.Fatalf("academic years: got %d", analysis.AcademicYears)
	}
	if !reflect.DeepEqual(analysis.MonthsCovered, []int{9}) {
		t.Fatalf("months covered: %v", analysis.MonthsCovered)
	}
	if analysis.DateRange.Start != "2025-09-01" || analysis.DateRange.End != "2025-09-05" {
		t.Fatalf("date range: %+v", analysis.DateRange)
	}
	if analysis.SchoolDaysPerMonth[9] != 4 {
		t.Fatalf("school days per month: %v", analysis.SchoolDaysPerMonth)
	}
}

func TestAnalyze_AcademicYearBreakdown(t *testing.T) {
	rows := []RawRow{
		{"date": "2025-06-02"}, // 2024-2025, Summer
		{"date": "2025-09-01"}, // 2025-2026, Fall
		{"date": "2025-09-02"},
	}
	timeline, err := Normalize(rows, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	analysis := Analyze(timeline)
	if analysis.AcademicYears != 2 {
		t.Fatalf("expected 2 academic years, got %d", analysis.AcademicYears)
	}
	prior, ok := analysis.YearBreakdown["2024-2025"]
	if !ok {
		t.Fatalf("missing 2024-2025 breakdown: %v", analysis.YearBreakdown)
	}
	if prior.TotalDays != 1 || prior.StartDate != "2025-06-02" || prior.EndDate != "2025-06-02" {
		t.Fatalf("unexpected 2024-2025 breakdown: %+v", prior)
	}
	current := analysis.YearBreakdown["2025-2026"]
	if current.TotalDays != 2 || current.SchoolDays != 2 {
		t.Fatalf("unexpected 2025-2026 breakdown: %+v", current)
	}
	if !reflect.DeepEqual(analysis.MonthsCovered, []int{6, 9}) {
		t.Fatalf("months covered: %v", analysis.MonthsCovered)
	}
}
