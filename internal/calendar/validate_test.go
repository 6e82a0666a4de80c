package calendar

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_EmptyInputsAreValid(t *testing.T) {
	result := Validate(nil, weekdayTimeline(3))
	if !result.Valid || len(result.Errors) != 0 || len(result.Warnings) != 0 {
		t.Fatalf("empty schedule should be valid: %+v", result)
	}
	result = Validate([]Scheduled{{Segment: Segment{LessonNumber: 1}}}, nil)
	if !result.Valid {
		t.Fatalf("empty timeline should be valid: %+v", result)
	}
}

func TestValidate_NonSchoolDayPlacementIsError(t *testing.T) {
	timeline := weekdayTimeline(3)
	timeline[1].IsSchoolDay = false
	timeline[1].DayType = DayTypeHoliday

	scheduled := []Scheduled{
		{Segment: Segment{LessonNumber: 1}, DatePlanned: timeline[1].Date},
	}
	result := Validate(scheduled, timeline)
	if result.Valid {
		t.Fatalf("placement on a holiday should invalidate the schedule")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0], timeline[1].Date.Format("2006-01-02")) {
		t.Fatalf("error should name the conflicting date: %s", result.Errors[0])
	}
}

func TestValidate_WeekendPlacementIsWarning(t *testing.T) {
	timeline := weekdayTimeline(3)
	saturday := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	timeline = append(timeline, Day{Date: saturday, IsSchoolDay: true, DayType: DayTypeRegular})

	scheduled := []Scheduled{
		{Segment: Segment{LessonNumber: 1}, DatePlanned: saturday},
	}
	result := Validate(scheduled, timeline)
	if !result.Valid {
		t.Fatalf("weekend placement alone is advisory: %+v", result)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "weekends") {
		t.Fatalf("expected weekend warning: %v", result.Warnings)
	}
}

func TestValidate_WeekendAndNonSchoolDoubleReport(t *testing.T) {
	// A Saturday marked non-school trips both the error and the warning;
	// they test different properties.
	saturday := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	timeline := []Day{{Date: saturday, IsSchoolDay: false, DayType: DayTypeWeekend}}
	scheduled := []Scheduled{{Segment: Segment{LessonNumber: 1}, DatePlanned: saturday}}

	result := Validate(scheduled, timeline)
	if result.Valid {
		t.Fatalf("non-school placement should be fatal")
	}
	if len(result.Errors) != 1 || len(result.Warnings) == 0 {
		t.Fatalf("expected error and warning together: %+v", result)
	}
}

func TestValidate_LessonNumberGapIsWarning(t *testing.T) {
	timeline := weekdayTimeline(5)
	scheduled := []Scheduled{
		{Segment: Segment{LessonNumber: 1}, DatePlanned: timeline[0].Date},
		{Segment: Segment{LessonNumber: 3}, DatePlanned: timeline[1].Date},
	}
	result := Validate(scheduled, timeline)
	if !result.Valid {
		t.Fatalf("gaps are advisory: %+v", result)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Missing lesson numbers") && strings.Contains(w, "2") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected gap warning naming lesson 2: %v", result.Warnings)
	}
}

func TestValidate_DuplicatePlacementIsError(t *testing.T) {
	timeline := weekdayTimeline(3)
	scheduled := []Scheduled{
		{Segment: Segment{LessonNumber: 1, HourSegment: 1}, DatePlanned: timeline[0].Date},
		{Segment: Segment{LessonNumber: 1, HourSegment: 2}, DatePlanned: timeline[0].Date},
	}
	result := Validate(scheduled, timeline)
	if result.Valid {
		t.Fatalf("duplicate (date, lesson) pairs should be an error")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Duplicate lesson numbers") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate error: %v", result.Errors)
	}
}

func TestValidate_WarningsNeverAffectValidity(t *testing.T) {
	timeline := weekdayTimeline(5)
	scheduled := []Scheduled{
		{Segment: Segment{LessonNumber: 2}, DatePlanned: timeline[0].Date},
	}
	result := Validate(scheduled, timeline)
	if len(result.Warnings) == 0 {
		t.Fatalf("expected gap warning for missing lesson 1")
	}
	if !result.Valid {
		t.Fatalf("warnings alone must not invalidate: %+v", result)
	}
}
