package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ValidationResult reports schedule conflicts as structured findings, never
// as errors in the Go sense. Warnings are advisory; Valid is false only
// when Errors is non-empty.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings"`
	Errors   []string `json:"errors"`
}

// Validate checks a schedule against the timeline it was built from:
// placements on non-school days and duplicate (date, lesson) pairs are
// errors; weekend placements and lesson-number gaps are warnings. Weekend
// placements are reported independently of the school-day flag, so a
// Saturday marked non-school trips both findings.
func Validate(scheduled []Scheduled, timeline []Day) ValidationResult {
	result := ValidationResult{Valid: true, Warnings: []string{}, Errors: []string{}}
	if len(scheduled) == 0 || len(timeline) == 0 {
		return result
	}

	nonSchool := make(map[time.Time]bool)
	for _, day := range timeline {
		if !day.IsSchoolDay {
			nonSchool[day.Date] = true
		}
	}
	conflictSet := make(map[time.Time]bool)
	for _, seg := range scheduled {
		if nonSchool[seg.DatePlanned] {
			conflictSet[seg.DatePlanned] = true
		}
	}
	if len(conflictSet) > 0 {
		conflicts := make([]string, 0, len(conflictSet))
		for date := range conflictSet {
			conflicts = append(conflicts, date.Format("2006-01-02"))
		}
		sort.Strings(conflicts)
		result.Errors = append(result.Errors,
			fmt.Sprintf("Lessons scheduled on non-school days: [%s]", strings.Join(conflicts, ", ")))
	}

	weekendCount := 0
	for _, seg := range scheduled {
		if isWeekend(seg.DatePlanned) {
			weekendCount++
		}
	}
	if weekendCount > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Lessons scheduled on weekends: %d", weekendCount))
	}

	numberSet := make(map[int]bool)
	for _, seg := range scheduled {
		numberSet[seg.LessonNumber] = true
	}
	var missing []int
	for n := 1; n <= len(numberSet); n++ {
		if !numberSet[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		parts := make([]string, len(missing))
		for i, n := range missing {
			parts[i] = fmt.Sprintf("%d", n)
		}
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Missing lesson numbers: [%s]", strings.Join(parts, ", ")))
	}

	type placement struct {
		date         time.Time
		lessonNumber int
	}
	counts := make(map[placement]int)
	for _, seg := range scheduled {
		counts[placement{seg.DatePlanned, seg.LessonNumber}]++
	}
	duplicates := 0
	for _, c := range counts {
		if c > 1 {
			duplicates++
		}
	}
	if duplicates > 0 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Duplicate lesson numbers on same date: %d", duplicates))
	}

	result.Valid = len(result.Errors) == 0
	return result
}
