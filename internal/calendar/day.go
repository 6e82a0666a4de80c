// Package calendar implements the scheduling engine: it normalizes raw
// calendar rows into a typed timeline, expands lessons into one-hour
// segments, fills those segments across school days, validates the result,
// and extracts learning targets from lesson content. Everything in this
// package is a pure transform over value objects; persistence and transport
// live elsewhere.
package calendar

import (
	"fmt"
	"time"
)

type DayType string

const (
	DayTypeRegular      DayType = "regular"
	DayTypeEarlyRelease DayType = "early_release"
	DayTypeHoliday      DayType = "holiday"
	DayTypeNoSchool     DayType = "no_school"
	DayTypeWeekend      DayType = "weekend"
	DayTypeProfessional DayType = "professional_day"
	DayTypeSnowDay      DayType = "snow_day"
	DayTypeOrientation  DayType = "orientation"
	DayTypeOther        DayType = "other"
)

// Day is one entry of the normalized timeline. Dates are unique per
// timeline and truncated to midnight UTC.
type Day struct {
	Date         time.Time `json:"date"`
	SchoolID     int       `json:"school_id"`
	IsSchoolDay  bool      `json:"is_school_day"`
	DayType      DayType   `json:"day_type"`
	Title        string    `json:"title,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	Weekday      string    `json:"weekday"`
	IsWeekend    bool      `json:"is_weekend"`
	AcademicYear string    `json:"academic_year"`
	Semester     string    `json:"semester"`
}

// AcademicYear labels the two-calendar-year span a date belongs to, with
// the boundary at August: 2025-09-01 and 2026-05-01 are both "2025-2026".
func AcademicYear(date time.Time) string {
	if date.Month() >= time.August {
		return fmt.Sprintf("%d-%d", date.Year(), date.Year()+1)
	}
	return fmt.Sprintf("%d-%d", date.Year()-1, date.Year())
}

// Semester maps months 8-12 to Fall, 1-5 to Spring and 6-7 to Summer.
func Semester(date time.Time) string {
	switch m := date.Month(); {
	case m >= time.August:
		return "Fall"
	case m <= time.May:
		return "Spring"
	default:
		return "Summer"
	}
}

func isWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// nonSchoolDayTypes marks types that imply classes are not held when the
// source row carries no explicit school-day flag.
var nonSchoolDayTypes = map[DayType]bool{
	DayTypeHoliday:      true,
	DayTypeNoSchool:     true,
	DayTypeWeekend:      true,
	DayTypeProfessional: true,
	DayTypeSnowDay:      true,
}

var knownDayTypes = map[DayType]bool{
	DayTypeRegular:      true,
	DayTypeEarlyRelease: true,
	DayTypeHoliday:      true,
	DayTypeNoSchool:     true,
	DayTypeWeekend:      true,
	DayTypeProfessional: true,
	DayTypeSnowDay:      true,
	DayTypeOrientation:  true,
	DayTypeOther:        true,
}
