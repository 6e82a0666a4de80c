package calendar

import (
	"sort"
	"time"
)

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type YearBreakdown struct {
	TotalDays  int    `json:"total_days"`
	SchoolDays int    `json:"school_days"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

// Analysis is a read-only aggregate over a timeline. An empty timeline
// yields a zeroed Analysis, not an error; callers check input first.
type Analysis struct {
	TotalDays          int                      `json:"total_days"`
	SchoolDays         int                      `json:"school_days"`
	NoSchoolDays       int                      `json:"no_school_days"`
	AcademicYears      int                      `json:"academic_years"`
	Semesters          map[string]int           `json:"semesters"`
	DayTypes           map[string]int           `json:"day_types"`
	MonthsCovered      []int                    `json:"months_covered"`
	DateRange          DateRange                `json:"date_range"`
	SchoolDaysPerMonth map[int]int              `json:"school_days_per_month"`
	YearBreakdown      map[string]YearBreakdown `json:"academic_year_breakdown"`
}

// Analyze aggregates a normalized timeline for reporting.
func Analyze(timeline []Day) Analysis {
	if len(timeline) == 0 {
		return Analysis{}
	}

	analysis := Analysis{
		TotalDays:          len(timeline),
		Semesters:          make(map[string]int),
		DayTypes:           make(map[string]int),
		SchoolDaysPerMonth: make(map[int]int),
		YearBreakdown:      make(map[string]YearBreakdown),
	}

	years := make(map[string]bool)
	months := make(map[int]bool)
	minDate, maxDate := timeline[0].Date, timeline[0].Date
	yearDates := make(map[string][2]time.Time)

	for _, day := range timeline {
		if day.IsSchoolDay {
			analysis.SchoolDays++
			analysis.SchoolDaysPerMonth[int(day.Date.Month())]++
		}
		analysis.Semesters[day.Semester]++
		analysis.DayTypes[string(day.DayType)]++
		years[day.AcademicYear] = true
		months[int(day.Date.Month())] = true

		if day.Date.Before(minDate) {
			minDate = day.Date
		}
		if day.Date.After(maxDate) {
			maxDate = day.Date
		}

		bd := analysis.YearBreakdown[day.AcademicYear]
		bd.TotalDays++
		if day.IsSchoolDay {
			bd.SchoolDays++
		}
		bounds, seen := yearDates[day.AcademicYear]
		if !seen {
			bounds = [2]time.Time{day.Date, day.Date}
		} else {
			if day.Date.Before(bounds[0]) {
				bounds[0] = day.Date
			}
			if day.Date.After(bounds[1]) {
				bounds[1] = day.Date
			}
		}
		yearDates[day.AcademicYear] = bounds
		analysis.YearBreakdown[day.AcademicYear] = bd
	}

	for year, bounds := range yearDates {
		bd := analysis.YearBreakdown[year]
		bd.StartDate = bounds[0].Format("2006-01-02")
		bd.EndDate = bounds[1].Format("2006-01-02")
		analysis.YearBreakdown[year] = bd
	}

	analysis.NoSchoolDays = analysis.TotalDays - analysis.SchoolDays
	analysis.AcademicYears = len(years)
	for m := range months {
		analysis.MonthsCovered = append(analysis.MonthsCovered, m)
	}
	sort.Ints(analysis.MonthsCovered)
	analysis.DateRange = DateRange{
		Start: minDate.Format("2006-01-02"),
		End:   maxDate.Format("2006-01-02"),
	}
	return analysis
}
