package calendar

import (
	"sort"
	"time"
)

// Scheduled is a segment that has been assigned to a school day.
type Scheduled struct {
	Segment
	DatePlanned time.Time `json:"date_planned"`
}

// ScheduleResult carries the assignment plus the counts a caller needs to
// notice capacity exhaustion: segments that did not fit are dropped, not
// errored.
type ScheduleResult struct {
	Segments      []Scheduled `json:"segments"`
	TotalSegments int         `json:"total_segments"`
	Dropped       int         `json:"dropped_segments"`
}

// Schedule expands each lesson and fills the segments across school days in
// strict input order under a fixed daily-hour capacity. A single cursor and
// hours-used counter are threaded across all lessons: a lesson's tail
// segments can share a day with the next lesson's head segments. No
// lookahead, no rebalancing.
//
// classID, when non-zero, overrides each lesson's own class.
func Schedule(lessons []Lesson, timeline []Day, hoursPerDay int, classID int) (ScheduleResult, error) {
	if hoursPerDay < 1 {
		hoursPerDay = 1
	}

	schoolDays := make([]Day, 0, len(timeline))
	for _, day := range timeline {
		if day.IsSchoolDay {
			schoolDays = append(schoolDays, day)
		}
	}
	sort.Slice(schoolDays, func(i, j int) bool {
		return schoolDays[i].Date.Before(schoolDays[j].Date)
	})
	if len(schoolDays) == 0 {
		return ScheduleResult{}, &NoSchoolDaysError{}
	}

	result := ScheduleResult{}
	dayIndex := 0
	hoursUsed := 0
	for _, lesson := range lessons {
		if classID != 0 {
			lesson.ClassID = classID
		}
		for _, segment := range Expand(lesson, hoursPerDay) {
			result.TotalSegments++
			if dayIndex >= len(schoolDays) {
				result.Dropped++
				continue
			}
			result.Segments = append(result.Segments, Scheduled{
				Segment:     segment,
				DatePlanned: schoolDays[dayIndex].Date,
			})
			hoursUsed++
			if hoursUsed >= hoursPerDay {
				dayIndex++
				hoursUsed = 0
			}
		}
	}
	return result, nil
}
