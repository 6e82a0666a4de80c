package calendar

type DurationType string

const (
	DurationHours      DurationType = "hours"
	DurationDays       DurationType = "days"
	DurationBlocks     DurationType = "blocks"
	DurationSequential DurationType = "sequential"
)

// Lesson is one curriculum lesson as produced by a scraper, an uploaded
// file, or a structured import.
type Lesson struct {
	ClassID        int          `json:"class_id,omitempty"`
	LessonNumber   int          `json:"lesson_number"`
	Title          string       `json:"title"`
	DurationHours  float64      `json:"duration_hours"`
	DurationType   DurationType `json:"duration_type"`
	SequenceNumber *int         `json:"sequence_number,omitempty"`
	TotalSequence  *int         `json:"total_sequence,omitempty"`
	Status         string       `json:"status"`
	Notes          string       `json:"notes,omitempty"`
	SourceFile     string       `json:"source_file,omitempty"`
	FileType       string       `json:"file_type,omitempty"`
	Content        string       `json:"parsed_content,omitempty"`
}

// Segment is one atomic one-hour unit of a lesson, schedulable onto exactly
// one school day.
type Segment struct {
	ClassID        int          `json:"class_id,omitempty"`
	LessonNumber   int          `json:"lesson_number"`
	Title          string       `json:"title"`
	HourSegment    int          `json:"hour_segment"`
	TotalSegments  int          `json:"total_segments"`
	DurationType   DurationType `json:"duration_type"`
	SequenceNumber *int         `json:"sequence_number,omitempty"`
	TotalSequence  *int         `json:"total_sequence,omitempty"`
	Status         string       `json:"status"`
	Notes          string       `json:"notes,omitempty"`
	SourceFile     string       `json:"source_file,omitempty"`
	FileType       string       `json:"file_type,omitempty"`
	Content        string       `json:"parsed_content,omitempty"`
	DurationHours  float64      `json:"duration_hours"`
}

// EffectiveHours converts a lesson's raw duration value into total teaching
// hours. "days" scales by hoursPerDay; "hours", "blocks" and "sequential"
// are already absolute hours. Absent duration defaults to 1 hour.
func EffectiveHours(lesson Lesson, hoursPerDay int) float64 {
	hours := lesson.DurationHours
	if hours == 0 {
		hours = 1.0
	}
	if lesson.DurationType == DurationDays {
		hours *= float64(hoursPerDay)
	}
	return hours
}

// Expand breaks a lesson into whole-hour segments. Fractional remainders
// truncate toward zero: a 1.5-hour lesson yields exactly one segment.
func Expand(lesson Lesson, hoursPerDay int) []Segment {
	durationType := lesson.DurationType
	if durationType == "" {
		durationType = DurationHours
	}
	status := lesson.Status
	if status == "" {
		status = "planned"
	}

	total := int(EffectiveHours(lesson, hoursPerDay))
	segments := make([]Segment, 0, total)
	for hour := 0; hour < total; hour++ {
		segments = append(segments, Segment{
			ClassID:        lesson.ClassID,
			LessonNumber:   lesson.LessonNumber,
			Title:          lesson.Title,
			HourSegment:    hour + 1,
			TotalSegments:  total,
			DurationType:   durationType,
			SequenceNumber: lesson.SequenceNumber,
			TotalSequence:  lesson.TotalSequence,
			Status:         status,
			Notes:          lesson.Notes,
			SourceFile:     lesson.SourceFile,
			FileType:       lesson.FileType,
			Content:        lesson.Content,
			DurationHours:  1.0,
		})
	}
	return segments
}
