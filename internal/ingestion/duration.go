package ingestion

import (
	"regexp"
	"strconv"

	"github.com/edtrack/calendar-backend/internal/calendar"
)

// ParsedDuration is the duration information recovered from free lesson text.
type ParsedDuration struct {
	Hours          float64
	Type           calendar.DurationType
	SequenceNumber *int
	TotalSequence  *int
}

// Pattern order matters: "2 of 4" must win before the bare-number fallback.
var (
	reSequential = regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)`)
	reDays       = regexp.MustCompile(`(?i)(\d+)\s+days?`)
	reHours      = regexp.MustCompile(`(?i)(\d+)\s+hours?`)
	reBlocks     = regexp.MustCompile(`(?i)(\d+)\s+blocks?`)
	reParenNum   = regexp.MustCompile(`\((\d+)\)`)
)

// ParseDuration recovers duration info from lesson text. "(2 of 4)" marks one
// part of a sequential lesson whose full span is the total; "(3 days)",
// "(2 hours)" and "(4 blocks)" are taken at face value; a bare "(2)" is read
// as hours. Text with no duration marker defaults to a single hour.
func ParseDuration(text string) ParsedDuration {
	if m := reSequential.FindStringSubmatch(text); m != nil {
		seq, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		return ParsedDuration{
			Hours:          float64(total),
			Type:           calendar.DurationSequential,
			SequenceNumber: &seq,
			TotalSequence:  &total,
		}
	}
	if m := reDays.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ParsedDuration{Hours: float64(n), Type: calendar.DurationDays}
	}
	if m := reHours.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ParsedDuration{Hours: float64(n), Type: calendar.DurationHours}
	}
	if m := reBlocks.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ParsedDuration{Hours: float64(n), Type: calendar.DurationBlocks}
	}
	if m := reParenNum.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return ParsedDuration{Hours: float64(n), Type: calendar.DurationHours}
	}
	return ParsedDuration{Hours: 1.0, Type: calendar.DurationHours}
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),  // MM/DD/YYYY
	regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`),  // YYYY-MM-DD
	regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),  // MM-DD-YYYY
	regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{4}`), // DD Month YYYY
}

// ExtractDateString pulls the first recognizable date out of free text.
// Returns "" when nothing matches.
func ExtractDateString(text string) string {
	for _, p := range datePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
