package calendar

import (
	"errors"
	"fmt"
	"strings"
)

// MissingDateColumnError reports that no recognizable date-bearing column
// exists in the uploaded table. The message lists what was actually there
// so the caller can fix the file.
type MissingDateColumnError struct {
	AvailableColumns []string
}

func (e *MissingDateColumnError) Error() string {
	expected := append([]string{"date"}, dateColumnFallbacks...)
	return fmt.Sprintf("no date column found. Available columns: [%s]. Expected date columns: %s",
		strings.Join(e.AvailableColumns, ", "), strings.Join(expected, ", "))
}

// NoValidDatesError reports that every row's date value failed to parse,
// or that the input table was empty to begin with.
type NoValidDatesError struct{}

func (e *NoValidDatesError) Error() string {
	return "no valid dates found in calendar data"
}

// NoSchoolDaysError reports a timeline with zero school days; nothing can
// be scheduled against it.
type NoSchoolDaysError struct{}

func (e *NoSchoolDaysError) Error() string {
	return "no school days found in calendar data"
}

// IsInputError reports whether err was caused by caller-correctable input
// rather than an internal failure. The HTTP layer uses this to pick a 4xx
// over a 5xx.
func IsInputError(err error) bool {
	var mdc *MissingDateColumnError
	var nvd *NoValidDatesError
	var nsd *NoSchoolDaysError
	return errors.As(err, &mdc) || errors.As(err, &nvd) || errors.As(err, &nsd)
}
