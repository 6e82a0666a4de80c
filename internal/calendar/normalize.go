package calendar

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// RawRow is one record of an uploaded or scraped table, keyed by whatever
// column names the source used.
type RawRow map[string]any

// dateColumnFallbacks is tried, in order, when the table has no column
// literally named "date". Matching is case-sensitive; first hit wins.
var dateColumnFallbacks = []string{
	"Date", "DATE", "calendar_date", "school_date", "day",
	"due_date", "assigned_date", "created_date",
}

// dateLayouts cover the formats district sites and exported spreadsheets
// actually produce.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Normalize turns raw calendar-like rows into an ordered timeline of typed
// days. Rows whose date fails to parse are dropped; duplicate dates keep
// the last occurrence in input order. schoolID is applied to rows that do
// not already carry one.
func Normalize(rows []RawRow, schoolID int) ([]Day, error) {
	if len(rows) == 0 {
		return nil, &NoValidDatesError{}
	}

	dateCol, err := resolveDateColumn(rows)
	if err != nil {
		return nil, err
	}

	// Last occurrence per date wins: upstream sources supply overlapping
	// ranges and the later row carries the fresher data.
	byDate := make(map[time.Time]Day)
	order := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		date, ok := parseDateValue(row[dateCol])
		if !ok {
			continue
		}
		day := buildDay(row, date, schoolID)
		if _, seen := byDate[date]; !seen {
			order = append(order, date)
		}
		byDate[date] = day
	}
	if len(byDate) == 0 {
		return nil, &NoValidDatesError{}
	}

	timeline := make([]Day, 0, len(byDate))
	for _, date := range order {
		timeline = append(timeline, byDate[date])
	}
	sort.Slice(timeline, func(i, j int) bool {
		return timeline[i].Date.Before(timeline[j].Date)
	})
	return timeline, nil
}

func buildDay(row RawRow, date time.Time, schoolID int) Day {
	day := Day{
		Date:         date,
		SchoolID:     schoolID,
		Weekday:      date.Weekday().String(),
		IsWeekend:    isWeekend(date),
		AcademicYear: AcademicYear(date),
		Semester:     Semester(date),
		Title:        stringField(row, "title"),
		Notes:        stringField(row, "notes"),
	}
	if id, ok := intField(row, "school_id"); ok {
		day.SchoolID = id
	}

	dayType, hasType := dayTypeField(row)
	schoolDay, hasFlag := boolField(row, "is_school_day")

	switch {
	case hasFlag:
		day.IsSchoolDay = schoolDay
	case hasType:
		day.IsSchoolDay = !nonSchoolDayTypes[dayType]
	default:
		day.IsSchoolDay = !day.IsWeekend
	}

	if hasType {
		day.DayType = dayType
	} else if day.IsSchoolDay {
		day.DayType = DayTypeRegular
	} else {
		day.DayType = DayTypeWeekend
	}
	return day
}

func resolveDateColumn(rows []RawRow) (string, error) {
	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}
	if present["date"] {
		return "date", nil
	}
	for _, col := range dateColumnFallbacks {
		if present[col] {
			return col, nil
		}
	}
	available := make([]string, 0, len(present))
	for col := range present {
		available = append(available, col)
	}
	sort.Strings(available)
	return "", &MissingDateColumnError{AvailableColumns: available}
}

func parseDateValue(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return truncateToDate(t), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return truncateToDate(*t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return truncateToDate(parsed), true
			}
		}
	}
	return time.Time{}, false
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func stringField(row RawRow, key string) string {
	if v, ok := row[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func intField(row RawRow, key string) (int, bool) {
	switch v := row[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func floatField(row RawRow, key string) (float64, bool) {
	switch v := row[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func boolField(row RawRow, key string) (bool, bool) {
	switch v := row[key].(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "1":
			return true, true
		case "false", "no", "0":
			return false, true
		}
	case int:
		return v != 0, true
	case float64:
		return v != 0, true
	}
	return false, false
}

func dayTypeField(row RawRow) (DayType, bool) {
	raw := stringField(row, "day_type")
	if raw == "" {
		return "", false
	}
	dt := DayType(strings.ToLower(strings.ReplaceAll(raw, " ", "_")))
	if dt == "school_day" {
		// legacy label some district exports still use
		return DayTypeRegular, true
	}
	if !knownDayTypes[dt] {
		return DayTypeOther, true
	}
	return dt, true
}

// Structure describes an uploaded table so callers can debug files that
// fail to process.
type Structure struct {
	Columns              []string `json:"columns"`
	Rows                 int      `json:"rows"`
	HasDateColumn        bool     `json:"has_date_columns"`
	SuggestedDateColumns []string `json:"suggested_date_columns"`
	SampleRows           []RawRow `json:"sample_data"`
}

// InspectStructure probes a raw table without transforming it.
func InspectStructure(rows []RawRow) Structure {
	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}
	columns := make([]string, 0, len(present))
	for col := range present {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	dateLike := map[string]bool{
		"date": true, "day": true, "due_date": true,
		"assigned_date": true, "created_date": true,
	}
	var suggested []string
	for _, col := range columns {
		if dateLike[strings.ToLower(col)] {
			suggested = append(suggested, col)
		}
	}

	sample := rows
	if len(sample) > 3 {
		sample = sample[:3]
	}
	return Structure{
		Columns:              columns,
		Rows:                 len(rows),
		HasDateColumn:        len(suggested) > 0,
		SuggestedDateColumns: suggested,
		SampleRows:           sample,
	}
}
