package ingestion

import (
	"context"
	"strings"
	"testing"

	"github.com/edtrack/calendar-backend/internal/calendar"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	return NewExtractor(testLogger(t), nil, nil, nil)
}

func TestParseCSVRows(t *testing.T) {
	data := []byte("date,title,is_school_day,day_type\n" +
		"2025-09-01,First Day,true,regular\n" +
		"2025-11-27,Thanksgiving,false,holiday\n")

	rows, err := ParseCSVRows(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0]["date"] != "2025-09-01" || rows[0]["title"] != "First Day" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1]["is_school_day"] != "false" {
		t.Errorf("expected string false, got %v", rows[1]["is_school_day"])
	}
}

func TestParseCSVRows_FeedsNormalizer(t *testing.T) {
	data := []byte("date,title,is_school_day\n" +
		"2025-09-02,Classes,true\n" +
		"2025-09-01,Labor Day,false\n")

	rows, err := ParseCSVRows(data)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	days, err := calendar.Normalize(rows, 3)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].Title != "Labor Day" || days[0].IsSchoolDay {
		t.Errorf("expected sorted timeline starting with the non-school day")
	}
}

func TestParseCSVRows_RaggedRecords(t *testing.T) {
	data := []byte("date,title\n2025-09-01,First Day,extra\n2025-09-02\n")
	rows, err := ParseCSVRows(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[1]["title"]; ok {
		t.Errorf("short record should not have a title key")
	}
}

func TestParseCSVRows_EmptyInput(t *testing.T) {
	if _, err := ParseCSVRows(nil); err == nil {
		t.Fatalf("expected error for empty csv")
	}
}

func TestExtractText_PlainText(t *testing.T) {
	e := newTestExtractor(t)
	text, fileType, err := e.ExtractText(context.Background(), "notes.txt", "text/plain", []byte("Lesson 1\nhello"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileType != "text" {
		t.Errorf("expected text, got %s", fileType)
	}
	if !strings.Contains(text, "Lesson 1") {
		t.Errorf("text lost: %q", text)
	}
}

func TestExtractText_HTML(t *testing.T) {
	e := newTestExtractor(t)
	text, fileType, err := e.ExtractText(context.Background(), "page.html", "text/html",
		[]byte("<!DOCTYPE html><html><body><p>Lesson&nbsp;1 &amp; 2</p></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fileType != "html" {
		t.Errorf("expected html, got %s", fileType)
	}
	if !strings.Contains(text, "Lesson 1 & 2") {
		t.Errorf("entities not decoded: %q", text)
	}
	if strings.Contains(text, "<") {
		t.Errorf("tags not stripped: %q", text)
	}
}

func TestExtractText_EmptyFile(t *testing.T) {
	e := newTestExtractor(t)
	if _, _, err := e.ExtractText(context.Background(), "x.txt", "text/plain", nil); err == nil {
		t.Fatalf("expected error for empty file")
	}
}

func TestExtractText_FakePDF(t *testing.T) {
	e := newTestExtractor(t)
	_, _, err := e.ExtractText(context.Background(), "fake.pdf", "application/pdf", []byte{0x00, 0x01, 0x02, 0x03})
	if err == nil {
		t.Fatalf("expected error for binary claiming pdf")
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("error should mention pdf: %v", err)
	}
}

func TestExtractText_ImageWithoutOCR(t *testing.T) {
	e := newTestExtractor(t)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}
	if _, _, err := e.ExtractText(context.Background(), "cal.png", "image/png", png); err == nil {
		t.Fatalf("expected error when vision OCR is not configured")
	}
}

func TestCalendarRows_FromText(t *testing.T) {
	e := newTestExtractor(t)
	text := "School Calendar 2025-26\n" +
		"09/01/2025 Labor Day - No School\n" +
		"09/02/2025 First Day of Classes\n" +
		"12/19/2025 Early Release\n" +
		"a line without a date\n"

	rows := e.CalendarRows(text)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if v, _ := rows[0]["is_school_day"].(bool); v {
		t.Errorf("labor day holiday should not be a school day")
	}
	if rows[2]["day_type"] != "early_release" {
		t.Errorf("expected early_release, got %v", rows[2]["day_type"])
	}
}

func TestLessons_FromText(t *testing.T) {
	e := newTestExtractor(t)
	text := "Course Outline\n" +
		"Lesson 1: Variables (2 hours)\n" +
		"Objectives: declare and assign variables\n" +
		"Unit 2: Control Flow (1 of 3)\n" +
		"Students will use conditionals\n" +
		"trailing notes\n"

	lessons := e.Lessons(text, 9, "outline.txt")
	if len(lessons) != 2 {
		t.Fatalf("expected 2 lessons, got %d", len(lessons))
	}

	first := lessons[0]
	if first.Title != "Lesson 1: Variables (2 hours)" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.DurationType != calendar.DurationHours || first.DurationHours != 2 {
		t.Errorf("unexpected duration %s %v", first.DurationType, first.DurationHours)
	}
	if first.ClassID != 9 || first.LessonNumber != 1 {
		t.Errorf("unexpected identity fields")
	}
	if !strings.Contains(first.Content, "Objectives: declare") {
		t.Errorf("content should include body lines: %q", first.Content)
	}

	second := lessons[1]
	if second.DurationType != calendar.DurationSequential {
		t.Errorf("expected sequential, got %s", second.DurationType)
	}
	if second.LessonNumber != 2 {
		t.Errorf("expected lesson number 2, got %d", second.LessonNumber)
	}

	if targets := calendar.ExtractTargets([]calendar.Lesson{first}); len(targets) == 0 {
		t.Errorf("extracted lesson content should yield targets")
	}
}

func TestLessons_NoHeadings(t *testing.T) {
	e := newTestExtractor(t)
	if lessons := e.Lessons("just some prose\nwith no structure", 1, "x.txt"); len(lessons) != 0 {
		t.Fatalf("expected no lessons, got %d", len(lessons))
	}
}
