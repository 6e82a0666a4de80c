package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

const lessonPage = `<!DOCTYPE html>
<html><head><title>PLTW Computer Science Essentials</title>
<meta name="description" content="Intro CS curriculum"></head>
<body>
<div class="lesson"><h3>Lesson 1: Variables</h3>
<p>Students will declare variables. (2 hours)</p></div>
<div class="lesson"><h3>Lesson 2: Loops</h3>
<p>Objectives: iterate with for loops. (1 of 3)</p></div>
<div class="lesson"><p>Untitled block (3 days)</p></div>
</body></html>`

const calendarPage = `<!DOCTYPE html>
<html><body>
<div class="calendar-event" data-date="2025-09-01">First Day of School</div>
<div class="calendar-event" data-date="2025-11-27">No School - Thanksgiving</div>
<div class="calendar-event"><span>Early Release 12/19/2025</span></div>
<div class="calendar-event">no date here</div>
</body></html>`

func TestScrapeLessons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(lessonPage))
	}))
	defer srv.Close()

	s := NewScraper(testLogger(t), nil)
	lessons, err := s.ScrapeLessons(context.Background(), srv.URL, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lessons) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(lessons))
	}

	first := lessons[0]
	if first.Title != "Lesson 1: Variables" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.LessonNumber != 1 || first.ClassID != 42 {
		t.Errorf("unexpected numbering: number=%d class=%d", first.LessonNumber, first.ClassID)
	}
	if first.DurationType != calendar.DurationHours || first.DurationHours != 2 {
		t.Errorf("unexpected duration: %s %v", first.DurationType, first.DurationHours)
	}
	if first.FileType != "web" || first.SourceFile != srv.URL {
		t.Errorf("unexpected source fields: %s %s", first.FileType, first.SourceFile)
	}

	second := lessons[1]
	if second.DurationType != calendar.DurationSequential {
		t.Errorf("expected sequential duration, got %s", second.DurationType)
	}
	if second.SequenceNumber == nil || *second.SequenceNumber != 1 {
		t.Errorf("expected sequence number 1")
	}

	third := lessons[2]
	if third.DurationType != calendar.DurationDays || third.DurationHours != 3 {
		t.Errorf("unexpected duration for third lesson: %s %v", third.DurationType, third.DurationHours)
	}
}

func TestScrapeCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(calendarPage))
	}))
	defer srv.Close()

	s := NewScraper(testLogger(t), nil)
	rows, err := s.ScrapeCalendar(context.Background(), srv.URL, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// the dateless element is skipped
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if rows[0]["date"] != "2025-09-01" {
		t.Errorf("expected data-date attribute to win, got %v", rows[0]["date"])
	}
	if v, _ := rows[0]["is_school_day"].(bool); !v {
		t.Errorf("first day should be a school day")
	}

	if v, _ := rows[1]["is_school_day"].(bool); v {
		t.Errorf("thanksgiving should not be a school day")
	}
	if rows[1]["day_type"] != "no_school" {
		t.Errorf("expected no_school, got %v", rows[1]["day_type"])
	}

	if rows[2]["date"] != "12/19/2025" {
		t.Errorf("expected text date fallback, got %v", rows[2]["date"])
	}
	if rows[2]["day_type"] != "early_release" {
		t.Errorf("expected early_release, got %v", rows[2]["day_type"])
	}
}

func TestScrapeCalendar_FeedsNormalizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(calendarPage))
	}))
	defer srv.Close()

	s := NewScraper(testLogger(t), nil)
	rows, err := s.ScrapeCalendar(context.Background(), srv.URL, 7)
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	days, err := calendar.Normalize(rows, 7)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Date.After(days[1].Date) {
		t.Errorf("timeline should be sorted ascending")
	}
}

func TestScrapeCurriculumMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(lessonPage))
	}))
	defer srv.Close()

	s := NewScraper(testLogger(t), nil)
	md, err := s.ScrapeCurriculumMetadata(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if md.Title != "PLTW Computer Science Essentials" {
		t.Errorf("unexpected title %q", md.Title)
	}
	if md.CurriculumType != "PLTW" {
		t.Errorf("expected PLTW, got %s", md.CurriculumType)
	}
	if md.Description != "Intro CS curriculum" {
		t.Errorf("unexpected description %q", md.Description)
	}
	if md.TotalLessons != 3 {
		t.Errorf("expected 3 lessons counted, got %d", md.TotalLessons)
	}
}

func TestScrape_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewScraper(testLogger(t), nil)
	if _, err := s.ScrapeLessons(context.Background(), srv.URL, 1); err == nil {
		t.Fatalf("expected error on 404")
	}
}
