package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/ingestion"
	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/repos"
	"github.com/edtrack/calendar-backend/internal/sse"
	"github.com/edtrack/calendar-backend/internal/types"
)

const (
	sessionTypeCalendar          = "calendar"
	sessionTypeLessons           = "lessons"
	sessionTypeScrapeAndSchedule = "scrape_and_schedule"
)

// CalendarScrapeResult is a scraped-and-normalized calendar plus its
// analysis, tagged with the session that produced it.
type CalendarScrapeResult struct {
	SessionID uuid.UUID         `json:"session_id"`
	Timeline  []calendar.Day    `json:"timeline"`
	Analysis  calendar.Analysis `json:"analysis"`
}

type LessonScrapeResult struct {
	SessionID uuid.UUID         `json:"session_id"`
	Lessons   []calendar.Lesson `json:"lessons"`
}

type ScrapeAndScheduleResult struct {
	SessionID uuid.UUID `json:"session_id"`
	*ProcessResult
}

// ScrapeService drives scraping runs end to end: it records a ScrapeSession,
// fetches, hands off to the processing pipeline, and marks the session
// completed or failed.
type ScrapeService interface {
	ScrapeCalendar(ctx context.Context, url string, schoolID int) (*CalendarScrapeResult, error)
	ScrapeLessons(ctx context.Context, url string, classID int) (*LessonScrapeResult, error)
	ScrapeAndSchedule(ctx context.Context, lessonURL, calendarURL string, classID, schoolID, hoursPerDay int) (*ScrapeAndScheduleResult, error)
	CurriculumMetadata(ctx context.Context, url string) (*ingestion.CurriculumMetadata, error)
}

type scrapeService struct {
	log         *logger.Logger
	scraper     ingestion.Scraper
	processing  ProcessingService
	sessionRepo repos.ScrapeSessionRepo
	sourceRepo  repos.CurriculumSourceRepo
	notifier    ProgressNotifier
}

func NewScrapeService(
	log *logger.Logger,
	scraper ingestion.Scraper,
	processing ProcessingService,
	sessionRepo repos.ScrapeSessionRepo,
	sourceRepo repos.CurriculumSourceRepo,
	notifier ProgressNotifier,
) ScrapeService {
	serviceLog := log.With("service", "ScrapeService")
	return &scrapeService{
		log:         serviceLog,
		scraper:     scraper,
		processing:  processing,
		sessionRepo: sessionRepo,
		sourceRepo:  sourceRepo,
		notifier:    notifier,
	}
}

func (ss *scrapeService) ScrapeCalendar(ctx context.Context, url string, schoolID int) (*CalendarScrapeResult, error) {
	session, err := ss.startSession(ctx, sessionTypeCalendar, url, schoolID, 0)
	if err != nil {
		return nil, err
	}

	rows, err := ss.scraper.ScrapeCalendar(ctx, url, schoolID)
	if err != nil {
		return nil, ss.failSession(ctx, session, fmt.Errorf("scrape calendar: %w", err))
	}
	timeline, analysis, err := ss.processing.AnalyzeCalendar(ctx, rows, schoolID)
	if err != nil {
		return nil, ss.failSession(ctx, session, err)
	}

	ss.completeSession(ctx, session, len(rows), len(timeline), analysis)
	return &CalendarScrapeResult{SessionID: session, Timeline: timeline, Analysis: analysis}, nil
}

func (ss *scrapeService) ScrapeLessons(ctx context.Context, url string, classID int) (*LessonScrapeResult, error) {
	session, err := ss.startSession(ctx, sessionTypeLessons, url, 0, classID)
	if err != nil {
		return nil, err
	}

	lessons, err := ss.scraper.ScrapeLessons(ctx, url, classID)
	if err != nil {
		return nil, ss.failSession(ctx, session, fmt.Errorf("scrape lessons: %w", err))
	}

	ss.completeSession(ctx, session, len(lessons), len(lessons), nil)
	return &LessonScrapeResult{SessionID: session, Lessons: lessons}, nil
}

// ScrapeAndSchedule fetches the lesson page and the calendar page
// concurrently, then runs and persists a full scheduling pass.
func (ss *scrapeService) ScrapeAndSchedule(ctx context.Context, lessonURL, calendarURL string, classID, schoolID, hoursPerDay int) (*ScrapeAndScheduleResult, error) {
	session, err := ss.startSession(ctx, sessionTypeScrapeAndSchedule, lessonURL, schoolID, classID)
	if err != nil {
		return nil, err
	}

	var (
		lessons []calendar.Lesson
		rows    []calendar.RawRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lessons, err = ss.scraper.ScrapeLessons(gctx, lessonURL, classID)
		if err != nil {
			return fmt.Errorf("scrape lessons: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = ss.scraper.ScrapeCalendar(gctx, calendarURL, schoolID)
		if err != nil {
			return fmt.Errorf("scrape calendar: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, ss.failSession(ctx, session, err)
	}

	result, err := ss.processing.Process(ctx, ProcessRequest{
		CalendarRows: rows,
		Lessons:      lessons,
		SchoolID:     schoolID,
		ClassID:      classID,
		HoursPerDay:  hoursPerDay,
		Persist:      true,
		SessionID:    session,
	})
	if err != nil {
		return nil, ss.failSession(ctx, session, err)
	}

	ss.completeSession(ctx, session, len(lessons)+len(rows), len(result.Schedule.Segments), result.Summary)
	return &ScrapeAndScheduleResult{SessionID: session, ProcessResult: result}, nil
}

func (ss *scrapeService) CurriculumMetadata(ctx context.Context, url string) (*ingestion.CurriculumMetadata, error) {
	meta, err := ss.scraper.ScrapeCurriculumMetadata(ctx, url)
	if err != nil {
		return nil, err
	}
	if ss.sourceRepo != nil {
		config, _ := json.Marshal(meta)
		src := &types.CurriculumSource{
			Name:       meta.Title,
			URL:        url,
			SourceType: meta.CurriculumType,
			IsActive:   true,
			Config:     datatypes.JSON(config),
		}
		if _, err := ss.sourceRepo.UpsertByURL(ctx, nil, src); err != nil {
			ss.log.Warn("failed to record curriculum source", "error", err, "url", url)
		}
	}
	return meta, nil
}

// ---------- session bookkeeping ----------

func (ss *scrapeService) startSession(ctx context.Context, sessionType, url string, schoolID, classID int) (uuid.UUID, error) {
	created, err := ss.sessionRepo.Create(ctx, nil, &types.ScrapeSession{
		SessionType: sessionType,
		SourceURL:   url,
		SchoolID:    schoolID,
		ClassID:     classID,
		Status:      types.ScrapeStatusPending,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("create scrape session: %w", err)
	}
	if err := ss.sessionRepo.UpdateStatus(ctx, nil, created.ID, types.ScrapeStatusRunning, ""); err != nil {
		ss.log.Warn("failed to mark session running", "error", err)
	}
	ss.notify(ctx, created.ID, sse.SSEEventScrapeStarted, map[string]any{
		"session_type": sessionType,
		"source_url":   url,
	})
	return created.ID, nil
}

func (ss *scrapeService) failSession(ctx context.Context, sessionID uuid.UUID, cause error) error {
	if err := ss.sessionRepo.UpdateStatus(ctx, nil, sessionID, types.ScrapeStatusFailed, cause.Error()); err != nil {
		ss.log.Warn("failed to mark session failed", "error", err, "session_id", sessionID)
	}
	ss.notify(ctx, sessionID, sse.SSEEventScrapeFailed, map[string]any{"error": cause.Error()})
	return cause
}

func (ss *scrapeService) completeSession(ctx context.Context, sessionID uuid.UUID, scraped, processed int, results any) {
	var raw datatypes.JSON
	if results != nil {
		if b, err := json.Marshal(results); err == nil {
			raw = datatypes.JSON(b)
		}
	}
	if err := ss.sessionRepo.MarkCompleted(ctx, nil, sessionID, scraped, processed, raw); err != nil {
		ss.log.Warn("failed to mark session completed", "error", err, "session_id", sessionID)
	}
	ss.notify(ctx, sessionID, sse.SSEEventScrapeCompleted, map[string]any{
		"items_scraped":   scraped,
		"items_processed": processed,
	})
}

func (ss *scrapeService) notify(ctx context.Context, sessionID uuid.UUID, event sse.SSEEvent, data any) {
	if ss.notifier == nil {
		return
	}
	ss.notifier.Notify(ctx, sessionID, event, data)
}
