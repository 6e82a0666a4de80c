package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/repos"
	"github.com/edtrack/calendar-backend/internal/sse"
	"github.com/edtrack/calendar-backend/internal/types"
)

// ProcessRequest is one full scheduling run: raw calendar rows plus a lesson
// list, scheduled under a daily hour capacity.
type ProcessRequest struct {
	CalendarRows []calendar.RawRow
	Lessons      []calendar.Lesson
	SchoolID     int
	ClassID      int
	HoursPerDay  int
	CalendarName string
	Persist      bool
	SessionID    uuid.UUID
}

type ProcessResult struct {
	Timeline   []calendar.Day            `json:"timeline"`
	Schedule   calendar.ScheduleResult   `json:"schedule"`
	Validation calendar.ValidationResult `json:"validation"`
	Analysis   calendar.Analysis         `json:"analysis"`
	Targets    []calendar.Target         `json:"learning_targets"`
	Mappings   []calendar.Mapping        `json:"lesson_target_mappings"`
	CalendarID *uuid.UUID                `json:"calendar_id,omitempty"`
	Summary    map[string]any            `json:"summary"`
}

// ProcessingService runs the normalize → schedule → validate → analyze →
// extract-targets pipeline and optionally persists the run.
type ProcessingService interface {
	Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
	AnalyzeCalendar(ctx context.Context, rows []calendar.RawRow, schoolID int) ([]calendar.Day, calendar.Analysis, error)
}

type processingService struct {
	db           *gorm.DB
	log          *logger.Logger
	calendarRepo repos.CalendarRepo
	lessonRepo   repos.LessonRepo
	targetRepo   repos.LearningTargetRepo
	lessonTarget repos.LessonTargetRepo
	notifier     ProgressNotifier
}

func NewProcessingService(
	db *gorm.DB,
	log *logger.Logger,
	calendarRepo repos.CalendarRepo,
	lessonRepo repos.LessonRepo,
	targetRepo repos.LearningTargetRepo,
	lessonTarget repos.LessonTargetRepo,
	notifier ProgressNotifier,
) ProcessingService {
	serviceLog := log.With("service", "ProcessingService")
	return &processingService{
		db:           db,
		log:          serviceLog,
		calendarRepo: calendarRepo,
		lessonRepo:   lessonRepo,
		targetRepo:   targetRepo,
		lessonTarget: lessonTarget,
		notifier:     notifier,
	}
}

func (ps *processingService) AnalyzeCalendar(ctx context.Context, rows []calendar.RawRow, schoolID int) ([]calendar.Day, calendar.Analysis, error) {
	timeline, err := calendar.Normalize(rows, schoolID)
	if err != nil {
		return nil, calendar.Analysis{}, err
	}
	return timeline, calendar.Analyze(timeline), nil
}

func (ps *processingService) Process(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	tracer := otel.Tracer("processing")
	ctx, span := tracer.Start(ctx, "ProcessData")
	defer span.End()
	span.SetAttributes(
		attribute.Int("school_id", req.SchoolID),
		attribute.Int("class_id", req.ClassID),
		attribute.Int("lesson_count", len(req.Lessons)),
		attribute.Int("calendar_rows", len(req.CalendarRows)),
	)

	hoursPerDay := req.HoursPerDay
	if hoursPerDay < 1 {
		hoursPerDay = 1
	}

	timeline, err := calendar.Normalize(req.CalendarRows, req.SchoolID)
	if err != nil {
		return nil, err
	}
	ps.notify(ctx, req.SessionID, sse.SSEEventScrapeProgress, map[string]any{
		"stage": "normalized", "days": len(timeline),
	})

	scheduleResult, err := calendar.Schedule(req.Lessons, timeline, hoursPerDay, req.ClassID)
	if err != nil {
		return nil, err
	}

	validation := calendar.Validate(scheduleResult.Segments, timeline)
	for _, warning := range validation.Warnings {
		ps.notify(ctx, req.SessionID, sse.SSEEventValidationWarning, map[string]any{"warning": warning})
	}

	analysis := calendar.Analyze(timeline)
	targets := calendar.ExtractTargets(req.Lessons)
	mappings := calendar.BuildLessonTargetMappings(scheduleResult.Segments, targets)

	result := &ProcessResult{
		Timeline:   timeline,
		Schedule:   scheduleResult,
		Validation: validation,
		Analysis:   analysis,
		Targets:    targets,
		Mappings:   mappings,
		Summary: map[string]any{
			"total_days":       analysis.TotalDays,
			"school_days":      analysis.SchoolDays,
			"lessons":          len(req.Lessons),
			"segments":         scheduleResult.TotalSegments,
			"scheduled":        len(scheduleResult.Segments),
			"dropped_segments": scheduleResult.Dropped,
			"learning_targets": len(targets),
			"mappings":         len(mappings),
			"schedule_valid":   validation.Valid,
		},
	}

	if req.Persist {
		calendarID, err := ps.persist(ctx, req, result)
		if err != nil {
			return nil, fmt.Errorf("persist run: %w", err)
		}
		result.CalendarID = &calendarID
	}

	ps.notify(ctx, req.SessionID, sse.SSEEventScheduleCreated, result.Summary)
	ps.log.Info("processing run complete",
		"school_id", req.SchoolID,
		"class_id", req.ClassID,
		"scheduled", len(scheduleResult.Segments),
		"dropped", scheduleResult.Dropped,
	)
	return result, nil
}

// persist writes the calendar, its days, the scheduled segment rows, the
// learning targets and the mappings in one transaction.
func (ps *processingService) persist(ctx context.Context, req ProcessRequest, result *ProcessResult) (uuid.UUID, error) {
	var calendarID uuid.UUID
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		timeline := result.Timeline

		name := req.CalendarName
		if name == "" {
			name = fmt.Sprintf("School %d calendar", req.SchoolID)
		}
		cal := &types.SchoolCalendar{
			ID:        uuid.New(),
			SchoolID:  req.SchoolID,
			Name:      name,
			StartDate: timeline[0].Date,
			EndDate:   timeline[len(timeline)-1].Date,
			Active:    true,
		}
		if _, err := ps.calendarRepo.CreateCalendar(ctx, tx, cal); err != nil {
			return fmt.Errorf("create calendar: %w", err)
		}
		calendarID = cal.ID

		days := make([]*types.CalendarDay, 0, len(timeline))
		for _, day := range timeline {
			days = append(days, &types.CalendarDay{
				CalendarID:   cal.ID,
				Date:         day.Date,
				IsSchoolDay:  day.IsSchoolDay,
				DayType:      string(day.DayType),
				AcademicYear: day.AcademicYear,
				Semester:     day.Semester,
				Notes:        day.Notes,
			})
		}
		if _, err := ps.calendarRepo.CreateDays(ctx, tx, days); err != nil {
			return fmt.Errorf("create calendar days: %w", err)
		}

		segmentRows := make([]*types.Lesson, 0, len(result.Schedule.Segments))
		for _, seg := range result.Schedule.Segments {
			planned := seg.DatePlanned
			segmentRows = append(segmentRows, &types.Lesson{
				ID:             uuid.New(),
				ClassID:        seg.ClassID,
				LessonNumber:   seg.LessonNumber,
				Title:          seg.Title,
				DatePlanned:    &planned,
				Status:         seg.Status,
				Notes:          seg.Notes,
				DurationHours:  seg.DurationHours,
				DurationType:   string(seg.DurationType),
				HourSegment:    seg.HourSegment,
				TotalSegments:  seg.TotalSegments,
				SequenceNumber: seg.SequenceNumber,
				TotalSequence:  seg.TotalSequence,
				SourceFile:     seg.SourceFile,
				FileType:       seg.FileType,
				ParsedContent:  seg.Content,
			})
		}
		if _, err := ps.lessonRepo.Create(ctx, tx, segmentRows); err != nil {
			return fmt.Errorf("create lesson segments: %w", err)
		}

		// first persisted segment of each lesson anchors that lesson's targets
		firstSegment := make(map[int]*types.Lesson)
		for _, row := range segmentRows {
			if _, seen := firstSegment[row.LessonNumber]; !seen {
				firstSegment[row.LessonNumber] = row
			}
		}

		targetRows := make([]*types.LearningTarget, 0, len(result.Targets))
		targetByCode := make(map[string]*types.LearningTarget, len(result.Targets))
		for _, target := range result.Targets {
			row := &types.LearningTarget{
				ID:            uuid.New(),
				Code:          target.Code,
				ShortName:     target.ShortName,
				Description:   target.Description,
				Domain:        target.Domain,
				BloomLevel:    target.BloomLevel,
				LessonNumber:  target.LessonNumber,
				TargetOrder:   target.TargetOrder,
				EstimatedTime: target.EstimatedTime,
			}
			if anchor, ok := firstSegment[target.LessonNumber]; ok {
				id := anchor.ID
				row.LessonID = &id
			}
			targetRows = append(targetRows, row)
			targetByCode[target.Code] = row
		}
		if _, err := ps.targetRepo.Create(ctx, tx, targetRows); err != nil {
			return fmt.Errorf("create learning targets: %w", err)
		}

		targetsByLesson := make(map[int][]*types.LearningTarget)
		for _, row := range targetRows {
			targetsByLesson[row.LessonNumber] = append(targetsByLesson[row.LessonNumber], row)
		}
		var mappingRows []*types.LessonTarget
		for _, segRow := range segmentRows {
			for _, targetRow := range targetsByLesson[segRow.LessonNumber] {
				var scheduled *time.Time
				if segRow.DatePlanned != nil {
					d := *segRow.DatePlanned
					scheduled = &d
				}
				mappingRows = append(mappingRows, &types.LessonTarget{
					LessonID:      segRow.ID,
					TargetID:      targetRow.ID,
					Weight:        1.0,
					Required:      true,
					ScheduledDate: scheduled,
				})
			}
		}
		if _, err := ps.lessonTarget.Create(ctx, tx, mappingRows); err != nil {
			return fmt.Errorf("create lesson-target mappings: %w", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return calendarID, nil
}

func (ps *processingService) notify(ctx context.Context, sessionID uuid.UUID, event sse.SSEEvent, data any) {
	if ps.notifier == nil || sessionID == uuid.Nil {
		return
	}
	ps.notifier.Notify(ctx, sessionID, event, data)
}
