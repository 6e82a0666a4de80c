package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edtrack/calendar-backend/internal/calendar"
	"github.com/edtrack/calendar-backend/internal/clients/gcp"
	"github.com/edtrack/calendar-backend/internal/ingestion"
	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/repos"
	"github.com/edtrack/calendar-backend/internal/types"
)

const (
	UploadKindCalendar = "calendar"
	UploadKindLessons  = "lessons"
)

// UploadResult is what came out of one uploaded file: the stored record plus
// whichever shape the caller asked for.
type UploadResult struct {
	FileID       uuid.UUID         `json:"file_id"`
	FileType     string            `json:"file_type"`
	BucketPath   string            `json:"bucket_path,omitempty"`
	CalendarRows []calendar.RawRow `json:"calendar_rows,omitempty"`
	Lessons      []calendar.Lesson `json:"lessons,omitempty"`
	TextLength   int               `json:"text_length"`
}

// FileService ingests uploaded calendar/curriculum files: bucket storage,
// type sniffing, OCR when needed, and recovery of rows or lessons from the
// extracted text.
type FileService interface {
	ProcessUpload(ctx context.Context, kind, originalName, mimeType string, data []byte, schoolID, classID int) (*UploadResult, error)
}

type fileService struct {
	log       *logger.Logger
	extractor *ingestion.Extractor
	bucket    gcp.BucketService
	fileRepo  repos.SourceFileRepo
}

func NewFileService(
	log *logger.Logger,
	extractor *ingestion.Extractor,
	bucket gcp.BucketService,
	fileRepo repos.SourceFileRepo,
) FileService {
	serviceLog := log.With("service", "FileService")
	return &fileService{
		log:       serviceLog,
		extractor: extractor,
		bucket:    bucket,
		fileRepo:  fileRepo,
	}
}

func (fs *fileService) ProcessUpload(ctx context.Context, kind, originalName, mimeType string, data []byte, schoolID, classID int) (*UploadResult, error) {
	if kind != UploadKindCalendar && kind != UploadKindLessons {
		return nil, fmt.Errorf("unknown upload kind %q", kind)
	}

	fileID := uuid.New()
	bucketPath := ""
	if fs.bucket != nil {
		key := fmt.Sprintf("uploads/%s/%s%s",
			time.Now().UTC().Format("2006/01/02"), fileID, strings.ToLower(filepath.Ext(originalName)))
		if err := fs.bucket.UploadFile(ctx, key, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("store upload: %w", err)
		}
		bucketPath = key
	}

	text, fileType, err := fs.extractor.ExtractText(ctx, originalName, mimeType, data)
	if err != nil {
		return nil, err
	}

	record := &types.SourceFile{
		ID:           fileID,
		OriginalName: originalName,
		MimeType:     mimeType,
		FileType:     fileType,
		SizeBytes:    int64(len(data)),
		BucketPath:   bucketPath,
		SchoolID:     schoolID,
		ClassID:      classID,
	}
	if fs.fileRepo != nil {
		if _, err := fs.fileRepo.Create(ctx, nil, record); err != nil {
			return nil, fmt.Errorf("record upload: %w", err)
		}
	}

	result := &UploadResult{
		FileID:     fileID,
		FileType:   fileType,
		BucketPath: bucketPath,
		TextLength: len(text),
	}
	switch kind {
	case UploadKindCalendar:
		if fileType == "csv" {
			rows, err := ingestion.ParseCSVRows(data)
			if err != nil {
				return nil, err
			}
			result.CalendarRows = rows
		} else {
			result.CalendarRows = fs.extractor.CalendarRows(text)
		}
	case UploadKindLessons:
		result.Lessons = fs.extractor.Lessons(text, classID, originalName)
	}

	fs.log.Info("processed upload",
		"file_id", fileID,
		"kind", kind,
		"file_type", fileType,
		"rows", len(result.CalendarRows),
		"lessons", len(result.Lessons),
	)
	return result, nil
}
