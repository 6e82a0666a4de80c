package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/types"
)

type SourceFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, file *types.SourceFile) (*types.SourceFile, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SourceFile, error)
	ListBySchool(ctx context.Context, tx *gorm.DB, schoolID int) ([]*types.SourceFile, error)
}

type sourceFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSourceFileRepo(db *gorm.DB, baseLog *logger.Logger) SourceFileRepo {
	return &sourceFileRepo{db: db, log: baseLog.With("repo", "SourceFileRepo")}
}

func (fr *sourceFileRepo) Create(ctx context.Context, tx *gorm.DB, file *types.SourceFile) (*types.SourceFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if err := transaction.WithContext(ctx).Create(file).Error; err != nil {
		return nil, err
	}
	return file, nil
}

func (fr *sourceFileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SourceFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.SourceFile
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *sourceFileRepo) ListBySchool(ctx context.Context, tx *gorm.DB, schoolID int) ([]*types.SourceFile, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.SourceFile
	if err := transaction.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
