package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/types"
)

type LessonTargetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, mappings []*types.LessonTarget) ([]*types.LessonTarget, error)
	ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.LessonTarget, error)
	ListByTarget(ctx context.Context, tx *gorm.DB, targetID uuid.UUID) ([]*types.LessonTarget, error)
}

type lessonTargetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonTargetRepo(db *gorm.DB, baseLog *logger.Logger) LessonTargetRepo {
	return &lessonTargetRepo{db: db, log: baseLog.With("repo", "LessonTargetRepo")}
}

func (mr *lessonTargetRepo) Create(ctx context.Context, tx *gorm.DB, mappings []*types.LessonTarget) ([]*types.LessonTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if len(mappings) == 0 {
		return []*types.LessonTarget{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (mr *lessonTargetRepo) ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.LessonTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.LessonTarget
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *lessonTargetRepo) ListByTarget(ctx context.Context, tx *gorm.DB, targetID uuid.UUID) ([]*types.LessonTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.LessonTarget
	if err := transaction.WithContext(ctx).
		Where("target_id = ?", targetID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
