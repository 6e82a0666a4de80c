package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/types"
)

type LearningTargetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, targets []*types.LearningTarget) ([]*types.LearningTarget, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.LearningTarget, error)
	ListByLessonNumber(ctx context.Context, tx *gorm.DB, lessonNumber int) ([]*types.LearningTarget, error)
}

type learningTargetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningTargetRepo(db *gorm.DB, baseLog *logger.Logger) LearningTargetRepo {
	return &learningTargetRepo{db: db, log: baseLog.With("repo", "LearningTargetRepo")}
}

func (tr *learningTargetRepo) Create(ctx context.Context, tx *gorm.DB, targets []*types.LearningTarget) ([]*types.LearningTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(targets) == 0 {
		return []*types.LearningTarget{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

func (tr *learningTargetRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.LearningTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.LearningTarget
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *learningTargetRepo) ListByLessonNumber(ctx context.Context, tx *gorm.DB, lessonNumber int) ([]*types.LearningTarget, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.LearningTarget
	if err := transaction.WithContext(ctx).
		Where("lesson_number = ?", lessonNumber).
		Order("target_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
