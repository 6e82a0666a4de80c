package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/types"
)

type CurriculumSourceRepo interface {
	UpsertByURL(ctx context.Context, tx *gorm.DB, src *types.CurriculumSource) (*types.CurriculumSource, error)
	ListActive(ctx context.Context, tx *gorm.DB, schoolID int) ([]*types.CurriculumSource, error)
}

type curriculumSourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCurriculumSourceRepo(db *gorm.DB, baseLog *logger.Logger) CurriculumSourceRepo {
	return &curriculumSourceRepo{db: db, log: baseLog.With("repo", "CurriculumSourceRepo")}
}

// UpsertByURL keys sources on their URL: a rescrape of a known source
// refreshes its metadata and last_scraped instead of inserting a duplicate.
func (cr *curriculumSourceRepo) UpsertByURL(ctx context.Context, tx *gorm.DB, src *types.CurriculumSource) (*types.CurriculumSource, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var existing types.CurriculumSource
	err := transaction.WithContext(ctx).
		Where("url = ?", src.URL).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		now := time.Now().UTC()
		src.LastScraped = &now
		if err := transaction.WithContext(ctx).Create(src).Error; err != nil {
			return nil, err
		}
		return src, nil
	}
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"name":         src.Name,
		"source_type":  src.SourceType,
		"config":       src.Config,
		"last_scraped": time.Now().UTC(),
	}
	if err := transaction.WithContext(ctx).
		Model(&existing).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (cr *curriculumSourceRepo) ListActive(ctx context.Context, tx *gorm.DB, schoolID int) ([]*types.CurriculumSource, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.CurriculumSource
	query := transaction.WithContext(ctx).Where("is_active = ?", true)
	if schoolID != 0 {
		query = query.Where("school_id = ?", schoolID)
	}
	if err := query.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
