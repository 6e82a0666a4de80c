package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/types"
)

type ScrapeSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.ScrapeSession) (*types.ScrapeSession, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ScrapeSession, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ScrapeSession, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, errMsg string) error
	MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, scraped, processed int, results datatypes.JSON) error
}

type scrapeSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScrapeSessionRepo(db *gorm.DB, baseLog *logger.Logger) ScrapeSessionRepo {
	return &scrapeSessionRepo{db: db, log: baseLog.With("repo", "ScrapeSessionRepo")}
}

func (sr *scrapeSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.ScrapeSession) (*types.ScrapeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (sr *scrapeSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ScrapeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.ScrapeSession
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *scrapeSessionRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.ScrapeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if limit <= 0 {
		limit = 50
	}
	var results []*types.ScrapeSession
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *scrapeSessionRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, errMsg string) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	updates := map[string]any{"status": status}
	if errMsg != "" {
		updates["error_message"] = errMsg
	}
	return transaction.WithContext(ctx).
		Model(&types.ScrapeSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (sr *scrapeSessionRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, scraped, processed int, results datatypes.JSON) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	updates := map[string]any{
		"status":          types.ScrapeStatusCompleted,
		"items_scraped":   scraped,
		"items_processed": processed,
	}
	if results != nil {
		updates["results"] = results
	}
	return transaction.WithContext(ctx).
		Model(&types.ScrapeSession{}).
		Where("id = ?", id).
		Updates(updates).Error
}
