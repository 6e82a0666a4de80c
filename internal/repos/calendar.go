package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edtrack/calendar-backend/internal/logger"
	"github.com/edtrack/calendar-backend/internal/types"
)

type CalendarRepo interface {
	CreateCalendar(ctx context.Context, tx *gorm.DB, cal *types.SchoolCalendar) (*types.SchoolCalendar, error)
	CreateDays(ctx context.Context, tx *gorm.DB, days []*types.CalendarDay) ([]*types.CalendarDay, error)
	GetCalendarByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SchoolCalendar, error)
	ListCalendarsBySchool(ctx context.Context, tx *gorm.DB, schoolID int) ([]*types.SchoolCalendar, error)
	ListDaysByCalendar(ctx context.Context, tx *gorm.DB, calendarID uuid.UUID) ([]*types.CalendarDay, error)
	DeleteDaysInRange(ctx context.Context, tx *gorm.DB, calendarID uuid.UUID, from, to time.Time) error
}

type calendarRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarRepo(db *gorm.DB, baseLog *logger.Logger) CalendarRepo {
	return &calendarRepo{db: db, log: baseLog.With("repo", "CalendarRepo")}
}

func (cr *calendarRepo) CreateCalendar(ctx context.Context, tx *gorm.DB, cal *types.SchoolCalendar) (*types.SchoolCalendar, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if err := transaction.WithContext(ctx).Create(cal).Error; err != nil {
		return nil, err
	}
	return cal, nil
}

func (cr *calendarRepo) CreateDays(ctx context.Context, tx *gorm.DB, days []*types.CalendarDay) ([]*types.CalendarDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	if len(days) == 0 {
		return []*types.CalendarDay{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (cr *calendarRepo) GetCalendarByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SchoolCalendar, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var result types.SchoolCalendar
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *calendarRepo) ListCalendarsBySchool(ctx context.Context, tx *gorm.DB, schoolID int) ([]*types.SchoolCalendar, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.SchoolCalendar
	if err := transaction.WithContext(ctx).
		Where("school_id = ?", schoolID).
		Order("start_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *calendarRepo) ListDaysByCalendar(ctx context.Context, tx *gorm.DB, calendarID uuid.UUID) ([]*types.CalendarDay, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	var results []*types.CalendarDay
	if err := transaction.WithContext(ctx).
		Where("calendar_id = ?", calendarID).
		Order("date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *calendarRepo) DeleteDaysInRange(ctx context.Context, tx *gorm.DB, calendarID uuid.UUID, from, to time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}
	return transaction.WithContext(ctx).
		Where("calendar_id = ? AND date >= ? AND date <= ?", calendarID, from, to).
		Delete(&types.CalendarDay{}).Error
}
