package types

import (
	"time"

	"github.com/google/uuid"
)

type CalendarDay struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CalendarID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_calendar_day_date,unique" json:"calendar_id"`
	Calendar     *SchoolCalendar `gorm:"constraint:OnDelete:CASCADE;foreignKey:CalendarID;references:ID" json:"calendar,omitempty"`
	Date         time.Time       `gorm:"column:date;not null;index:idx_calendar_day_date,unique" json:"date"`
	IsSchoolDay  bool            `gorm:"column:is_school_day;not null;default:true" json:"is_school_day"`
	DayType      string          `gorm:"column:day_type;not null;default:regular" json:"day_type"`
	AcademicYear string          `gorm:"column:academic_year" json:"academic_year"`
	Semester     string          `gorm:"column:semester" json:"semester"`
	Notes        string          `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt    time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (CalendarDay) TableName() string { return "calendar_day" }
