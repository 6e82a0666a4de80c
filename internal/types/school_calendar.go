package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SchoolCalendar struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SchoolID  int            `gorm:"column:school_id;not null;index" json:"school_id"`
	Name      string         `gorm:"column:name;not null" json:"name"`
	StartDate time.Time      `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   time.Time      `gorm:"column:end_date;not null" json:"end_date"`
	Active    bool           `gorm:"column:active;not null;default:true" json:"active"`
	Notes     string         `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (SchoolCalendar) TableName() string { return "school_calendar" }
