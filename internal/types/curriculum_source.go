package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CurriculumSource struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string         `gorm:"column:name;not null" json:"name"`
	URL         string         `gorm:"column:url;not null" json:"url"`
	SourceType  string         `gorm:"column:source_type" json:"source_type,omitempty"`
	SchoolID    int            `gorm:"column:school_id" json:"school_id,omitempty"`
	ClassID     int            `gorm:"column:class_id" json:"class_id,omitempty"`
	IsActive    bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Config      datatypes.JSON `gorm:"column:config;type:jsonb" json:"config,omitempty"`
	LastScraped *time.Time     `gorm:"column:last_scraped" json:"last_scraped,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (CurriculumSource) TableName() string { return "curriculum_source" }
