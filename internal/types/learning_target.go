package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearningTarget struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code          string         `gorm:"column:code;uniqueIndex" json:"code"`
	ShortName     string         `gorm:"column:short_name;not null" json:"short_name"`
	Description   string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Domain        string         `gorm:"column:domain" json:"domain,omitempty"`
	BloomLevel    string         `gorm:"column:bloom_level" json:"bloom_level,omitempty"`
	Tags          datatypes.JSON `gorm:"column:tags;type:jsonb" json:"tags,omitempty"`
	LessonID      *uuid.UUID     `gorm:"type:uuid;index" json:"lesson_id,omitempty"`
	Lesson        *Lesson        `gorm:"constraint:OnDelete:SET NULL;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	LessonNumber  int            `gorm:"column:lesson_number" json:"lesson_number"`
	TargetOrder   int            `gorm:"column:target_order" json:"target_order"`
	EstimatedTime float64        `gorm:"column:estimated_time" json:"estimated_time"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningTarget) TableName() string { return "learning_target" }
