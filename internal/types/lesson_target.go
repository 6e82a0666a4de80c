package types

import (
	"time"

	"github.com/google/uuid"
)

type LessonTarget struct {
	ID             uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_lesson_target,unique" json:"lesson_id"`
	Lesson         *Lesson         `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"lesson,omitempty"`
	TargetID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_lesson_target,unique" json:"target_id"`
	Target         *LearningTarget `gorm:"constraint:OnDelete:RESTRICT;foreignKey:TargetID;references:ID" json:"target,omitempty"`
	Weight         float64         `gorm:"column:weight;not null;default:1.0" json:"weight"`
	Required       bool            `gorm:"column:required;not null;default:true" json:"required"`
	ScheduledDate  *time.Time      `gorm:"column:scheduled_date" json:"scheduled_date,omitempty"`
	CompletionDate *time.Time      `gorm:"column:completion_date" json:"completion_date,omitempty"`
	CreatedAt      time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (LessonTarget) TableName() string { return "lesson_target" }
