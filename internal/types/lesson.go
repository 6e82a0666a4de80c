package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Lesson is one scheduled hour segment of a curriculum lesson. A parent
// lesson spanning several hours persists as several rows sharing a
// lesson_number.
type Lesson struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClassID        int            `gorm:"column:class_id;not null;index" json:"class_id"`
	LessonNumber   int            `gorm:"column:lesson_number;not null" json:"lesson_number"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	DatePlanned    *time.Time     `gorm:"column:date_planned" json:"date_planned,omitempty"`
	DateDelivered  *time.Time     `gorm:"column:date_delivered" json:"date_delivered,omitempty"`
	Status         string         `gorm:"column:status;not null;default:planned" json:"status"`
	Notes          string         `gorm:"column:notes" json:"notes,omitempty"`
	DurationHours  float64        `gorm:"column:duration_hours;not null;default:1.0" json:"duration_hours"`
	DurationType   string         `gorm:"column:duration_type" json:"duration_type,omitempty"`
	HourSegment    int            `gorm:"column:hour_segment" json:"hour_segment"`
	TotalSegments  int            `gorm:"column:total_segments" json:"total_segments"`
	SequenceNumber *int           `gorm:"column:sequence_number" json:"sequence_number,omitempty"`
	TotalSequence  *int           `gorm:"column:total_sequence" json:"total_sequence,omitempty"`
	SourceFile     string         `gorm:"column:source_file" json:"source_file,omitempty"`
	FileType       string         `gorm:"column:file_type" json:"file_type,omitempty"`
	ParsedContent  string         `gorm:"column:parsed_content;type:text" json:"parsed_content,omitempty"`
	Metadata       datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }
