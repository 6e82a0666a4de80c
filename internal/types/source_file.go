package types

import (
	"time"

	"github.com/google/uuid"
)

// SourceFile records an uploaded calendar/curriculum document and where its
// bytes landed in the bucket.
type SourceFile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	OriginalName string    `gorm:"column:original_name;not null" json:"original_name"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type,omitempty"`
	FileType     string    `gorm:"column:file_type" json:"file_type,omitempty"`
	SizeBytes    int64     `gorm:"column:size_bytes;not null;default:0" json:"size_bytes"`
	BucketPath   string    `gorm:"column:bucket_path" json:"bucket_path,omitempty"`
	SchoolID     int       `gorm:"column:school_id" json:"school_id,omitempty"`
	ClassID      int       `gorm:"column:class_id" json:"class_id,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SourceFile) TableName() string { return "source_file" }
