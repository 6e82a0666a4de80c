package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ScrapeStatusPending   = "pending"
	ScrapeStatusRunning   = "running"
	ScrapeStatusCompleted = "completed"
	ScrapeStatusFailed    = "failed"
)

type ScrapeSession struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionType    string         `gorm:"column:session_type;not null" json:"session_type"`
	SourceURL      string         `gorm:"column:source_url;not null" json:"source_url"`
	SchoolID       int            `gorm:"column:school_id" json:"school_id,omitempty"`
	ClassID        int            `gorm:"column:class_id" json:"class_id,omitempty"`
	Status         string         `gorm:"column:status;not null;default:pending" json:"status"`
	ItemsScraped   int            `gorm:"column:items_scraped;not null;default:0" json:"items_scraped"`
	ItemsProcessed int            `gorm:"column:items_processed;not null;default:0" json:"items_processed"`
	ErrorMessage   string         `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	Results        datatypes.JSON `gorm:"column:results;type:jsonb" json:"results,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (ScrapeSession) TableName() string { return "scrape_session" }
