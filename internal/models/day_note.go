package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DayNote is a free-text note a user attaches to a calendar day
type DayNote struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	UserID    *string   `gorm:"type:text;uniqueIndex:idx_day_notes_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_day_notes_user_date" json:"date"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for DayNote
func (DayNote) TableName() string {
	return "day_notes"
}

func (n *DayNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

func (n *DayNote) Owner() *string { return n.UserID }

func (n *DayNote) System() bool { return false }

// DayNoteResponse is the JSON response format for day notes
type DayNoteResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Note string `json:"note"`
}

// ToResponse converts DayNote to DayNoteResponse
func (n *DayNote) ToResponse() DayNoteResponse {
	return DayNoteResponse{ID: n.ID, Date: n.Date.Format(DateLayout), Note: n.Note}
}
