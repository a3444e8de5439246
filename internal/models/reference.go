package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups debts; system categories are shared by every user
type Category struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	IsSystem  bool      `gorm:"column:is_system;default:false" json:"is_system"`
	UserID    *string   `gorm:"type:text;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "debt_categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Owner returns the owning user id, nil for rows without an owner
func (c *Category) Owner() *string { return c.UserID }

// System reports whether the row is shared across all users
func (c *Category) System() bool { return c.IsSystem }

// Bank is a lender a bank loan can reference
type Bank struct {
	ID        string    `gorm:"type:text;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	IsSystem  bool      `gorm:"column:is_system;default:false" json:"is_system"`
	UserID    *string   `gorm:"type:text;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Bank
func (Bank) TableName() string {
	return "banks"
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

func (b *Bank) Owner() *string { return b.UserID }

func (b *Bank) System() bool { return b.IsSystem }
