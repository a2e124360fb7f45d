package models

import (
	"time"
)

// Task is owned by exactly one user. Rows are hard-deleted; there is no
// soft-delete column.
type Task struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      string    `gorm:"type:varchar(64);not null;index" json:"user_id"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
