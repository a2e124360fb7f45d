package repository

import (
	"context"

	"github.com/sotakano/todo-api/internal/models"
)

// TaskRepository defines the interface for task data access. Every operation
// is scoped by an explicit userID: a row owned by someone else is
// indistinguishable from a row that does not exist.
type TaskRepository interface {
	// Create inserts a new task, assigning ID and timestamps.
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task matching both id and userID.
	FindByID(ctx context.Context, id uint64, userID string) (*models.Task, error)

	// List retrieves the tasks matching the filter.
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Update applies only the fields present in fields and re-stamps
	// updated_at. Returns gorm.ErrRecordNotFound when no row matched.
	Update(ctx context.Context, id uint64, userID string, fields TaskUpdateFields) (*models.Task, error)

	// ToggleCompleted flips the completed flag and re-stamps updated_at.
	ToggleCompleted(ctx context.Context, id uint64, userID string) (*models.Task, error)

	// Delete hard-deletes a task. Returns false when no matching row existed.
	Delete(ctx context.Context, id uint64, userID string) (bool, error)
}

// TaskFilter holds filtering and sorting options for listing tasks.
type TaskFilter struct {
	UserID      string
	Completed   *bool
	SortByTitle bool
}

// TaskUpdateFields carries a partial update; nil fields are left untouched.
type TaskUpdateFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
