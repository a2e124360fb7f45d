package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sotakano/todo-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository.
type GormTaskRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewTaskRepository creates a new TaskRepository. Every call runs under the
// given timeout so a wedged store surfaces an error instead of hanging the
// request.
func NewTaskRepository(db *gorm.DB, timeout time.Duration) TaskRepository {
	return &GormTaskRepository{db: db, timeout: timeout}
}

func (r *GormTaskRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// Create inserts a new task.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task under the dual id+owner predicate.
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, userID string) (*models.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves tasks matching the filter. Default order is most recent
// first; SortByTitle switches to lexicographic title order.
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}

	if filter.SortByTitle {
		query = query.Order("title ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	var tasks []models.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update applies the present fields in a single UPDATE under the dual
// predicate. Zero rows affected means the row is gone or owned by someone
// else, which both report as not found; a concurrent delete therefore never
// turns into a silent success.
func (r *GormTaskRepository) Update(ctx context.Context, id uint64, userID string, fields TaskUpdateFields) (*models.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Completed != nil {
		updates["completed"] = *fields.Completed
	}

	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id, userID)
}

// ToggleCompleted flips the completed flag in a single UPDATE.
func (r *GormTaskRepository) ToggleCompleted(ctx context.Context, id uint64, userID string) (*models.Task, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"completed":  gorm.Expr("NOT completed"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id, userID)
}

// Delete hard-deletes a task. Returns false when nothing matched.
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64, userID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
