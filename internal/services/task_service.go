package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/sotakano/todo-api/internal/models"
	"github.com/sotakano/todo-api/internal/repository"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrInvalidStatusFilter = errors.New("invalid status filter: use 'all', 'pending' or 'completed'")
	ErrInvalidSortBy       = errors.New("invalid sort parameter: use 'created' or 'title'")
	ErrTitleLength         = errors.New("title must be between 1 and 200 characters")
	ErrDescriptionTooLong  = errors.New("description must be no more than 1000 characters")
)

// Status filter values accepted by ListTasks.
const (
	StatusFilterAll       = "all"
	StatusFilterPending   = "pending"
	StatusFilterCompleted = "completed"
)

// Sort values accepted by ListTasks.
const (
	SortByCreated = "created"
	SortByTitle   = "title"
)

// TaskService orchestrates task store operations under a verified identity.
// The identity always comes from the credential verifier, never from the
// request payload, and is forwarded unchanged as the store's scoping
// parameter.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput represents a partial update; nil fields are untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Completed   *bool
}

// ListTasks returns the user's tasks. An empty statusFilter or sortBy means
// the default (all / most recent first); any other unknown value is rejected
// rather than silently defaulted.
func (s *TaskService) ListTasks(ctx context.Context, userID, statusFilter, sortBy string) ([]models.Task, error) {
	filter := repository.TaskFilter{UserID: userID}

	switch statusFilter {
	case "", StatusFilterAll:
	case StatusFilterPending:
		completed := false
		filter.Completed = &completed
	case StatusFilterCompleted:
		completed := true
		filter.Completed = &completed
	default:
		return nil, ErrInvalidStatusFilter
	}

	switch sortBy {
	case "", SortByCreated:
	case SortByTitle:
		filter.SortByTitle = true
	default:
		return nil, ErrInvalidSortBy
	}

	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetTask returns a task owned by the user.
func (s *TaskService) GetTask(ctx context.Context, id uint64, userID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates the input and creates a task owned by the user.
func (s *TaskService) CreateTask(ctx context.Context, userID string, input CreateTaskInput) (*models.Task, error) {
	if n := utf8.RuneCountInString(input.Title); n < 1 || n > maxTitleLength {
		return nil, ErrTitleLength
	}
	if utf8.RuneCountInString(input.Description) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	task := &models.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to a task owned by the user. Only the
// fields present in the input are validated and written.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, userID string, input UpdateTaskInput) (*models.Task, error) {
	if input.Title != nil {
		if n := utf8.RuneCountInString(*input.Title); n < 1 || n > maxTitleLength {
			return nil, ErrTitleLength
		}
	}
	if input.Description != nil && utf8.RuneCountInString(*input.Description) > maxDescriptionLength {
		return nil, ErrDescriptionTooLong
	}

	task, err := s.taskRepo.Update(ctx, id, userID, repository.TaskUpdateFields{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// ToggleTaskCompletion flips the completed flag of a task owned by the user.
func (s *TaskService) ToggleTaskCompletion(ctx context.Context, id uint64, userID string) (*models.Task, error) {
	task, err := s.taskRepo.ToggleCompleted(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to toggle task completion: %w", err)
	}

	return task, nil
}

// DeleteTask hard-deletes a task owned by the user. A missing row reports as
// not found.
func (s *TaskService) DeleteTask(ctx context.Context, id uint64, userID string) error {
	deleted, err := s.taskRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}

	return nil
}
