package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sotakano/todo-api/internal/models"
	"github.com/sotakano/todo-api/internal/repository"
)

func setupTaskService(t *testing.T) *TaskService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Task{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewTaskService(repository.NewTaskRepository(db, 5*time.Second))
}

func TestCreateTask_BindsOwner(t *testing.T) {
	svc := setupTaskService(t)

	task, err := svc.CreateTask(context.Background(), "u1", CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "u1", task.UserID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.False(t, task.Completed)
	assert.NotZero(t, task.ID)
}

func TestCreateTask_TitleBoundaries(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: ""})
	assert.ErrorIs(t, err, ErrTitleLength)

	_, err = svc.CreateTask(ctx, "u1", CreateTaskInput{Title: strings.Repeat("a", 200)})
	assert.NoError(t, err)

	_, err = svc.CreateTask(ctx, "u1", CreateTaskInput{Title: strings.Repeat("a", 201)})
	assert.ErrorIs(t, err, ErrTitleLength)
}

func TestCreateTask_TitleLimitCountsCharactersNotBytes(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	// 200 three-byte characters must pass, 201 must not.
	_, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: strings.Repeat("あ", 200)})
	assert.NoError(t, err)

	_, err = svc.CreateTask(ctx, "u1", CreateTaskInput{Title: strings.Repeat("あ", 201)})
	assert.ErrorIs(t, err, ErrTitleLength)

	_, err = svc.CreateTask(ctx, "u1", CreateTaskInput{
		Title:       "ok",
		Description: strings.Repeat("あ", 1000),
	})
	assert.NoError(t, err)
}

func TestUpdateTask_TitleLimitCountsCharactersNotBytes(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "original"})
	require.NoError(t, err)

	title := strings.Repeat("あ", 200)
	updated, err := svc.UpdateTask(ctx, task.ID, "u1", UpdateTaskInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	long := strings.Repeat("あ", 1001)
	_, err = svc.UpdateTask(ctx, task.ID, "u1", UpdateTaskInput{Description: &long})
	assert.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestCreateTask_DescriptionBoundary(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "u1", CreateTaskInput{
		Title:       "ok",
		Description: strings.Repeat("d", 1000),
	})
	assert.NoError(t, err)

	_, err = svc.CreateTask(ctx, "u1", CreateTaskInput{
		Title:       "ok",
		Description: strings.Repeat("d", 1001),
	})
	assert.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestListTasks_RejectsUnknownEnums(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	_, err := svc.ListTasks(ctx, "u1", "done", "")
	assert.ErrorIs(t, err, ErrInvalidStatusFilter)

	_, err = svc.ListTasks(ctx, "u1", "", "priority")
	assert.ErrorIs(t, err, ErrInvalidSortBy)
}

func TestListTasks_EmptyMeansDefault(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "a"})
	require.NoError(t, err)

	for _, args := range [][2]string{{"", ""}, {"all", "created"}} {
		tasks, err := svc.ListTasks(ctx, "u1", args[0], args[1])
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	}
}

func TestListTasks_CompletedFilter(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	pending, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "pending"})
	require.NoError(t, err)
	done, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "done"})
	require.NoError(t, err)
	_, err = svc.ToggleTaskCompletion(ctx, done.ID, "u1")
	require.NoError(t, err)

	tasks, err := svc.ListTasks(ctx, "u1", StatusFilterCompleted, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, done.ID, tasks[0].ID)

	tasks, err = svc.ListTasks(ctx, "u1", StatusFilterPending, "")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, pending.ID, tasks[0].ID)
}

func TestUpdateTask_ValidatesOnlyPresentFields(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "original", Description: "desc"})
	require.NoError(t, err)

	// Payload with only completed must not require title or description.
	completed := true
	updated, err := svc.UpdateTask(ctx, task.ID, "u1", UpdateTaskInput{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "original", updated.Title)
	assert.Equal(t, "desc", updated.Description)

	// A present but invalid title is still rejected.
	empty := ""
	_, err = svc.UpdateTask(ctx, task.ID, "u1", UpdateTaskInput{Title: &empty})
	assert.ErrorIs(t, err, ErrTitleLength)

	long := strings.Repeat("d", 1001)
	_, err = svc.UpdateTask(ctx, task.ID, "u1", UpdateTaskInput{Description: &long})
	assert.ErrorIs(t, err, ErrDescriptionTooLong)
}

func TestUpdateTask_CrossUserNotFound(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "mine"})
	require.NoError(t, err)

	title := "stolen"
	_, err = svc.UpdateTask(ctx, task.ID, "u2", UpdateTaskInput{Title: &title})
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestGetTask_CrossUserNotFound(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "mine"})
	require.NoError(t, err)

	_, err = svc.GetTask(ctx, task.ID, "u2")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestToggleTaskCompletion_TwiceRestoresState(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "toggle me"})
	require.NoError(t, err)

	once, err := svc.ToggleTaskCompletion(ctx, task.ID, "u1")
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := svc.ToggleTaskCompletion(ctx, task.ID, "u1")
	require.NoError(t, err)
	assert.False(t, twice.Completed)
}

func TestDeleteTask_MissingRowNotFound(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	err := svc.DeleteTask(ctx, 999, "u1")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTask_CrossUserNotFound(t *testing.T) {
	svc := setupTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, "u1", CreateTaskInput{Title: "mine"})
	require.NoError(t, err)

	err = svc.DeleteTask(ctx, task.ID, "u2")
	assert.ErrorIs(t, err, ErrTaskNotFound)

	// Owner still sees it.
	_, err = svc.GetTask(ctx, task.ID, "u1")
	assert.NoError(t, err)
}
