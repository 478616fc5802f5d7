package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"homedash/internal/core"
	"homedash/internal/result"
)

// TaskService handles to-do items. Completion state changes only through
// ToggleTaskCompletion so the pending/completed transition lives in one
// place.
type TaskService struct {
	repo TaskRepository
}

// NewTaskService creates a TaskService.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// CreateTask validates the input and persists a new task. Tasks are
// always created pending, whatever the caller tried to supply.
func (s *TaskService) CreateTask(ctx context.Context, in core.CreateTaskInput) result.Result[core.Task] {
	if err := in.Validate(); err != nil {
		return result.Err[core.Task](err)
	}

	task := core.Task{
		ID:        uuid.NewString(),
		UserID:    in.UserID,
		Title:     in.Title,
		Completed: false,
		DueDate:   in.DueDate,
		CreatedAt: time.Now().UTC(),
	}

	return s.repo.Create(ctx, task)
}

// GetTasksByUser returns all tasks in creation order.
func (s *TaskService) GetTasksByUser(ctx context.Context, userID string) result.Result[[]core.Task] {
	return s.repo.ListByUser(ctx, userID)
}

// GetPendingTasks returns uncompleted tasks in creation order.
func (s *TaskService) GetPendingTasks(ctx context.Context, userID string) result.Result[[]core.Task] {
	return s.repo.ListPending(ctx, userID)
}

// GetCompletedTasks returns completed tasks in creation order.
func (s *TaskService) GetCompletedTasks(ctx context.Context, userID string) result.Result[[]core.Task] {
	return s.repo.ListCompleted(ctx, userID)
}

// ToggleTaskCompletion sets the completed flag unconditionally; setting
// it to its current value is not an error. Unknown ids fail with a
// not-found kind.
func (s *TaskService) ToggleTaskCompletion(ctx context.Context, taskID string, completed bool) result.Result[core.Task] {
	existing := s.repo.FindByID(ctx, taskID)
	if existing.IsErr() {
		return result.Err[core.Task](existing.Err())
	}
	if existing.Value() == nil {
		return result.Err[core.Task](core.NewNotFoundError("task", taskID))
	}

	return s.repo.SetCompleted(ctx, taskID, completed)
}

// UpdateTask revises only the fields present in upd, leaving the rest
// untouched. The completed flag cannot be changed through this path.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, upd core.TaskUpdate) result.Result[core.Task] {
	if err := upd.Validate(); err != nil {
		return result.Err[core.Task](err)
	}

	existing := s.repo.FindByID(ctx, taskID)
	if existing.IsErr() {
		return result.Err[core.Task](existing.Err())
	}
	if existing.Value() == nil {
		return result.Err[core.Task](core.NewNotFoundError("task", taskID))
	}

	return s.repo.Update(ctx, taskID, upd)
}

// GetTaskSummary recomputes the partition counts fresh on every call:
// overdue depends on the current wall-clock date, so caching would go
// stale at midnight.
func (s *TaskService) GetTaskSummary(ctx context.Context, userID string) result.Result[core.TaskSummary] {
	return s.repo.Summary(ctx, userID, core.Today())
}
