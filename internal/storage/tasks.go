package storage

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"homedash/internal/core"
	"homedash/internal/result"
	"homedash/internal/services"
)

// TaskStore is the SQLite-backed task repository.
type TaskStore struct {
	db *sql.DB
}

var _ services.TaskRepository = (*TaskStore)(nil)

const taskColumns = "id, user_id, title, completed, due_date, created_at"

func (s *TaskStore) FindByID(ctx context.Context, id string) result.Result[*core.Task] {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)

	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return result.Ok[*core.Task](nil)
	}
	if err != nil {
		return result.Err[*core.Task](core.NewStorageError("find_task", err))
	}
	return result.Ok(&task)
}

func (s *TaskStore) Create(ctx context.Context, task core.Task) result.Result[core.Task] {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, completed, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, boolToInt(task.Completed),
		task.DueDate, formatTime(task.CreatedAt))
	if err != nil {
		return result.Err[core.Task](core.NewStorageError("create_task", err))
	}

	slog.InfoContext(ctx, "Task saved", "id", task.ID, "user_id", task.UserID)
	return result.Ok(task)
}

// Update writes only the fields present in upd. The SET clause is built
// from the tagged update struct, never from caller-supplied column names.
func (s *TaskStore) Update(ctx context.Context, id string, upd core.TaskUpdate) result.Result[core.Task] {
	if upd.Empty() {
		return s.mustFind(ctx, id, "update_task")
	}

	sets := []string{}
	args := []any{}
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *upd.DueDate)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return result.Err[core.Task](core.NewStorageError("update_task", err))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return result.Err[core.Task](core.NewNotFoundError("task", id))
	}

	return s.mustFind(ctx, id, "update_task")
}

func (s *TaskStore) Delete(ctx context.Context, id string) result.Result[bool] {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return result.Err[bool](core.NewStorageError("delete_task", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return result.Err[bool](core.NewStorageError("delete_task", err))
	}
	return result.Ok(affected > 0)
}

func (s *TaskStore) SetCompleted(ctx context.Context, id string, completed bool) result.Result[core.Task] {
	res, err := s.db.ExecContext(ctx,
		"UPDATE tasks SET completed = ? WHERE id = ?", boolToInt(completed), id)
	if err != nil {
		return result.Err[core.Task](core.NewStorageError("set_task_completed", err))
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return result.Err[core.Task](core.NewNotFoundError("task", id))
	}

	return s.mustFind(ctx, id, "set_task_completed")
}

func (s *TaskStore) ListByUser(ctx context.Context, userID string) result.Result[[]core.Task] {
	return s.list(ctx, "list_tasks",
		"SELECT "+taskColumns+` FROM tasks
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
}

func (s *TaskStore) ListPending(ctx context.Context, userID string) result.Result[[]core.Task] {
	return s.list(ctx, "list_pending_tasks",
		"SELECT "+taskColumns+` FROM tasks
		WHERE user_id = ? AND completed = 0
		ORDER BY created_at ASC, id ASC`, userID)
}

func (s *TaskStore) ListCompleted(ctx context.Context, userID string) result.Result[[]core.Task] {
	return s.list(ctx, "list_completed_tasks",
		"SELECT "+taskColumns+` FROM tasks
		WHERE user_id = ? AND completed = 1
		ORDER BY created_at ASC, id ASC`, userID)
}

func (s *TaskStore) ListOverdue(ctx context.Context, userID string, today core.Date) result.Result[[]core.Task] {
	return s.list(ctx, "list_overdue_tasks",
		"SELECT "+taskColumns+` FROM tasks
		WHERE user_id = ? AND completed = 0 AND due_date IS NOT NULL AND due_date < ?
		ORDER BY due_date ASC, id ASC`, userID, today)
}

func (s *TaskStore) Summary(ctx context.Context, userID string, today core.Date) result.Result[core.TaskSummary] {
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completed = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN completed = 0 AND due_date IS NOT NULL AND due_date < ? THEN 1 ELSE 0 END), 0)
		FROM tasks
		WHERE user_id = ?`, today, userID)

	var summary core.TaskSummary
	if err := row.Scan(&summary.Total, &summary.Completed, &summary.Pending, &summary.Overdue); err != nil {
		return result.Err[core.TaskSummary](core.NewStorageError("task_summary", err))
	}
	return result.Ok(summary)
}

func (s *TaskStore) list(ctx context.Context, op, query string, args ...any) result.Result[[]core.Task] {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return result.Err[[]core.Task](core.NewStorageError(op, err))
	}
	defer rows.Close()

	tasks := []core.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return result.Err[[]core.Task](core.NewStorageError(op, err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return result.Err[[]core.Task](core.NewStorageError(op, err))
	}

	return result.Ok(tasks)
}

// mustFind re-reads a row that was just written; absence at this point is
// a storage-level inconsistency, not a caller mistake.
func (s *TaskStore) mustFind(ctx context.Context, id, op string) result.Result[core.Task] {
	found := s.FindByID(ctx, id)
	if found.IsErr() {
		return result.Err[core.Task](found.Err())
	}
	if found.Value() == nil {
		return result.Err[core.Task](core.NewStorageError(op, errors.New("row missing after write")))
	}
	return result.Ok(*found.Value())
}

func scanTask(row rowScanner) (core.Task, error) {
	var (
		task      core.Task
		completed int64
		createdAt string
	)
	if err := row.Scan(&task.ID, &task.UserID, &task.Title, &completed, &task.DueDate, &createdAt); err != nil {
		return core.Task{}, err
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return core.Task{}, err
	}

	task.Completed = completed != 0
	task.CreatedAt = created
	return task, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
