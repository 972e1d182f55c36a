package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"tasktree/internal/core/domain"
	"tasktree/internal/core/ports"
)

const taskColumns = `id, name, description, parent_task_id, status, created_by, created_at, updated_at`

const (
	findTaskByIDQuery      = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	findOwnedTaskByIDQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND created_by = ?`
	findChildrenQuery      = `SELECT ` + taskColumns + ` FROM tasks WHERE parent_task_id = ? ORDER BY id`
	findRootsQuery         = `SELECT ` + taskColumns + ` FROM tasks WHERE parent_task_id IS NULL AND created_by = ? ORDER BY id`
	findChildrenOfQuery    = `SELECT ` + taskColumns + ` FROM tasks WHERE parent_task_id IN (?) ORDER BY id`
	findCompletedQuery     = `
SELECT ` + taskColumns + `
FROM tasks
WHERE created_by = ?
  AND status = ?
  AND updated_at BETWEEN ? AND ?
ORDER BY updated_at, id`

	insertTaskQuery = `
INSERT INTO tasks (name, description, parent_task_id, status, created_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateTaskFieldsQuery = `UPDATE tasks SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	updateTaskParentQuery = `UPDATE tasks SET parent_task_id = ?, updated_at = ? WHERE id = ?`
	// updated_at is assigned first so it still sees the old status on MySQL.
	updateTaskStatusQuery = `
UPDATE tasks
SET updated_at = CASE WHEN status = ? THEN updated_at ELSE ? END,
    status = ?
WHERE id = ?`
	deleteTaskQuery    = `DELETE FROM tasks WHERE id = ?`
	countTaskByIDQuery = `SELECT COUNT(*) FROM tasks WHERE id = ?`
)

type TaskRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
	now func() time.Time
}

type taskRow struct {
	ID           uint64         `db:"id"`
	Name         string         `db:"name"`
	Description  sql.NullString `db:"description"`
	ParentTaskID sql.NullInt64  `db:"parent_task_id"`
	Status       string         `db:"status"`
	CreatedBy    uint64         `db:"created_by"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, ext: db, now: utcNow}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint64) (domain.Task, error) {
	return r.getTask(ctx, findTaskByIDQuery, id)
}

func (r *TaskRepository) FindOwnedByID(ctx context.Context, id, ownerID uint64) (domain.Task, error) {
	return r.getTask(ctx, findOwnedTaskByIDQuery, id, ownerID)
}

func (r *TaskRepository) FindChildren(ctx context.Context, parentID uint64) ([]domain.Task, error) {
	return r.selectTasks(ctx, findChildrenQuery, parentID)
}

// FindRoots loads the owner's root tasks and their direct children in two queries.
func (r *TaskRepository) FindRoots(ctx context.Context, ownerID uint64) ([]domain.Task, error) {
	roots, err := r.selectTasks(ctx, findRootsQuery, ownerID)
	if err != nil || len(roots) == 0 {
		return roots, err
	}

	ids := make([]uint64, 0, len(roots))
	for _, root := range roots {
		ids = append(ids, root.ID)
	}

	query, args, err := sqlx.In(findChildrenOfQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("expand root ids: %w", err)
	}

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, r.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list subtasks of roots: %w", err)
	}

	byParent := make(map[uint64][]domain.Task, len(roots))
	for _, row := range rows {
		child := mapTaskRowToDomainTask(row)
		byParent[*child.ParentTaskID] = append(byParent[*child.ParentTaskID], child)
	}
	for i := range roots {
		roots[i].Subtasks = byParent[roots[i].ID]
		if roots[i].Subtasks == nil {
			roots[i].Subtasks = []domain.Task{}
		}
	}

	return roots, nil
}

func (r *TaskRepository) FindCompletedBetween(ctx context.Context, ownerID uint64, from, to time.Time) ([]domain.Task, error) {
	return r.selectTasks(ctx, findCompletedQuery, ownerID, string(domain.TaskStatusCompleted), from.UTC(), to.UTC())
}

func (r *TaskRepository) Create(ctx context.Context, task domain.NewTask) (domain.Task, error) {
	now := r.now()
	args := []any{
		task.Name,
		nullableString(task.Description),
		nullableID(task.ParentTaskID),
		string(task.Status),
		task.CreatedBy,
		now,
		now,
	}

	id, err := insertReturningID(ctx, r.ext, insertTaskQuery, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *TaskRepository) UpdateFields(ctx context.Context, id uint64, fields domain.TaskFields) error {
	res, err := r.ext.ExecContext(ctx, r.ext.Rebind(updateTaskFieldsQuery),
		fields.Name, nullableString(fields.Description), r.now(), id)
	if err != nil {
		return fmt.Errorf("update task %d: %w", id, err)
	}
	return r.ensureAffected(ctx, res, id)
}

func (r *TaskRepository) UpdateParent(ctx context.Context, id uint64, parentID *uint64) error {
	res, err := r.ext.ExecContext(ctx, r.ext.Rebind(updateTaskParentQuery), nullableID(parentID), r.now(), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("update parent of task %d: %w", id, err)
	}
	return r.ensureAffected(ctx, res, id)
}

// UpdateStatus bumps updated_at only when the status actually changes, so a
// recomputed ancestor keeps the time it was really completed.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint64, status domain.TaskStatus) error {
	res, err := r.ext.ExecContext(ctx, r.ext.Rebind(updateTaskStatusQuery),
		string(status), r.now(), string(status), id)
	if err != nil {
		return fmt.Errorf("update status of task %d: %w", id, err)
	}
	return r.ensureAffected(ctx, res, id)
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.ext.ExecContext(ctx, r.ext.Rebind(deleteTaskQuery), id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) WithinTx(ctx context.Context, fn func(repo ports.TaskRepository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&TaskRepository{ext: tx, now: r.now}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *TaskRepository) getTask(ctx context.Context, query string, args ...any) (domain.Task, error) {
	var row taskRow
	if err := sqlx.GetContext(ctx, r.ext, &row, r.ext.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, r.ext, &rows, r.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

// ensureAffected tells a missing row apart from an update that changed
// nothing, which MySQL also reports as zero affected rows.
func (r *TaskRepository) ensureAffected(ctx context.Context, res sql.Result, id uint64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var count int
	if err := sqlx.GetContext(ctx, r.ext, &count, r.ext.Rebind(countTaskByIDQuery), id); err != nil {
		return fmt.Errorf("count task %d: %w", id, err)
	}
	if count == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Name:      row.Name,
		Status:    domain.TaskStatus(row.Status),
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.ParentTaskID.Valid {
		value := uint64(row.ParentTaskID.Int64)
		task.ParentTaskID = &value
	}

	return task
}
