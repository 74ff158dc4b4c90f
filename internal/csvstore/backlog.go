// Backlog table operations.
package csvstore

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/pkg/types"
)

func encodeTask(t *types.BacklogTask) []string {
	dueDate := ""
	if !t.DueDate.IsZero() {
		dueDate = t.DueDate.Format(types.DateLayout)
	}
	estimate := ""
	if t.EstimatedAmount.Valid {
		estimate = t.EstimatedAmount.Decimal.String()
	}
	return []string{
		strconv.FormatInt(t.TaskID, 10),
		strconv.FormatInt(t.UserID, 10),
		t.Title,
		t.Description,
		t.Category,
		t.Priority,
		t.Status,
		dueDate,
		estimate,
		t.Notes,
		t.CreatedAt.Format(types.TimestampLayout),
		t.UpdatedAt.Format(types.TimestampLayout),
	}
}

func decodeTask(row []string) (types.BacklogTask, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return types.BacklogTask{}, fmt.Errorf("parsing task_id %q: %w", row[0], err)
	}
	userID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return types.BacklogTask{}, fmt.Errorf("parsing user_id %q: %w", row[1], err)
	}
	createdAt, err := time.Parse(types.TimestampLayout, row[10])
	if err != nil {
		return types.BacklogTask{}, fmt.Errorf("parsing created_at %q: %w", row[10], err)
	}
	updatedAt, err := time.Parse(types.TimestampLayout, row[11])
	if err != nil {
		return types.BacklogTask{}, fmt.Errorf("parsing updated_at %q: %w", row[11], err)
	}

	t := types.BacklogTask{
		TaskID:      id,
		UserID:      userID,
		Title:       row[2],
		Description: row[3],
		Category:    row[4],
		Priority:    row[5],
		Status:      row[6],
		Notes:       row[9],
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if row[7] != "" {
		due, err := time.Parse(types.DateLayout, row[7])
		if err != nil {
			return types.BacklogTask{}, fmt.Errorf("parsing due_date %q: %w", row[7], err)
		}
		t.DueDate = due
	}
	if row[8] != "" {
		estimate, err := decimal.NewFromString(row[8])
		if err != nil {
			return types.BacklogTask{}, fmt.Errorf("parsing estimated_amount %q: %w", row[8], err)
		}
		t.EstimatedAmount = decimal.NullDecimal{Valid: true, Decimal: estimate}
	}
	return t, nil
}

func (s *Store) loadTasks() ([]types.BacklogTask, error) {
	rows, err := s.readTable(backlogSchema)
	if err != nil {
		return nil, err
	}
	tasks := make([]types.BacklogTask, 0, len(rows))
	for _, row := range rows {
		t, err := decodeTask(row)
		if err != nil {
			s.log.Warnw("skipping undecodable row", "table", backlogSchema.file, "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *Store) writeTasks(tasks []types.BacklogTask) error {
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		rows = append(rows, encodeTask(&tasks[i]))
	}
	return writeTable(s.tablePath(backlogSchema), backlogSchema, rows)
}

// AddTask assigns the next task id and both timestamps, then appends the
// record. The passed task is updated in place.
func (s *Store) AddTask(t *types.BacklogTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Errorw("adding task", "error", err)
		return fmt.Errorf("loading tasks: %w", err)
	}

	var maxID int64
	for i := range tasks {
		if tasks[i].TaskID > maxID {
			maxID = tasks[i].TaskID
		}
	}
	t.TaskID = maxID + 1
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	tasks = append(tasks, *t)
	if err := s.writeTasks(tasks); err != nil {
		s.log.Errorw("adding task", "error", err)
		return fmt.Errorf("writing tasks: %w", err)
	}
	return nil
}

// TasksFor returns the user's tasks ordered newest created_at first.
// Records sharing a timestamp keep their file order. A user with no
// records gets an empty slice, not an error.
func (s *Store) TasksFor(userID int64) ([]types.BacklogTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Errorw("loading tasks", "error", err)
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	mine := make([]types.BacklogTask, 0)
	for i := range tasks {
		if tasks[i].UserID == userID {
			mine = append(mine, tasks[i])
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	return mine, nil
}

// UpdateTask applies the change set to the task with this id, provided it
// belongs to the user, refreshes UpdatedAt, and rewrites the table. A
// missing id and a foreign owner both come back as ErrRecordNotFound.
func (s *Store) UpdateTask(id, userID int64, changes types.TaskChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Errorw("updating task", "error", err)
		return fmt.Errorf("loading tasks: %w", err)
	}

	for i := range tasks {
		if tasks[i].TaskID != id || tasks[i].UserID != userID {
			continue
		}
		applyTaskChanges(&tasks[i], changes)
		tasks[i].UpdatedAt = time.Now()
		if err := s.writeTasks(tasks); err != nil {
			s.log.Errorw("updating task", "error", err)
			return fmt.Errorf("writing tasks: %w", err)
		}
		return nil
	}
	return types.ErrRecordNotFound
}

// DeleteTask removes the task with this id, provided it belongs to the
// user, and rewrites the table. A missing id and a foreign owner both come
// back as ErrRecordNotFound.
func (s *Store) DeleteTask(id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	tasks, err := s.loadTasks()
	if err != nil {
		s.log.Errorw("deleting task", "error", err)
		return fmt.Errorf("loading tasks: %w", err)
	}

	kept := tasks[:0]
	found := false
	for i := range tasks {
		if tasks[i].TaskID == id && tasks[i].UserID == userID {
			found = true
			continue
		}
		kept = append(kept, tasks[i])
	}
	if !found {
		return types.ErrRecordNotFound
	}

	if err := s.writeTasks(kept); err != nil {
		s.log.Errorw("deleting task", "error", err)
		return fmt.Errorf("writing tasks: %w", err)
	}
	return nil
}

func applyTaskChanges(t *types.BacklogTask, changes types.TaskChanges) {
	if changes.Title != nil {
		t.Title = *changes.Title
	}
	if changes.Description != nil {
		t.Description = *changes.Description
	}
	if changes.Category != nil {
		t.Category = *changes.Category
	}
	if changes.Priority != nil {
		t.Priority = *changes.Priority
	}
	if changes.Status != nil {
		t.Status = *changes.Status
	}
	if changes.DueDate != nil {
		t.DueDate = *changes.DueDate
	}
	if changes.EstimatedAmount != nil {
		t.EstimatedAmount = *changes.EstimatedAmount
	}
	if changes.Notes != nil {
		t.Notes = *changes.Notes
	}
}
