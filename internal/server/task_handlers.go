// Backlog endpoints: CRUD, filtered listing, and the overdue and
// upcoming views.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/internal/report"
	"github.com/cofferhq/coffer/pkg/types"
)

type taskJSON struct {
	TaskID          int64               `json:"task_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Category        string              `json:"category"`
	Priority        string              `json:"priority"`
	Status          string              `json:"status"`
	DueDate         string              `json:"due_date,omitempty"`
	EstimatedAmount decimal.NullDecimal `json:"estimated_amount"`
	Notes           string              `json:"notes"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

func taskToJSON(t *types.BacklogTask) taskJSON {
	j := taskJSON{
		TaskID:          t.TaskID,
		Title:           t.Title,
		Description:     t.Description,
		Category:        t.Category,
		Priority:        t.Priority,
		Status:          t.Status,
		EstimatedAmount: t.EstimatedAmount,
		Notes:           t.Notes,
		CreatedAt:       t.CreatedAt.Format(types.TimestampLayout),
		UpdatedAt:       t.UpdatedAt.Format(types.TimestampLayout),
	}
	if !t.DueDate.IsZero() {
		j.DueDate = t.DueDate.Format(types.DateLayout)
	}
	return j
}

func tasksToJSON(tasks []types.BacklogTask) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskToJSON(&tasks[i]))
	}
	return out
}

type taskPayload struct {
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Category        string              `json:"category"`
	Priority        string              `json:"priority"`
	Status          string              `json:"status"`
	DueDate         string              `json:"due_date"`
	EstimatedAmount decimal.NullDecimal `json:"estimated_amount"`
	Notes           string              `json:"notes"`
}

// handleCreateTask creates a backlog item. Priority defaults to Medium
// and status to Pending when the request leaves them out.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req taskPayload
	if !s.decode(w, r, &req) {
		return
	}

	task := types.BacklogTask{
		UserID:          claims.UserID,
		Title:           strings.TrimSpace(req.Title),
		Description:     strings.TrimSpace(req.Description),
		Category:        req.Category,
		Priority:        req.Priority,
		Status:          req.Status,
		EstimatedAmount: req.EstimatedAmount,
		Notes:           req.Notes,
	}
	if task.Priority == "" {
		task.Priority = types.PriorityMedium
	}
	if task.Status == "" {
		task.Status = types.StatusPending
	}
	if req.DueDate != "" {
		due, err := time.Parse(types.DateLayout, req.DueDate)
		if err != nil {
			s.failValidation(w, []string{"Due date must be in YYYY-MM-DD format"})
			return
		}
		task.DueDate = due
	}
	if problems := task.Problems(); len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	if err := s.store.AddTask(&task); err != nil {
		s.storageFail(w, "adding task", err)
		return
	}
	s.respond(w, http.StatusCreated, taskToJSON(&task))
}

// handleListTasks returns the caller's tasks, optionally narrowed by
// status, category, and priority, in one of the four sort modes. The
// default order is newest created first.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	tasks, err := s.store.TasksFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "listing tasks", err)
		return
	}

	q := r.URL.Query()
	tasks = report.FilterTasks(tasks, q.Get("status"), q.Get("category"), q.Get("priority"))

	mode := q.Get("sort")
	if mode == "" {
		mode = report.TaskSortCreated
	}
	report.SortTasks(tasks, mode)

	s.respond(w, http.StatusOK, tasksToJSON(tasks))
}

type taskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
	// An empty due_date clears the deadline.
	DueDate *string `json:"due_date"`
	// The estimate can be replaced over the wire but not cleared.
	EstimatedAmount *decimal.NullDecimal `json:"estimated_amount"`
	Notes           *string              `json:"notes"`
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}
	var req taskUpdate
	if !s.decode(w, r, &req) {
		return
	}

	var problems []string
	changes := types.TaskChanges{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Priority:        req.Priority,
		Status:          req.Status,
		EstimatedAmount: req.EstimatedAmount,
		Notes:           req.Notes,
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			changes.DueDate = &time.Time{}
		} else {
			due, err := time.Parse(types.DateLayout, *req.DueDate)
			if err != nil {
				problems = append(problems, "Due date must be in YYYY-MM-DD format")
			} else {
				changes.DueDate = &due
			}
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		problems = append(problems, "Task title is required")
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		problems = append(problems, "Task description is required")
	}
	if req.Category != nil && !types.ValidTaskCategory(*req.Category) {
		problems = append(problems, "Category is not recognized")
	}
	if req.Priority != nil && !types.ValidPriority(*req.Priority) {
		problems = append(problems, "Priority is not recognized")
	}
	if req.Status != nil && !types.ValidStatus(*req.Status) {
		problems = append(problems, "Status is not recognized")
	}
	if req.EstimatedAmount != nil && req.EstimatedAmount.Valid && !req.EstimatedAmount.Decimal.IsPositive() {
		problems = append(problems, "Estimated amount must be greater than 0")
	}
	if len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	err := s.store.UpdateTask(id, claims.UserID, changes)
	if errors.Is(err, types.ErrRecordNotFound) {
		s.fail(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.storageFail(w, "updating task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	id, ok := s.idParam(w, r)
	if !ok {
		return
	}

	err := s.store.DeleteTask(id, claims.UserID)
	if errors.Is(err, types.ErrRecordNotFound) {
		s.fail(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.storageFail(w, "deleting task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleOverdueTasks(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	tasks, err := s.store.TasksFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "listing tasks", err)
		return
	}

	overdue := report.Overdue(tasks, s.now())
	report.SortTasks(overdue, report.TaskSortDueDate)
	s.respond(w, http.StatusOK, tasksToJSON(overdue))
}

// handleUpcomingTasks returns open tasks due within the requested window,
// seven days unless the days parameter says otherwise.
func (s *Server) handleUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	days, ok := s.intParam(w, r.URL.Query(), "days", 7)
	if !ok {
		return
	}

	tasks, err := s.store.TasksFor(claims.UserID)
	if err != nil {
		s.storageFail(w, "listing tasks", err)
		return
	}

	upcoming := report.DueSoon(tasks, s.now(), days)
	report.SortTasks(upcoming, report.TaskSortDueDate)
	s.respond(w, http.StatusOK, tasksToJSON(upcoming))
}
