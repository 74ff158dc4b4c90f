// Expense table operations.
package csvstore

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cofferhq/coffer/pkg/types"
)

func encodeExpense(e *types.Expense) []string {
	return []string{
		strconv.FormatInt(e.ExpenseID, 10),
		strconv.FormatInt(e.UserID, 10),
		e.Date.Format(types.DateLayout),
		e.Amount.String(),
		e.Category,
		e.Description,
		e.PaymentMethod,
		e.Notes,
		e.CreatedAt.Format(types.TimestampLayout),
	}
}

func decodeExpense(row []string) (types.Expense, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return types.Expense{}, fmt.Errorf("parsing expense_id %q: %w", row[0], err)
	}
	userID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return types.Expense{}, fmt.Errorf("parsing user_id %q: %w", row[1], err)
	}
	date, err := time.Parse(types.DateLayout, row[2])
	if err != nil {
		return types.Expense{}, fmt.Errorf("parsing date %q: %w", row[2], err)
	}
	amount, err := decimal.NewFromString(row[3])
	if err != nil {
		return types.Expense{}, fmt.Errorf("parsing amount %q: %w", row[3], err)
	}
	createdAt, err := time.Parse(types.TimestampLayout, row[8])
	if err != nil {
		return types.Expense{}, fmt.Errorf("parsing created_at %q: %w", row[8], err)
	}

	return types.Expense{
		ExpenseID:     id,
		UserID:        userID,
		Date:          date,
		Amount:        amount,
		Category:      row[4],
		Description:   row[5],
		PaymentMethod: row[6],
		Notes:         row[7],
		CreatedAt:     createdAt,
	}, nil
}

func (s *Store) loadExpenses() ([]types.Expense, error) {
	rows, err := s.readTable(expensesSchema)
	if err != nil {
		return nil, err
	}
	expenses := make([]types.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := decodeExpense(row)
		if err != nil {
			s.log.Warnw("skipping undecodable row", "table", expensesSchema.file, "error", err)
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func (s *Store) writeExpenses(expenses []types.Expense) error {
	rows := make([][]string, 0, len(expenses))
	for i := range expenses {
		rows = append(rows, encodeExpense(&expenses[i]))
	}
	return writeTable(s.tablePath(expensesSchema), expensesSchema, rows)
}

// AddExpense assigns the next expense id and the creation timestamp, then
// appends the record. The passed expense is updated in place.
func (s *Store) AddExpense(e *types.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	expenses, err := s.loadExpenses()
	if err != nil {
		s.log.Errorw("adding expense", "error", err)
		return fmt.Errorf("loading expenses: %w", err)
	}

	var maxID int64
	for i := range expenses {
		if expenses[i].ExpenseID > maxID {
			maxID = expenses[i].ExpenseID
		}
	}
	e.ExpenseID = maxID + 1
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	expenses = append(expenses, *e)
	if err := s.writeExpenses(expenses); err != nil {
		s.log.Errorw("adding expense", "error", err)
		return fmt.Errorf("writing expenses: %w", err)
	}
	return nil
}

// ExpensesFor returns the user's expenses ordered newest date first.
// Records sharing a date keep their file order. A user with no records
// gets an empty slice, not an error.
func (s *Store) ExpensesFor(userID int64) ([]types.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	expenses, err := s.loadExpenses()
	if err != nil {
		s.log.Errorw("loading expenses", "error", err)
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	mine := make([]types.Expense, 0)
	for i := range expenses {
		if expenses[i].UserID == userID {
			mine = append(mine, expenses[i])
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Date.After(mine[j].Date)
	})
	return mine, nil
}

// ExportExpenses renders the user's expenses as a standalone CSV document
// with the same columns as the table file, ordered newest date first.
func (s *Store) ExportExpenses(userID int64) ([]byte, error) {
	expenses, err := s.ExpensesFor(userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(expensesSchema.header); err != nil {
		return nil, fmt.Errorf("writing export header: %w", err)
	}
	for i := range expenses {
		if err := w.Write(encodeExpense(&expenses[i])); err != nil {
			return nil, fmt.Errorf("writing export row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing export: %w", err)
	}
	return buf.Bytes(), nil
}

// UpdateExpense applies the change set to the expense with this id,
// provided it belongs to the user, and rewrites the table. A missing id
// and a foreign owner both come back as ErrRecordNotFound.
func (s *Store) UpdateExpense(id, userID int64, changes types.ExpenseChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	expenses, err := s.loadExpenses()
	if err != nil {
		s.log.Errorw("updating expense", "error", err)
		return fmt.Errorf("loading expenses: %w", err)
	}

	for i := range expenses {
		if expenses[i].ExpenseID != id || expenses[i].UserID != userID {
			continue
		}
		applyExpenseChanges(&expenses[i], changes)
		if err := s.writeExpenses(expenses); err != nil {
			s.log.Errorw("updating expense", "error", err)
			return fmt.Errorf("writing expenses: %w", err)
		}
		return nil
	}
	return types.ErrRecordNotFound
}

// DeleteExpense removes the expense with this id, provided it belongs to
// the user, and rewrites the table. A missing id and a foreign owner both
// come back as ErrRecordNotFound.
func (s *Store) DeleteExpense(id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	expenses, err := s.loadExpenses()
	if err != nil {
		s.log.Errorw("deleting expense", "error", err)
		return fmt.Errorf("loading expenses: %w", err)
	}

	kept := expenses[:0]
	found := false
	for i := range expenses {
		if expenses[i].ExpenseID == id && expenses[i].UserID == userID {
			found = true
			continue
		}
		kept = append(kept, expenses[i])
	}
	if !found {
		return types.ErrRecordNotFound
	}

	if err := s.writeExpenses(kept); err != nil {
		s.log.Errorw("deleting expense", "error", err)
		return fmt.Errorf("writing expenses: %w", err)
	}
	return nil
}

func applyExpenseChanges(e *types.Expense, changes types.ExpenseChanges) {
	if changes.Date != nil {
		e.Date = *changes.Date
	}
	if changes.Amount != nil {
		e.Amount = *changes.Amount
	}
	if changes.Category != nil {
		e.Category = *changes.Category
	}
	if changes.Description != nil {
		e.Description = *changes.Description
	}
	if changes.PaymentMethod != nil {
		e.PaymentMethod = *changes.PaymentMethod
	}
	if changes.Notes != nil {
		e.Notes = *changes.Notes
	}
}
