// User table operations: registration, lookups, and profile updates.
package csvstore

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cofferhq/coffer/pkg/types"
)

func encodeUser(u *types.User) []string {
	lastLogin := ""
	if !u.LastLogin.IsZero() {
		lastLogin = u.LastLogin.Format(types.TimestampLayout)
	}
	return []string{
		strconv.FormatInt(u.UserID, 10),
		u.Username,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.CreatedAt.Format(types.TimestampLayout),
		lastLogin,
		strconv.FormatBool(u.IsActive),
	}
}

func decodeUser(row []string) (types.User, error) {
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return types.User{}, fmt.Errorf("parsing user_id %q: %w", row[0], err)
	}
	createdAt, err := time.Parse(types.TimestampLayout, row[5])
	if err != nil {
		return types.User{}, fmt.Errorf("parsing created_at %q: %w", row[5], err)
	}

	u := types.User{
		UserID:       id,
		Username:     row[1],
		Email:        row[2],
		PasswordHash: row[3],
		FullName:     row[4],
		CreatedAt:    createdAt,
	}
	if row[6] != "" {
		lastLogin, err := time.Parse(types.TimestampLayout, row[6])
		if err != nil {
			return types.User{}, fmt.Errorf("parsing last_login %q: %w", row[6], err)
		}
		u.LastLogin = lastLogin
	}
	if row[7] != "" {
		// ParseBool tolerates the "True"/"False" spelling older files carry.
		active, err := strconv.ParseBool(row[7])
		if err != nil {
			return types.User{}, fmt.Errorf("parsing is_active %q: %w", row[7], err)
		}
		u.IsActive = active
	}
	return u, nil
}

// loadUsers reads the whole user table. Rows that fail to decode are
// skipped with a logged warning.
func (s *Store) loadUsers() ([]types.User, error) {
	rows, err := s.readTable(usersSchema)
	if err != nil {
		return nil, err
	}
	users := make([]types.User, 0, len(rows))
	for _, row := range rows {
		u, err := decodeUser(row)
		if err != nil {
			s.log.Warnw("skipping undecodable row", "table", usersSchema.file, "error", err)
			continue
		}
		users = append(users, u)
	}
	return users, nil
}

func (s *Store) writeUsers(users []types.User) error {
	rows := make([][]string, 0, len(users))
	for i := range users {
		rows = append(rows, encodeUser(&users[i]))
	}
	return writeTable(s.tablePath(usersSchema), usersSchema, rows)
}

// checkAvailability scans for username and email conflicts,
// case-insensitively. Username conflicts are reported before email
// conflicts.
func checkAvailability(users []types.User, username, email string) error {
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return types.ErrUsernameTaken
		}
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return types.ErrEmailTaken
		}
	}
	return nil
}

// CheckAvailability reports whether the username and email are both free,
// comparing case-insensitively against every existing account. Returns
// ErrUsernameTaken or ErrEmailTaken on conflict.
func (s *Store) CheckAvailability(username, email string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	users, err := s.loadUsers()
	if err != nil {
		s.log.Errorw("checking availability", "error", err)
		return fmt.Errorf("loading users: %w", err)
	}
	return checkAvailability(users, username, email)
}

// CreateUser registers an account: it verifies uniqueness, assigns the
// next user id and the creation timestamp, normalizes the username and
// email, and appends the record. The passed user is updated in place with
// the assigned fields.
func (s *Store) CreateUser(u *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	users, err := s.loadUsers()
	if err != nil {
		s.log.Errorw("creating user", "error", err)
		return fmt.Errorf("loading users: %w", err)
	}

	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if err := checkAvailability(users, u.Username, u.Email); err != nil {
		return err
	}

	// max+1 keeps ids unique even after rows are removed; a plain row
	// count would reissue ids.
	var maxID int64
	for i := range users {
		if users[i].UserID > maxID {
			maxID = users[i].UserID
		}
	}
	u.UserID = maxID + 1
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	users = append(users, *u)
	if err := s.writeUsers(users); err != nil {
		s.log.Errorw("creating user", "error", err)
		return fmt.Errorf("writing users: %w", err)
	}
	return nil
}

// UserByUsername returns the account with exactly this username.
// Returns ErrRecordNotFound when no account matches.
func (s *Store) UserByUsername(username string) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	users, err := s.loadUsers()
	if err != nil {
		s.log.Errorw("looking up user", "error", err)
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for i := range users {
		if users[i].Username == username {
			u := users[i]
			return &u, nil
		}
	}
	return nil, types.ErrRecordNotFound
}

// UserByID returns the account with this id.
// Returns ErrRecordNotFound when no account matches.
func (s *Store) UserByID(id int64) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.open {
		return nil, types.ErrStoreClosed
	}

	users, err := s.loadUsers()
	if err != nil {
		s.log.Errorw("looking up user", "error", err)
		return nil, fmt.Errorf("loading users: %w", err)
	}
	for i := range users {
		if users[i].UserID == id {
			u := users[i]
			return &u, nil
		}
	}
	return nil, types.ErrRecordNotFound
}

// UpdateUser applies the change set to the account with this id and
// rewrites the table. Returns ErrRecordNotFound when no account matches.
func (s *Store) UpdateUser(id int64, changes types.UserChanges) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return types.ErrStoreClosed
	}

	users, err := s.loadUsers()
	if err != nil {
		s.log.Errorw("updating user", "error", err)
		return fmt.Errorf("loading users: %w", err)
	}

	for i := range users {
		if users[i].UserID != id {
			continue
		}
		applyUserChanges(&users[i], changes)
		if err := s.writeUsers(users); err != nil {
			s.log.Errorw("updating user", "error", err)
			return fmt.Errorf("writing users: %w", err)
		}
		return nil
	}
	return types.ErrRecordNotFound
}

func applyUserChanges(u *types.User, changes types.UserChanges) {
	if changes.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*changes.Email))
	}
	if changes.FullName != nil {
		u.FullName = strings.TrimSpace(*changes.FullName)
	}
	if changes.PasswordHash != nil {
		u.PasswordHash = *changes.PasswordHash
	}
	if changes.LastLogin != nil {
		u.LastLogin = *changes.LastLogin
	}
	if changes.IsActive != nil {
		u.IsActive = *changes.IsActive
	}
}
