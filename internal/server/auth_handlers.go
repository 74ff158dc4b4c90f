// Account endpoints: registration, login, logout, profile, password.
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cofferhq/coffer/internal/auth"
	"github.com/cofferhq/coffer/pkg/types"
)

type userJSON struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	LastLogin string `json:"last_login,omitempty"`
}

func userToJSON(u *types.User) userJSON {
	j := userJSON{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(types.TimestampLayout),
	}
	if !u.LastLogin.IsZero() {
		j.LastLogin = u.LastLogin.Format(types.TimestampLayout)
	}
	return j
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decode(w, r, &req) {
		return
	}

	if problems := types.RegistrationProblems(req.Username, req.Email, req.Password); len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Errorw("hashing password", "error", err)
		s.fail(w, http.StatusInternalServerError, "hashing password")
		return
	}

	user := types.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		IsActive:     true,
	}
	switch err := s.store.CreateUser(&user); {
	case errors.Is(err, types.ErrUsernameTaken):
		s.failValidation(w, []string{"Username already exists"})
	case errors.Is(err, types.ErrEmailTaken):
		s.failValidation(w, []string{"Email already exists"})
	case err != nil:
		s.storageFail(w, "creating user", err)
	default:
		s.log.Infow("user registered", "user_id", user.UserID, "username", user.Username)
		s.respond(w, http.StatusCreated, userToJSON(&user))
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userJSON `json:"user"`
}

// handleLogin checks the credentials against the exact stored username.
// Unknown accounts, deactivated accounts, and wrong passwords all get the
// same answer.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.store.UserByUsername(strings.TrimSpace(req.Username))
	if errors.Is(err, types.ErrRecordNotFound) {
		s.fail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		s.storageFail(w, "looking up user", err)
		return
	}
	if !user.IsActive || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.fail(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.sessions.Issue(user.UserID, user.Username)
	if err != nil {
		s.log.Errorw("issuing token", "error", err)
		s.fail(w, http.StatusInternalServerError, "issuing token")
		return
	}

	// A failure to record the login time does not block the login.
	now := s.now()
	if err := s.store.UpdateUser(user.UserID, types.UserChanges{LastLogin: &now}); err != nil {
		s.log.Warnw("recording last login", "error", err)
	}
	user.LastLogin = now

	s.log.Infow("user logged in", "user_id", user.UserID, "username", user.Username)
	s.respond(w, http.StatusOK, loginResponse{Token: token, User: userToJSON(user)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	if err := s.sessions.Revoke(token); err != nil {
		s.fail(w, http.StatusUnauthorized, "invalid token")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	user, err := s.store.UserByID(claims.UserID)
	if errors.Is(err, types.ErrRecordNotFound) {
		s.fail(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		s.storageFail(w, "looking up user", err)
		return
	}
	s.respond(w, http.StatusOK, userToJSON(user))
}

type profileUpdate struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req profileUpdate
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.store.UserByID(claims.UserID)
	if err != nil {
		s.storageFail(w, "looking up user", err)
		return
	}

	if req.Email != nil {
		if !types.ValidEmail(*req.Email) {
			s.failValidation(w, []string{"Please enter a valid email address"})
			return
		}
		// Re-submitting the current address is not a conflict.
		if !strings.EqualFold(strings.TrimSpace(*req.Email), user.Email) {
			if err := s.store.CheckAvailability("", *req.Email); errors.Is(err, types.ErrEmailTaken) {
				s.failValidation(w, []string{"Email already exists"})
				return
			} else if err != nil {
				s.storageFail(w, "checking email", err)
				return
			}
		}
	}

	changes := types.UserChanges{Email: req.Email, FullName: req.FullName}
	if err := s.store.UpdateUser(claims.UserID, changes); err != nil {
		s.storageFail(w, "updating profile", err)
		return
	}

	user, err = s.store.UserByID(claims.UserID)
	if err != nil {
		s.storageFail(w, "looking up user", err)
		return
	}
	s.respond(w, http.StatusOK, userToJSON(user))
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	var req passwordChangeRequest
	if !s.decode(w, r, &req) {
		return
	}

	user, err := s.store.UserByID(claims.UserID)
	if err != nil {
		s.storageFail(w, "looking up user", err)
		return
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		s.fail(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}
	if problems := types.PasswordProblems(req.NewPassword); len(problems) > 0 {
		s.failValidation(w, problems)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.log.Errorw("hashing password", "error", err)
		s.fail(w, http.StatusInternalServerError, "hashing password")
		return
	}
	if err := s.store.UpdateUser(claims.UserID, types.UserChanges{PasswordHash: &hash}); err != nil {
		s.storageFail(w, "updating password", err)
		return
	}

	s.log.Infow("password changed", "user_id", claims.UserID)
	w.WriteHeader(http.StatusNoContent)
}
