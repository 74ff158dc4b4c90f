// Package server exposes the coffer core over HTTP: a chi router with
// JSON request and response bodies, bearer token sessions, and permissive
// CORS so browser dashboards can call it from anywhere. Handlers stay
// thin; validation lives in pkg/types and the aggregation in
// internal/report.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cofferhq/coffer/internal/auth"
	"github.com/cofferhq/coffer/internal/csvstore"
	"github.com/cofferhq/coffer/internal/rates"
	"github.com/cofferhq/coffer/pkg/types"
)

// Server holds the wired core services behind the HTTP handlers.
type Server struct {
	store    *csvstore.Store
	sessions *auth.Sessions
	rates    *rates.Client
	log      *zap.SugaredLogger

	now func() time.Time
}

// New wires a server over an open store, a session registry, and an
// exchange rate client. A nil logger disables logging.
func New(store *csvstore.Store, sessions *auth.Sessions, rates *rates.Client, log *zap.SugaredLogger) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{
		store:    store,
		sessions: sessions,
		rates:    rates,
		log:      log,
		now:      time.Now,
	}
}

// Router builds the full route tree. Registration, login, and the
// currency code list are open; everything else requires a bearer token.
func (s *Server) Router() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(s.logRequests)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	mux.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)
		api.Get("/currency/codes", s.handleCurrencyCodes)

		api.Group(func(private chi.Router) {
			private.Use(s.requireAuth)

			private.Post("/auth/logout", s.handleLogout)
			private.Get("/me", s.handleMe)
			private.Patch("/me", s.handleUpdateMe)
			private.Put("/me/password", s.handleChangePassword)

			private.Post("/expenses", s.handleCreateExpense)
			private.Get("/expenses", s.handleListExpenses)
			private.Get("/expenses/export", s.handleExportExpenses)
			private.Get("/expenses/summary", s.handleExpenseSummary)
			private.Patch("/expenses/{id}", s.handleUpdateExpense)
			private.Delete("/expenses/{id}", s.handleDeleteExpense)

			private.Post("/tasks", s.handleCreateTask)
			private.Get("/tasks", s.handleListTasks)
			private.Get("/tasks/overdue", s.handleOverdueTasks)
			private.Get("/tasks/upcoming", s.handleUpcomingTasks)
			private.Patch("/tasks/{id}", s.handleUpdateTask)
			private.Delete("/tasks/{id}", s.handleDeleteTask)

			private.Get("/dashboard", s.handleDashboard)
			private.Get("/analytics/daily", s.handleDailySeries)
			private.Get("/analytics/categories", s.handleCategoryTotals)
			private.Get("/analytics/payment-methods", s.handlePaymentMethodTotals)

			private.Route("/calc", func(calc chi.Router) {
				calc.Post("/emi", s.handleEMI)
				calc.Post("/investment", s.handleInvestment)
				calc.Post("/tax", s.handleTax)
				calc.Post("/mortgage", s.handleMortgage)
				calc.Post("/retirement", s.handleRetirement)
				calc.Post("/savings-goal", s.handleSavingsGoal)
				calc.Post("/simple-interest", s.handleSimpleInterest)
			})

			private.Post("/currency/convert", s.handleConvert)
		})
	})
	return mux
}

type errorBody struct {
	Error string `json:"error"`
}

type problemsBody struct {
	Errors []string `json:"errors"`
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Errorw("encoding response", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, message string) {
	s.respond(w, status, errorBody{Error: message})
}

func (s *Server) failValidation(w http.ResponseWriter, problems []string) {
	s.respond(w, http.StatusBadRequest, problemsBody{Errors: problems})
}

// storageFail keeps the underlying cause in the server log and answers
// with a short generic message.
func (s *Server) storageFail(w http.ResponseWriter, op string, err error) {
	s.log.Errorw(op, "error", err)
	s.fail(w, http.StatusInternalServerError, "storage failure")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// idParam reads the {id} route parameter. Anything that does not name a
// positive integer cannot name a record, so it comes back as a 404 like
// any other miss.
func (s *Server) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.fail(w, http.StatusNotFound, "record not found")
		return 0, false
	}
	return id, true
}

// dateParam reads an optional YYYY-MM-DD query parameter. Missing or
// empty comes back as the zero time.
func (s *Server) dateParam(w http.ResponseWriter, q url.Values, name string) (time.Time, bool) {
	raw := q.Get(name)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(types.DateLayout, raw)
	if err != nil {
		s.failValidation(w, []string{fmt.Sprintf("Parameter %q must be a date in YYYY-MM-DD format", name)})
		return time.Time{}, false
	}
	return t, true
}

// intParam reads an optional integer query parameter, falling back to a
// default when missing.
func (s *Server) intParam(w http.ResponseWriter, q url.Values, name string, fallback int) (int, bool) {
	raw := q.Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.failValidation(w, []string{fmt.Sprintf("Parameter %q must be an integer", name)})
		return 0, false
	}
	return n, true
}
