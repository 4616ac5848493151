package reportserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"quizdoc/internal/report"
	"quizdoc/internal/results"
)

const (
	// indexLimit caps the attempts listed on the index page and is the
	// default page size of the attempts API.
	indexLimit = 200
	// maxLimit is the largest page the attempts API returns.
	maxLimit = 5000
)

// NewHandler builds the HTTP handler serving recorded attempts from db.
func NewHandler(db *sql.DB) (http.Handler, error) {
	if db == nil {
		return nil, errors.New("reportserver: db is required")
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Get("/healthz", serveHealth)
	r.Get("/", serveIndex(db))
	r.Get("/attempts/{attemptID}", serveAttempt(db))
	r.Route("/api", func(r chi.Router) {
		r.Get("/attempts", serveAttemptsJSON(db))
		r.Get("/attempts/{attemptID}", serveAttemptJSON(db))
	})
	return r, nil
}

// serveHealth reports liveness.
func serveHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// serveIndex lists recorded attempts as HTML.
func serveIndex(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := results.ListAttempts(r.Context(), db, indexLimit)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		renderHTML(w, r, report.IndexPage(summaries))
	}
}

// serveAttempt renders one attempt as HTML.
func serveAttempt(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempt, ok := loadAttempt(w, r, db)
		if !ok {
			return
		}
		renderHTML(w, r, report.AttemptPage(attempt))
	}
}

// serveAttemptsJSON lists recorded attempts as JSON, newest first. The
// optional limit query parameter bounds the list; truncated reports whether
// older attempts were left out.
func serveAttemptsJSON(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query().Get("limit"))
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		summaries, err := results.ListAttempts(r.Context(), db, limit+1)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		truncated := len(summaries) > limit
		if truncated {
			summaries = summaries[:limit]
		}
		if summaries == nil {
			summaries = []results.AttemptSummary{}
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"attempts":  summaries,
			"limit":     limit,
			"truncated": truncated,
		})
	}
}

// parseLimit reads the limit query parameter, defaulting to indexLimit.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return indexLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("limit must be a whole number between 1 and %d", maxLimit)
	}
	return limit, nil
}

// serveAttemptJSON returns one attempt as JSON.
func serveAttemptJSON(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempt, ok := loadAttempt(w, r, db)
		if !ok {
			return
		}
		respondJSON(w, http.StatusOK, attempt)
	}
}

// loadAttempt resolves the attempt id route parameter, writing 404 or 500
// when it cannot be loaded.
func loadAttempt(w http.ResponseWriter, r *http.Request, db *sql.DB) (results.Attempt, bool) {
	attempt, err := results.GetAttempt(r.Context(), db, chi.URLParam(r, "attemptID"))
	if errors.Is(err, results.ErrAttemptNotFound) {
		http.Error(w, "attempt not found", http.StatusNotFound)
		return results.Attempt{}, false
	}
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return results.Attempt{}, false
	}
	return attempt, true
}

func renderHTML(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
