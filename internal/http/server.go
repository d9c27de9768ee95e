package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"noura/internal/log"
	"noura/internal/session"
	appweb "noura/web"
)

// Server is the local web UI: it renders login/signup and the dashboard,
// and pulls derived state (filtered list, stats, budget status) from the
// core after each mutation. It never lets the core call into rendering.
type Server struct {
	http.Server
	templates *template.Template
	sessions  *session.Manager
	logger    *log.Logger

	// One active session per process.
	mu   sync.Mutex
	sess *session.Session

	// Clock for derived views; overridable in tests.
	nowFunc func() time.Time
}

func (s *Server) now() time.Time {
	return s.nowFunc()
}

// NewServer configures routes and templates, returning a ready-to-run
// server. A template parse failure is fatal: serving without a template
// set would turn every page into an error.
func NewServer(addr string, sessions *session.Manager, logger *log.Logger) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: r,
		},
		sessions: sessions,
		logger:   logger.WithComponent(log.ComponentHTTP),
		nowFunc:  time.Now,
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.templates = t

	r.Use(s.withRequestContext)

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, req)
		})
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Get("/", s.handleIndex)
	r.Post("/signup", s.handleSignup)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)

	r.Post("/expenses", s.handleCreateExpense)
	r.Delete("/expenses/{id}", s.handleDeleteExpense)
	r.Post("/expenses/{id}/delete", s.handleDeleteExpense)
	r.Post("/budget", s.handleSetBudget)

	// UI partials pulled by the dashboard after each mutation
	r.Get("/ui/expense-list", s.handleExpenseList)
	r.Get("/ui/stats", s.handleStats)
	r.Get("/ui/budget-status", s.handleBudgetStatus)

	r.Get("/export.csv", s.handleExport)

	return s, nil
}

// AttachSession installs a session restored at process start.
func (s *Server) AttachSession(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
}

// current returns the active session, nil when signed out.
func (s *Server) current() *session.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

func (s *Server) setSession(sess *session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
}

// withRequestContext adds security headers and request logging.
func (s *Server) withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Capture status code for the completion log
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		s.logger.InfoContext(ctx, "Request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, duration.Milliseconds())
	})
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
