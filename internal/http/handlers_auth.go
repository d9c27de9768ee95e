package http

import (
	"errors"
	"net/http"

	"noura/internal/identity"
	"noura/internal/log"
)

// handleIndex renders the login page when signed out, the dashboard
// otherwise. The dashboard re-applies the filter from the query string so
// a reload keeps the current view.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.current()
	if sess == nil {
		s.render(w, r, "login.html", nil)
		return
	}

	filter := ParseFilterParams(r.URL.Query())
	s.render(w, r, "dashboard.html", newDashboardData(sess, filter, s.now()))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form submission").Write(w)
		return
	}

	username := sanitizeInput(r.FormValue("username"))
	email := sanitizeInput(r.FormValue("email"))
	password := r.FormValue("password")

	if password != r.FormValue("confirmPassword") {
		UnprocessableEntityError(errPasswordMismatch.Error()).Write(w)
		return
	}

	if err := s.sessions.Register(ctx, username, email, password); err != nil {
		switch {
		case errors.Is(err, identity.ErrUserExists):
			UnprocessableEntityError("That username is already taken").Write(w)
		case errors.Is(err, identity.ErrUsernameTooShort),
			errors.Is(err, identity.ErrPasswordTooShort):
			UnprocessableEntityError(err.Error()).Write(w)
		default:
			s.logger.ErrorContext(ctx, "Signup failed",
				log.FieldUser, username,
				log.FieldError, err)
			InternalServerError("Could not create the account").Write(w)
		}
		return
	}

	// New accounts go straight to the dashboard.
	sess, err := s.sessions.Login(ctx, username, password)
	if err != nil {
		s.logger.ErrorContext(ctx, "Login after signup failed",
			log.FieldUser, username,
			log.FieldError, err)
		InternalServerError("Account created, but signing in failed").Write(w)
		return
	}
	s.setSession(sess)

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		BadRequestError("Invalid form submission").Write(w)
		return
	}

	username := sanitizeInput(r.FormValue("username"))
	password := r.FormValue("password")

	sess, err := s.sessions.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			UnauthorizedError("Invalid username or password").Write(w)
			return
		}
		s.logger.ErrorContext(ctx, "Login failed",
			log.FieldUser, username,
			log.FieldError, err)
		InternalServerError("Could not sign in").Write(w)
		return
	}
	s.setSession(sess)

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := s.current()
	if err := s.sessions.Logout(ctx, sess); err != nil {
		s.logger.WarnContext(ctx, "Logout cleanup failed", log.FieldError, err)
	}
	s.setSession(nil)

	w.Header().Set("HX-Redirect", "/")
	w.WriteHeader(http.StatusOK)
}
