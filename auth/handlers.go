package auth

// This file holds the HTTP handlers for the authentication pages: register,
// login, and logout. They are thin orchestration over the AuthService and
// Sessions; every outcome maps to either a re-rendered form (validation
// problems) or a flash-and-redirect (auth outcomes), per the error taxonomy.

import (
	"errors"
	"net/http"

	"github.com/user/chickenblog-go/apperror"
	"github.com/user/chickenblog-go/web"
)

// Handlers wraps the AuthService and Sessions to provide HTTP handlers.
type Handlers struct {
	service  *AuthService
	sessions *Sessions
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *AuthService, sessions *Sessions) *Handlers {
	return &Handlers{service: service, sessions: sessions}
}

// HandleRegisterForm renders the registration page.
func (h *Handlers) HandleRegisterForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, r, http.StatusOK, "register", &web.PageData{
			Title: "Register",
			User:  ViewerFromContext(r),
		})
	}
}

// HandleRegister processes a registration submission. On success the new
// account is signed in immediately and sent to the front page. A duplicate
// email flashes and redirects to login; invalid input re-renders the form
// with the submitted values preserved.
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := RegisterForm{
			Name:     r.FormValue("name"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}

		if err := form.Validate(); err != nil {
			h.renderRegister(w, r, form, err)
			return
		}

		user, err := h.service.Register(r.Context(), form)
		if err != nil {
			if errors.Is(err, ErrEmailTaken) {
				web.SetFlash(w, "This email is already registered, please log in.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			web.ErrorPage(w, r, statusOf(err), "Something went wrong creating your account.", ViewerFromContext(r))
			return
		}

		if err := h.sessions.Issue(w, user.ID); err != nil {
			// The account exists but the session could not start; let the
			// user log in normally instead of failing the registration.
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleLoginForm renders the login page.
func (h *Handlers) HandleLoginForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.Render(w, r, http.StatusOK, "login", &web.PageData{
			Title: "Log In",
			User:  ViewerFromContext(r),
		})
	}
}

// HandleLogin processes a login submission. An unknown account flashes and
// redirects to registration; a wrong password flashes and redirects back to
// login; success starts a session and goes to the front page.
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := LoginForm{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}

		if err := form.Validate(); err != nil {
			appErr, _ := apperror.FromError(err)
			web.Render(w, r, appErr.StatusCode(), "login", &web.PageData{
				Title:     "Log In",
				User:      ViewerFromContext(r),
				FormError: appErr.Message,
				Form:      map[string]string{"email": form.Email},
			})
			return
		}

		user, err := h.service.Authenticate(r.Context(), form)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoSuchAccount):
				web.SetFlash(w, "Account not found, please register.")
				http.Redirect(w, r, "/register", http.StatusSeeOther)
			case errors.Is(err, ErrBadPassword):
				web.SetFlash(w, "Incorrect password, please try again.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			default:
				web.ErrorPage(w, r, statusOf(err), "Something went wrong signing you in.", ViewerFromContext(r))
			}
			return
		}

		if err := h.sessions.Issue(w, user.ID); err != nil {
			web.ErrorPage(w, r, http.StatusInternalServerError, "Something went wrong signing you in.", ViewerFromContext(r))
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HandleLogout ends the session and returns to the front page.
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.Clear(w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// renderRegister re-renders the registration form after a failure, keeping
// the submitted name and email (never the password).
func (h *Handlers) renderRegister(w http.ResponseWriter, r *http.Request, form RegisterForm, err error) {
	message := "Registration failed, please try again."
	status := http.StatusBadRequest
	if appErr, ok := apperror.FromError(err); ok {
		message = appErr.Message
		status = appErr.StatusCode()
	}
	web.Render(w, r, status, "register", &web.PageData{
		Title:     "Register",
		User:      ViewerFromContext(r),
		FormError: message,
		Form: map[string]string{
			"name":  form.Name,
			"email": form.Email,
		},
	})
}

// statusOf maps any error to an HTTP status, defaulting to 500.
func statusOf(err error) int {
	if appErr, ok := apperror.FromError(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}
