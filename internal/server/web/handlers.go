// Package web serves the browser UI: the login/signup page and the people
// dashboard, rendered server-side with html/template.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Harshinireddy05/DayntTech/internal/common"
	"github.com/Harshinireddy05/DayntTech/internal/logging"
	"github.com/Harshinireddy05/DayntTech/internal/server/auth"
	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// Authenticator is the login/signup surface the UI needs.
type Authenticator interface {
	Signup(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(token string) (models.Session, error)
	Logout(ctx context.Context, sess models.Session)
}

// People is the dashboard surface the UI needs.
type People interface {
	Rows(ctx context.Context, email string) ([]services.Row, error)
	Get(ctx context.Context, email string, id int64) (models.Person, error)
	Add(ctx context.Context, email string, in models.PersonInput) (models.Person, error)
	Update(ctx context.Context, email string, id int64, in models.PersonInput) (models.Person, error)
	Delete(ctx context.Context, email string, id int64) (bool, error)
}

// Handler holds all HTTP handlers for the application.
type Handler struct {
	users           Authenticator
	people          People
	tmpl            *template.Template
	logger          logging.Logger
	sessionValidity time.Duration
}

// NewHandler parses the embedded templates and returns the handler set.
// sessionValidity sets the cookie lifetime; zero keeps a browser-session
// cookie.
func NewHandler(users Authenticator, people People, sessionValidity time.Duration, logger logging.Logger) (*Handler, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		users:           users,
		people:          people,
		tmpl:            tmpl,
		logger:          logger.With("module", "web"),
		sessionValidity: sessionValidity,
	}, nil
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// ShowLogin renders the login page, or the signup tab with ?tab=signup.
// Signed-in users go straight to the dashboard.
func (h *Handler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionFromCookie(h.users, r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	tab := "login"
	if r.URL.Query().Get("tab") == "signup" {
		tab = "signup"
	}
	h.render(w, r, http.StatusOK, "pages/login.html", &LoginPage{
		PageData: PageData{Title: "Login", Flash: popFlash(w, r)},
		Tab:      tab,
	})
}

// Login handles login form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	token, err := h.users.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		status, msg := http.StatusInternalServerError, "Login failed"
		switch {
		case errors.Is(err, models.ErrInvalidEmail):
			status, msg = http.StatusBadRequest, "Please enter a valid email address"
		case errors.Is(err, common.ErrorValidation):
			status, msg = http.StatusBadRequest, "Please fill in all fields"
		case errors.Is(err, common.ErrorInvalidCredentials):
			status, msg = http.StatusUnauthorized, "Invalid credentials"
		}
		h.render(w, r, status, "pages/login.html", &LoginPage{
			PageData:  PageData{Title: "Login"},
			Tab:       "login",
			FormEmail: email,
			Error:     msg,
		})
		return
	}

	cookie := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	}
	if h.sessionValidity > 0 {
		cookie.MaxAge = int(h.sessionValidity / time.Second)
	}
	http.SetCookie(w, cookie)

	setFlash(w, r, "success", "Login successful!")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Signup registers a user and switches to the login tab. It does not log
// the user in.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if err := h.users.Signup(r.Context(), email, r.FormValue("password")); err != nil {
		status, msg := http.StatusInternalServerError, "Signup failed"
		switch {
		case errors.Is(err, models.ErrInvalidEmail):
			status, msg = http.StatusBadRequest, "Please enter a valid email address"
		case errors.Is(err, common.ErrorValidation):
			status, msg = http.StatusBadRequest, "Please fill in all fields"
		case errors.Is(err, common.ErrorAlreadyExists):
			status, msg = http.StatusConflict, "Email already registered"
		}
		h.render(w, r, status, "pages/login.html", &LoginPage{
			PageData:  PageData{Title: "Sign Up"},
			Tab:       "signup",
			FormEmail: email,
			Error:     msg,
		})
		return
	}

	setFlash(w, r, "success", "Account created successfully!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout revokes the session and clears its cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.users.Logout(r.Context(), auth.SessionFrom(r.Context()))
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	email := auth.SessionFrom(r.Context()).Email
	page := &DashboardPage{PageData: PageData{Title: "Dashboard", Email: email, Flash: popFlash(w, r)}}

	rows, err := h.people.Rows(r.Context(), email)
	if err != nil {
		page.Flash = &Flash{Type: "danger", Message: "Failed to fetch data"}
		h.render(w, r, http.StatusInternalServerError, "pages/dashboard.html", page)
		return
	}
	page.Rows = rows
	h.render(w, r, http.StatusOK, "pages/dashboard.html", page)
}

func (h *Handler) ShowNewPerson(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "pages/person_form.html", &PersonFormPage{
		PageData: PageData{Title: "Add Person", Email: auth.SessionFrom(r.Context()).Email},
		Action:   "/dashboard/people",
	})
}

func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	email := auth.SessionFrom(r.Context()).Email
	in := personInput(r)

	_, err := h.people.Add(r.Context(), email, in)
	if errors.Is(err, common.ErrorValidation) {
		h.render(w, r, http.StatusUnprocessableEntity, "pages/person_form.html", &PersonFormPage{
			PageData: PageData{Title: "Add Person", Email: email},
			Action:   "/dashboard/people",
			Name:     in.Name,
			DOB:      in.DateOfBirth,
			Error:    validationMessage(err),
		})
		return
	}
	if err != nil {
		setFlash(w, r, "danger", "Failed to add person")
	} else {
		setFlash(w, r, "success", "Person added successfully")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) ShowEditPerson(w http.ResponseWriter, r *http.Request) {
	email := auth.SessionFrom(r.Context()).Email
	id, ok := personID(w, r)
	if !ok {
		return
	}

	p, err := h.people.Get(r.Context(), email, id)
	if err != nil {
		h.flashLookupError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "pages/person_form.html", &PersonFormPage{
		PageData: PageData{Title: "Edit Person", Email: email},
		Action:   "/dashboard/people/" + strconv.FormatInt(id, 10),
		Editing:  true,
		Name:     p.Name,
		DOB:      p.DateOfBirth.String(),
	})
}

func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	email := auth.SessionFrom(r.Context()).Email
	id, ok := personID(w, r)
	if !ok {
		return
	}
	in := personInput(r)

	_, err := h.people.Update(r.Context(), email, id, in)
	switch {
	case errors.Is(err, common.ErrorValidation):
		h.render(w, r, http.StatusUnprocessableEntity, "pages/person_form.html", &PersonFormPage{
			PageData: PageData{Title: "Edit Person", Email: email},
			Action:   "/dashboard/people/" + strconv.FormatInt(id, 10),
			Editing:  true,
			Name:     in.Name,
			DOB:      in.DateOfBirth,
			Error:    validationMessage(err),
		})
		return
	case errors.Is(err, common.ErrorNotFound):
		setFlash(w, r, "warning", "Person not found")
	case err != nil:
		setFlash(w, r, "danger", "Failed to update person")
	default:
		setFlash(w, r, "success", "Person updated successfully")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ShowDeletePerson asks for confirmation before the delete is posted.
func (h *Handler) ShowDeletePerson(w http.ResponseWriter, r *http.Request) {
	email := auth.SessionFrom(r.Context()).Email
	id, ok := personID(w, r)
	if !ok {
		return
	}

	p, err := h.people.Get(r.Context(), email, id)
	if err != nil {
		h.flashLookupError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, "pages/delete_confirm.html", &DeletePage{
		PageData: PageData{Title: "Delete Person", Email: email},
		Person:   p,
	})
}

func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	email := auth.SessionFrom(r.Context()).Email
	id, ok := personID(w, r)
	if !ok {
		return
	}

	deleted, err := h.people.Delete(r.Context(), email, id)
	switch {
	case err != nil:
		setFlash(w, r, "danger", "Failed to delete person")
	case !deleted:
		setFlash(w, r, "warning", "Person not found")
	default:
		setFlash(w, r, "success", "Person deleted successfully")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) flashLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		setFlash(w, r, "warning", "Person not found")
	} else {
		setFlash(w, r, "danger", "Failed to fetch data")
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func personInput(r *http.Request) models.PersonInput {
	return models.PersonInput{Name: r.FormValue("name"), DateOfBirth: r.FormValue("dob")}
}

func personID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

// validationMessage strips the sentinel prefix, leaving e.g.
// "name is required".
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": ")
}
