package web

import (
	"html/template"

	"github.com/Harshinireddy05/DayntTech/internal/server/models"
	"github.com/Harshinireddy05/DayntTech/internal/server/services"
)

// Flash represents a one-shot message shown on the next page.
type Flash struct {
	Type    string // success, danger, warning
	Message string
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title string
	Email string // signed-in user, empty on public pages
	Flash *Flash
}

func (p *PageData) Base() *PageData { return p }

// Page is implemented by every page's data through the embedded PageData.
type Page interface {
	Base() *PageData
}

type layoutData struct {
	PageData
	Content template.HTML
}

type LoginPage struct {
	PageData
	Tab       string // login or signup
	FormEmail string
	Error     string
}

type DashboardPage struct {
	PageData
	Rows []services.Row
}

type PersonFormPage struct {
	PageData
	Action  string
	Editing bool
	Name    string
	DOB     string
	Error   string
}

type DeletePage struct {
	PageData
	Person models.Person
}
