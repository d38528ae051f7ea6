package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/Harshinireddy05/DayntTech/internal/server/models"
)

//go:embed templates
var templateFS embed.FS

// loadTemplates parses every embedded .html file, named by its path
// relative to templates/ (e.g. "pages/login.html").
func loadTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"date": func(d models.Date) string { return d.String() },
	})

	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}

		content, err := templateFS.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}

		name := strings.TrimPrefix(p, "templates/")
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// render executes page into the base layout and writes it with status.
// Nothing is written if either template fails.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data Page) {
	var body bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&body, page, data); err != nil {
		h.logger.Error(r.Context(), "render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	base := data.Base()
	var out bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&out, "layouts/base.html", layoutData{
		PageData: *base,
		Content:  template.HTML(body.String()),
	}); err != nil {
		h.logger.Error(r.Context(), "render layout", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out.Bytes())
}
