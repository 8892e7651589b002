package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/stocksense/internal/client/dashboard"
	"github.com/dmitrijs2005/stocksense/internal/client/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"landing", "login", "signup", "dashboard", "error"}

// formValues echoes submitted fields back into a re-rendered form.
// Passwords are never echoed.
type formValues struct {
	Name  string
	Email string
	Role  string
}

type roleOption struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	Title     string
	Session   *models.Session
	Form      formValues
	Errors    map[string]string
	General   string
	Roles     []roleOption
	Dashboard *dashboard.View
}

func roleOptions(selected string) []roleOption {
	pick, err := models.ParseRole(selected)
	if err != nil {
		pick = models.RoleAnalyst
	}
	out := make([]roleOption, 0, len(models.Roles))
	for _, r := range models.Roles {
		out = append(out, roleOption{Value: r.Label(), Label: r.Label(), Selected: r == pick})
	}
	return out
}

var funcs = template.FuncMap{
	"trendClass": func(t dashboard.Trend) string {
		switch t {
		case dashboard.TrendUp:
			return "up"
		case dashboard.TrendDown:
			return "down"
		default:
			return "flat"
		}
	},
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (r *renderer) render(w http.ResponseWriter, status int, page string, data pageData) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
