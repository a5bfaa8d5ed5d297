package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/mgnrega-tools/entrydesk/internal/core"
	"github.com/mgnrega-tools/entrydesk/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	tmplIndex = mustParse("index.html")
	tmplForm  = mustParse("form.html")
	tmplAdmin = mustParse("admin.html")
)

func mustParse(page string) *template.Template {
	return template.Must(template.ParseFS(templateFS,
		"templates/layout.html", "templates/"+page))
}

// formPage is the model for the shared entry/edit form template.
type formPage struct {
	Title   string
	Flashes []flashMessage
	Action  string
	Submit  string
	Fields  []formField
	Suggest *core.Suggestions
}

// adminPage is the model for the admin listing template.
type adminPage struct {
	Title   string
	Flashes []flashMessage
	View    *core.AdminView
}

// indexPage is the model for the landing page template.
type indexPage struct {
	Title   string
	Flashes []flashMessage
}

// render executes a page template with the layout. Errors are logged; by the
// time execution fails part of the response may already be written, so no
// error page is attempted.
func (s *Server) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logging.FromContext(r.Context()).Error("template render failed", "error", err)
	}
}
