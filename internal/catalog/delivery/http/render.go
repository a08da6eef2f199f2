package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path"

	"github.com/shopspring/decimal"

	"github.com/tair/catalog-mvc/internal/catalog/controller"
	"github.com/tair/catalog-mvc/internal/catalog/dto"
	"github.com/tair/catalog-mvc/pkg/auth"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views rendered outside the products controller
const (
	viewLogin    = "Login"
	viewNotFound = "NotFound"
	viewError    = "Error"
)

// Page is the data every template receives
type Page struct {
	Title     string
	Model     any
	Data      controller.ViewData
	Errors    dto.FieldErrors
	User      *auth.Claims
	ReturnURL string
	Message   string
}

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"price": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"imageURL": func(image string) string {
		return "/images/" + url.PathEscape(path.Base(image))
	},
}

// NewRenderer parses every page template
func NewRenderer() (*Renderer, error) {
	names := []string{
		controller.ViewIndex,
		controller.ViewCreate,
		controller.ViewEdit,
		controller.ViewDelete,
		controller.ViewDetails,
		viewLogin,
		viewNotFound,
		viewError,
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/form.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with status. Nothing is written when the
// template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
