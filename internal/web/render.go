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

	"storefront/internal/user"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"field": func(errs map[string]string, name string) string { return errs[name] },
}

type pageData struct {
	Title     string
	User      *user.SessionUser
	CartCount int
	Flashes   []string
	Data      any
}

// parsePages builds one template set per page so every page can define its
// own "content" block on top of the shared layout.
func parsePages() (map[string]*template.Template, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

// render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := h.pages[page]
	if !ok {
		h.serverError(w, r, fmt.Errorf("unknown page %q", page))
		return
	}

	sess := h.session(r)
	pd := pageData{
		Title:     title,
		User:      sess.User(),
		CartCount: h.loadCart(r).TotalQuantity(),
		Flashes:   sess.Flashes(),
		Data:      data,
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pd); err != nil {
		h.serverError(w, r, fmt.Errorf("render %s: %w", page, err))
		return
	}

	if len(pd.Flashes) > 0 {
		if err := sess.Save(w); err != nil {
			h.serverError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
