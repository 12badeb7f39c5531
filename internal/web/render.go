package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/example/storefront/internal/domain/navigation"
	"github.com/example/storefront/internal/money"
	"github.com/example/storefront/internal/storefront"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = map[navigation.Page]string{
	navigation.Home:     "home.html",
	navigation.Products: "products.html",
	navigation.About:    "about.html",
	navigation.Contact:  "contact.html",
	navigation.Login:    "login.html",
	navigation.Register: "register.html",
	navigation.Cart:     "cart.html",
	navigation.Admin:    "admin.html",
}

// TemplateFor picks the template of a page. Anything unknown renders home.
func TemplateFor(page navigation.Page) string {
	if name, ok := pageTemplates[page]; ok {
		return name
	}
	return pageTemplates[navigation.Home]
}

type navLink struct {
	Page  string
	Label string
}

var navLinks = []navLink{
	{navigation.Home.String(), "Início"},
	{navigation.Products.String(), "Produtos"},
	{navigation.About.String(), "Sobre"},
	{navigation.Contact.String(), "Contato"},
}

var funcs = template.FuncMap{
	"brl":      func(a money.Amount) string { return a.Format() },
	"navLinks": func() []navLink { return navLinks },
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes the full page for v. Nothing is written if execution fails.
func (r *Renderer) Render(w io.Writer, v storefront.View) error {
	name := TemplateFor(v.Page)
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not loaded", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", v); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
