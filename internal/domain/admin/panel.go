// Package admin is the product management panel behind the admin gate.
package admin

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/example/storefront/internal/money"
)

const AggregateType = "Admin"

const (
	EventAdminSignedIn       = "AdminSignedIn"
	EventAdminSignedOut      = "AdminSignedOut"
	EventProductSubmitted    = "ProductSubmitted"
	EventProductCreated      = "ProductCreated"
	EventProductCreateFailed = "ProductCreateFailed"
)

var (
	ErrAdminRequired = errors.New("admin authentication required")
	ErrUnknownColor  = errors.New("color is not in the palette")
	ErrMissingField  = errors.New("required field is empty")
	ErrInvalidPrice  = errors.New("price must be a non-negative decimal")
	ErrInvalidStock  = errors.New("stock must be a non-negative integer")
	ErrInvalidImage  = errors.New("image must be an absolute URL")
)

// Palette is the fixed set of colors a product can be offered in.
var Palette = []string{"Azul", "Branco", "Rosa", "Preto", "Verde", "Amarelo", "Roxo", "Vermelho"}

type AdminSignedIn struct {
	Username   string    `json:"username"`
	SignedInAt time.Time `json:"signed_in_at"`
}

type AdminSignedOut struct {
	SignedOutAt time.Time `json:"signed_out_at"`
}

type ProductSubmitted struct {
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Colors      []string  `json:"colors"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type ProductCreated struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductCreateFailed struct {
	Name     string    `json:"name"`
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

// Draft holds the raw new-product form values, kept for a retry after a failure.
type Draft struct {
	Name        string
	Description string
	Price       string
	Category    string
	ImageURL    string
	Stock       string
}

// NewProduct is the body of POST /products.
type NewProduct struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       money.Amount `json:"price"`
	Category    string       `json:"category"`
	ImageURL    string       `json:"image_url"`
	Stock       int          `json:"stock"`
	Colors      []string     `json:"colors"`
}

func (d Draft) Parse() (NewProduct, error) {
	required := []struct{ name, value string }{
		{"name", d.Name},
		{"description", d.Description},
		{"price", d.Price},
		{"category", d.Category},
		{"stock", d.Stock},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return NewProduct{}, fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	price, err := money.Parse(d.Price)
	if err != nil || price.IsNegative() {
		return NewProduct{}, fmt.Errorf("%w: %q", ErrInvalidPrice, d.Price)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(d.Stock))
	if err != nil || stock < 0 {
		return NewProduct{}, fmt.Errorf("%w: %q", ErrInvalidStock, d.Stock)
	}
	image := strings.TrimSpace(d.ImageURL)
	if image != "" {
		if u, err := url.Parse(image); err != nil || !u.IsAbs() {
			return NewProduct{}, fmt.Errorf("%w: %q", ErrInvalidImage, image)
		}
	}

	return NewProduct{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Price:       price,
		Category:    strings.TrimSpace(d.Category),
		ImageURL:    image,
		Stock:       stock,
	}, nil
}

// Panel is the admin sub-state. It is independent of the customer session and
// is reset whenever the visitor leaves the admin page.
type Panel struct {
	Authenticated bool
	Draft         Draft
	selected      map[string]struct{}
}

func (p *Panel) SignIn(username string) AdminSignedIn {
	p.Authenticated = true
	return AdminSignedIn{Username: username, SignedInAt: time.Now()}
}

func (p *Panel) SignOut() AdminSignedOut {
	p.Reset()
	return AdminSignedOut{SignedOutAt: time.Now()}
}

// Reset drops authentication, the draft and the color selection.
func (p *Panel) Reset() {
	*p = Panel{}
}

// ToggleColor adds the color to the selection or removes it when present.
func (p *Panel) ToggleColor(color string) error {
	if !p.Authenticated {
		return ErrAdminRequired
	}
	if !slices.Contains(Palette, color) {
		return fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	if p.selected == nil {
		p.selected = make(map[string]struct{})
	}
	if _, ok := p.selected[color]; ok {
		delete(p.selected, color)
	} else {
		p.selected[color] = struct{}{}
	}
	return nil
}

func (p *Panel) IsSelected(color string) bool {
	_, ok := p.selected[color]
	return ok
}

// SelectedColors lists the selection in palette order; toggle order is not kept.
func (p *Panel) SelectedColors() []string {
	colors := make([]string, 0, len(p.selected))
	for _, c := range Palette {
		if p.IsSelected(c) {
			colors = append(colors, c)
		}
	}
	return colors
}

// Prepare keeps the draft and turns it into the product to create.
func (p *Panel) Prepare(d Draft) (NewProduct, error) {
	if !p.Authenticated {
		return NewProduct{}, ErrAdminRequired
	}
	p.Draft = d
	np, err := d.Parse()
	if err != nil {
		return NewProduct{}, err
	}
	np.Colors = p.SelectedColors()
	return np, nil
}

// Created clears the form and the color selection after a successful create.
func (p *Panel) Created() {
	p.Draft = Draft{}
	p.selected = nil
}
