package storefront

import (
	"slices"

	"github.com/example/storefront/internal/domain/admin"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/navigation"
	"github.com/example/storefront/internal/domain/session"
	"github.com/example/storefront/internal/money"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is the blocking message shown on the next render.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// State is everything one visitor sees. It is only touched on the loop.
type State struct {
	Nav      navigation.State
	Session  session.Session
	Cart     cart.Cart
	Catalog  catalog.Catalog
	Checkout checkout.Modal
	Admin    admin.Panel
	Notice   *Notice

	// catalogLoad numbers catalog loads so an older response cannot
	// overwrite a newer one.
	catalogLoad int
}

func (s *State) notify(kind NoticeKind, message string) {
	s.Notice = &Notice{Kind: kind, Message: message}
}

// navigate switches pages and drops the admin gate when leaving the admin page.
func (s *State) navigate(to navigation.Page, fromMenu bool) navigation.PageSwitched {
	leavingAdmin := s.Nav.Current == navigation.Admin
	event := s.Nav.Navigate(to, fromMenu)
	if leavingAdmin && s.Nav.Current != navigation.Admin {
		s.Admin.Reset()
	}
	return event
}

type CheckoutView struct {
	Open    bool
	Pending bool
	Product catalog.Product
	Color   string
	Form    checkout.CustomerInfo
}

type PaletteColor struct {
	Name     string
	Selected bool
}

type AdminView struct {
	Authenticated bool
	Draft         admin.Draft
	Colors        []PaletteColor
}

// View is a copy of a State safe to render off the loop.
type View struct {
	SessionID     string
	Page          navigation.Page
	MenuOpen      bool
	User          *session.User
	Cart          []cart.CartItem
	CartCount     int
	Subtotal      money.Amount
	CatalogStatus catalog.Status
	CatalogError  string
	Products      []catalog.Product
	Featured      []catalog.Product
	Checkout      CheckoutView
	Admin         AdminView
	Notice        *Notice
}

func (v View) Loading() bool {
	return v.CatalogStatus == catalog.StatusLoading
}

func (v View) LoadFailed() bool {
	return v.CatalogStatus == catalog.StatusFailed
}

// NoProducts reports a successful load that returned nothing.
func (v View) NoProducts() bool {
	return v.CatalogStatus == catalog.StatusLoaded && len(v.Products) == 0
}

func (s *State) snapshot(id string) View {
	v := View{
		SessionID:     id,
		Page:          s.Nav.Current,
		MenuOpen:      s.Nav.MenuOpen,
		Cart:          slices.Clone(s.Cart.Items),
		CartCount:     s.Cart.Count(),
		Subtotal:      s.Cart.Subtotal(),
		CatalogStatus: s.Catalog.Status,
		CatalogError:  s.Catalog.Err,
		Products:      slices.Clone(s.Catalog.Products),
		Featured:      slices.Clone(s.Catalog.Featured()),
		Checkout: CheckoutView{
			Open:    s.Checkout.IsOpen(),
			Pending: s.Checkout.Pending(),
			Product: s.Checkout.Product.Clone(),
			Color:   s.Checkout.Color,
			Form:    s.Checkout.Form,
		},
		Admin: AdminView{
			Authenticated: s.Admin.Authenticated,
			Draft:         s.Admin.Draft,
			Colors:        make([]PaletteColor, 0, len(admin.Palette)),
		},
	}
	if s.Session.User != nil {
		u := *s.Session.User
		v.User = &u
	}
	for _, c := range admin.Palette {
		v.Admin.Colors = append(v.Admin.Colors, PaletteColor{Name: c, Selected: s.Admin.IsSelected(c)})
	}
	if s.Notice != nil {
		n := *s.Notice
		v.Notice = &n
	}
	return v
}
