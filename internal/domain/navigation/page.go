// Package navigation selects which top-level view a visitor sees.
package navigation

import "time"

// Page is the closed set of top-level views.
type Page int

const (
	Home Page = iota
	Products
	About
	Contact
	Login
	Register
	Cart
	Admin
)

// Pages lists every page in menu order.
var Pages = []Page{Home, Products, About, Contact, Login, Register, Cart, Admin}

var pageNames = map[Page]string{
	Home:     "home",
	Products: "products",
	About:    "about",
	Contact:  "contact",
	Login:    "login",
	Register: "register",
	Cart:     "cart",
	Admin:    "admin",
}

func (p Page) String() string {
	if name, ok := pageNames[p]; ok {
		return name
	}
	return pageNames[Home]
}

func (p Page) Valid() bool {
	_, ok := pageNames[p]
	return ok
}

// ParsePage maps a page name to a Page. Unknown names select Home.
func ParsePage(name string) Page {
	for p, n := range pageNames {
		if n == name {
			return p
		}
	}
	return Home
}

const (
	AggregateType     = "Navigation"
	EventPageSwitched = "PageSwitched"
)

type PageSwitched struct {
	From       string    `json:"from"`
	To         string    `json:"to"`
	SwitchedAt time.Time `json:"switched_at"`
}

// State holds the current page and the mobile menu flag. The zero value shows Home.
type State struct {
	Current  Page
	MenuOpen bool
}

// Navigate switches pages without guards or history. A navigation fired from
// the mobile menu also collapses it.
func (s *State) Navigate(to Page, fromMenu bool) PageSwitched {
	if !to.Valid() {
		to = Home
	}
	event := PageSwitched{From: s.Current.String(), To: to.String(), SwitchedAt: time.Now()}
	s.Current = to
	if fromMenu {
		s.MenuOpen = false
	}
	return event
}

func (s *State) ToggleMenu() {
	s.MenuOpen = !s.MenuOpen
}
