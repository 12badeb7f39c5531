package web

import (
	"net/http"

	"github.com/example/storefront/internal/storefront"
)

// NewRouter wires the storefront routes. Path and method are checked before
// a visitor session is resolved, so stray requests never open one.
func NewRouter(handlers *Handlers, sessions *storefront.Sessions) http.Handler {
	mux := http.NewServeMux()
	withSession := WithSession(sessions)
	post := func(h http.HandlerFunc) http.Handler {
		return postOnly(withSession(h))
	}

	index := withSession(http.HandlerFunc(handlers.Index))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			index.ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/healthz", handlers.Healthz)
	mux.Handle("/activity", getOnly(withSession(http.HandlerFunc(handlers.Activity))))

	// Navigation
	mux.Handle("/navigate", post(handlers.Navigate))
	mux.Handle("/menu", post(handlers.ToggleMenu))

	// Checkout
	mux.Handle("/checkout/open", post(handlers.OpenCheckout))
	mux.Handle("/checkout/color", post(handlers.SelectColor))
	mux.Handle("/checkout/submit", post(handlers.SubmitOrder))
	mux.Handle("/checkout/cancel", post(handlers.CancelCheckout))

	// Auth
	mux.Handle("/login", post(handlers.Login))
	mux.Handle("/register", post(handlers.Register))
	mux.Handle("/logout", post(handlers.Logout))
	mux.Handle("/contact", post(handlers.Contact))

	// Admin
	mux.Handle("/admin/login", post(handlers.AdminLogin))
	mux.Handle("/admin/logout", post(handlers.AdminLogout))
	mux.Handle("/admin/colors", post(handlers.AdminToggleColor))
	mux.Handle("/admin/products", post(handlers.AdminCreateProduct))

	return withLogging(mux)
}

func postOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func getOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}
