package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/storefront/internal/auth"
	"github.com/example/storefront/internal/domain/admin"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/navigation"
	"github.com/example/storefront/internal/domain/session"
	"github.com/example/storefront/internal/logx"
	"github.com/example/storefront/internal/storefront"
	"github.com/rs/zerolog"
)

type Handlers struct {
	sessions *storefront.Sessions
	renderer *Renderer
	log      zerolog.Logger
}

func NewHandlers(sessions *storefront.Sessions, renderer *Renderer) *Handlers {
	return &Handlers{
		sessions: sessions,
		renderer: renderer,
		log:      logx.Component("web"),
	}
}

// Index renders the visitor's current page.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	app, ok := AppFromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}
	v, err := app.View(r.Context())
	if err != nil {
		h.unavailable(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := h.renderer.Render(w, v); err != nil {
		h.log.Error().Err(err).Msg("render failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

// Activity returns the visitor's own journal as JSON.
func (h *Handlers) Activity(w http.ResponseWriter, r *http.Request) {
	app, ok := AppFromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session": app.ID(),
		"events":  app.Activity(),
	})
}

// Navigation Handlers

func (h *Handlers) Navigate(w http.ResponseWriter, r *http.Request) {
	page := navigation.ParsePage(r.FormValue("page"))
	fromMenu := r.FormValue("menu") == "1"
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.Navigate(ctx, page, fromMenu)
	})
}

func (h *Handlers) ToggleMenu(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.ToggleMenu(ctx)
	})
}

// Checkout Handlers

func (h *Handlers) OpenCheckout(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.OpenCheckout(ctx, id)
	})
}

func (h *Handlers) SelectColor(w http.ResponseWriter, r *http.Request) {
	color := r.FormValue("color")
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.SelectColor(ctx, color)
	})
}

func (h *Handlers) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	info := checkout.CustomerInfo{
		Name:    field(r, "name"),
		Email:   field(r, "email"),
		Phone:   field(r, "phone"),
		Address: field(r, "address"),
		Number:  field(r, "number"),
		City:    field(r, "city"),
		State:   field(r, "state"),
		ZipCode: field(r, "zipCode"),
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.SubmitOrder(ctx, info)
	})
}

func (h *Handlers) CancelCheckout(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.CancelCheckout(ctx)
	})
}

// Auth Handlers

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	creds := session.Credentials{
		Email:    field(r, "email"),
		Password: r.FormValue("password"),
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.Login(ctx, creds)
	})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	reg := session.Registration{
		Name:            field(r, "name"),
		Email:           field(r, "email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
		Phone:           field(r, "phone"),
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.Register(ctx, reg)
	})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.Logout(ctx)
	})
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request) {
	msg := storefront.ContactMessage{
		Name:    field(r, "name"),
		Email:   field(r, "email"),
		Subject: field(r, "subject"),
		Message: field(r, "message"),
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.SendContact(ctx, msg)
	})
}

// Admin Handlers

func (h *Handlers) AdminLogin(w http.ResponseWriter, r *http.Request) {
	creds := auth.Credentials{
		Username: field(r, "username"),
		Password: r.FormValue("password"),
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.AdminLogin(ctx, creds)
	})
}

func (h *Handlers) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.AdminLogout(ctx)
	})
}

func (h *Handlers) AdminToggleColor(w http.ResponseWriter, r *http.Request) {
	color := r.FormValue("color")
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.AdminToggleColor(ctx, color)
	})
}

func (h *Handlers) AdminCreateProduct(w http.ResponseWriter, r *http.Request) {
	draft := admin.Draft{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
		ImageURL:    r.FormValue("image_url"),
		Stock:       r.FormValue("stock"),
	}
	h.act(w, r, func(ctx context.Context, app *storefront.App) error {
		return app.AdminCreateProduct(ctx, draft)
	})
}

// Helper functions

// act runs an action for the visitor and sends the browser back to the page.
// Action failures are already on the visitor's notice; only a stopped loop
// changes the response.
func (h *Handlers) act(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, app *storefront.App) error) {
	app, ok := AppFromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}
	if err := action(r.Context(), app); err != nil {
		if errors.Is(err, storefront.ErrLoopStopped) {
			h.unavailable(w, err)
			return
		}
		h.log.Debug().Err(err).Str("path", r.URL.Path).Str("session", app.ID()).Msg("action failed")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) unavailable(w http.ResponseWriter, err error) {
	h.log.Warn().Err(err).Msg("storefront unavailable")
	http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
