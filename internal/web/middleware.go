package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/example/storefront/internal/logx"
	"github.com/example/storefront/internal/storefront"
)

// SessionCookie names the cookie that carries the visitor session id.
const SessionCookie = "storefront_session"

type contextKey string

const AppContextKey contextKey = "app"

// AppFromContext returns the visitor's App placed by WithSession.
func AppFromContext(ctx context.Context) (*storefront.App, bool) {
	app, ok := ctx.Value(AppContextKey).(*storefront.App)
	return app, ok
}

// WithSession attaches the visitor's App to the request, opening a new
// session when the cookie is missing or the session expired.
func WithSession(sessions *storefront.Sessions) func(http.Handler) http.Handler {
	log := logx.Component("web")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var app *storefront.App
			if cookie, err := r.Cookie(SessionCookie); err == nil {
				app, _ = sessions.Lookup(cookie.Value)
			}

			if app == nil {
				opened, err := sessions.Open(r.Context())
				if opened == nil {
					log.Error().Err(err).Msg("failed to open session")
					http.Error(w, "Service unavailable", http.StatusServiceUnavailable)
					return
				}
				if err != nil && !errors.Is(err, context.Canceled) {
					log.Warn().Err(err).Str("session", opened.ID()).Msg("session opened without catalog")
				}
				app = opened
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    app.ID(),
					Path:     "/",
					HttpOnly: true,
					Secure:   r.TLS != nil,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), AppContextKey, app)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func withLogging(next http.Handler) http.Handler {
	log := logx.Component("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
