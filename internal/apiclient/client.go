// Package apiclient talks JSON to the storefront backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/example/storefront/internal/domain/admin"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/checkout"
	"github.com/example/storefront/internal/domain/session"
	"github.com/example/storefront/internal/logx"
	"golang.org/x/net/publicsuffix"
)

const (
	pathProducts = "/products"
	pathOrders   = "/orders"
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"

	maxBodyBytes = 4 << 20
)

// Client is bound to one visitor: the auth endpoints share a cookie jar that
// no other visitor sees. Catalog and order calls go out without cookies.
type Client struct {
	baseURL      string
	plain        *http.Client
	credentialed *http.Client
}

type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	o := options{transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		plain:        &http.Client{Transport: o.transport, Timeout: o.timeout},
		credentialed: &http.Client{Transport: o.transport, Timeout: o.timeout, Jar: jar},
	}, nil
}

// ListProducts fetches the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, c.plain, http.MethodGet, pathProducts, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []catalog.Product{}
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, p admin.NewProduct) error {
	return c.do(ctx, c.plain, http.MethodPost, pathProducts, p, nil)
}

func (c *Client) CreateOrder(ctx context.Context, req checkout.OrderRequest) error {
	return c.do(ctx, c.plain, http.MethodPost, pathOrders, req, nil)
}

func (c *Client) Login(ctx context.Context, creds session.Credentials) (session.User, error) {
	var u session.User
	if err := c.do(ctx, c.credentialed, http.MethodPost, pathLogin, creds, &u); err != nil {
		return session.User{}, err
	}
	return u, nil
}

func (c *Client) Register(ctx context.Context, reg session.Registration) (session.User, error) {
	var u session.User
	if err := c.do(ctx, c.credentialed, http.MethodPost, pathRegister, reg, &u); err != nil {
		return session.User{}, err
	}
	return u, nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := logx.Component("apiclient")
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading %s %s: %w", ErrTransport, method, path, err)
	}
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: decoding %s %s: empty response body", ErrTransport, method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decoding %s %s: %w", ErrTransport, method, path, err)
	}
	return nil
}
