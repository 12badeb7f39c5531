// Package checkout is the buy modal: pick a color, fill the shipping form,
// submit one unit of one product as an order.
package checkout

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/money"
	"github.com/google/uuid"
)

const AggregateType = "Checkout"

// OrderQuantity is fixed: the modal always buys a single unit.
const OrderQuantity = 1

var (
	ErrCheckoutClosed = errors.New("checkout is not open")
	ErrUnknownColor   = errors.New("color is not offered for this product")
	ErrMissingField   = errors.New("required field is empty")
	ErrInvalidEmail   = errors.New("invalid email address")
)

type Status int

const (
	Closed Status = iota
	Open
)

// CustomerInfo is the shipping and contact form. All fields are required.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Number  string `json:"number"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

func (c CustomerInfo) Validate() error {
	fields := []struct{ name, value string }{
		{"name", c.Name},
		{"email", c.Email},
		{"phone", c.Phone},
		{"address", c.Address},
		{"number", c.Number},
		{"city", c.City},
		{"state", c.State},
		{"zipCode", c.ZipCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, c.Email)
	}
	return nil
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	ProductID    int64        `json:"product_id"`
	Color        string       `json:"color"`
	Quantity     int          `json:"quantity"`
	CustomerInfo CustomerInfo `json:"customer_info"`
	Total        money.Amount `json:"total"`
}

// Submission is an order request tagged with the attempt that produced it.
type Submission struct {
	AttemptID string
	Request   OrderRequest
}

type Modal struct {
	Status  Status
	Product catalog.Product
	Color   string
	Form    CustomerInfo
	// Attempt is the id of the submission in flight, empty when idle.
	Attempt string
	// SentColor is the color carried by the submission in flight.
	SentColor string
}

func (m *Modal) IsOpen() bool {
	return m.Status == Open
}

// Pending reports whether a submission is waiting for the backend.
func (m *Modal) Pending() bool {
	return m.IsOpen() && m.Attempt != ""
}

// Open shows the modal for a product with its first color preselected.
func (m *Modal) Open(product catalog.Product) CheckoutOpened {
	*m = Modal{
		Status:  Open,
		Product: product.Clone(),
		Color:   product.DefaultColor(),
	}
	return CheckoutOpened{ProductID: product.ID, Color: m.Color, OpenedAt: time.Now()}
}

func (m *Modal) SelectColor(color string) error {
	if !m.IsOpen() {
		return ErrCheckoutClosed
	}
	if !m.Product.HasColor(color) {
		return fmt.Errorf("%w: %q", ErrUnknownColor, color)
	}
	m.Color = color
	return nil
}

// Submit validates the form and builds the order. The modal stays open; a
// newer submission supersedes any attempt still in flight.
func (m *Modal) Submit(info CustomerInfo) (Submission, error) {
	if !m.IsOpen() {
		return Submission{}, ErrCheckoutClosed
	}
	m.Form = info
	if err := info.Validate(); err != nil {
		return Submission{}, err
	}

	m.Attempt = uuid.New().String()
	m.SentColor = m.Color
	return Submission{
		AttemptID: m.Attempt,
		Request: OrderRequest{
			ProductID:    m.Product.ID,
			Color:        m.Color,
			Quantity:     OrderQuantity,
			CustomerInfo: info,
			Total:        m.Product.Price,
		},
	}, nil
}

// Current reports whether attempt is still the one the modal waits for.
func (m *Modal) Current(attempt string) bool {
	return m.IsOpen() && attempt != "" && m.Attempt == attempt
}

// Succeed closes the modal for the current attempt and hands back what was
// bought. The color is the one sent, even if the picker moved since.
func (m *Modal) Succeed(attempt string) (catalog.Product, string, bool) {
	if !m.Current(attempt) {
		return catalog.Product{}, "", false
	}
	product, color := m.Product, m.SentColor
	*m = Modal{}
	return product, color, true
}

// Fail clears the in-flight attempt and keeps the modal and form as they were.
func (m *Modal) Fail(attempt string) bool {
	if !m.Current(attempt) {
		return false
	}
	m.Attempt = ""
	m.SentColor = ""
	return true
}

// Cancel closes the modal and discards the form.
func (m *Modal) Cancel() (CheckoutCancelled, bool) {
	if !m.IsOpen() {
		return CheckoutCancelled{}, false
	}
	event := CheckoutCancelled{ProductID: m.Product.ID, CancelledAt: time.Now()}
	*m = Modal{}
	return event, true
}
