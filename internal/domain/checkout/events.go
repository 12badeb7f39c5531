package checkout

import "time"

const (
	EventCheckoutOpened    = "CheckoutOpened"
	EventOrderSubmitted    = "OrderSubmitted"
	EventOrderAccepted     = "OrderAccepted"
	EventOrderRejected     = "OrderRejected"
	EventCheckoutCancelled = "CheckoutCancelled"
)

type CheckoutOpened struct {
	ProductID int64     `json:"product_id"`
	Color     string    `json:"color"`
	OpenedAt  time.Time `json:"opened_at"`
}

type OrderSubmitted struct {
	AttemptID   string    `json:"attempt_id"`
	ProductID   int64     `json:"product_id"`
	Color       string    `json:"color"`
	Total       string    `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type OrderAccepted struct {
	AttemptID  string    `json:"attempt_id"`
	ProductID  int64     `json:"product_id"`
	Color      string    `json:"color"`
	AcceptedAt time.Time `json:"accepted_at"`
}

type OrderRejected struct {
	AttemptID  string    `json:"attempt_id"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}

type CheckoutCancelled struct {
	ProductID   int64     `json:"product_id"`
	CancelledAt time.Time `json:"cancelled_at"`
}
