package cart

import "time"

const (
	EventItemAdded     = "ItemAddedToCart"
	EventItemIncreased = "CartItemQuantityIncreased"
)

type ItemAddedToCart struct {
	ProductID int64     `json:"product_id"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
	AddedAt   time.Time `json:"added_at"`
}

type CartItemQuantityIncreased struct {
	ProductID int64     `json:"product_id"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
