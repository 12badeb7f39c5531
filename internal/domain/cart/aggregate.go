// Package cart is the visitor's in-memory cart. Lines are unique per
// (product, color) and are never removed.
package cart

import (
	"time"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/money"
)

const AggregateType = "Cart"

// Key identifies a cart line.
type Key struct {
	ProductID int64
	Color     string
}

type CartItem struct {
	catalog.Product
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

func (i CartItem) Key() Key {
	return Key{ProductID: i.ID, Color: i.Color}
}

// LineTotal is the unit price times the quantity.
func (i CartItem) LineTotal() money.Amount {
	return i.Price.Mul(i.Quantity)
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// Add puts one unit of product in the given color into the cart. An existing
// line for the same pair is incremented; otherwise a line is appended.
// It returns the event describing what happened.
func (c *Cart) Add(product catalog.Product, color string) (string, any) {
	key := Key{ProductID: product.ID, Color: color}
	for i := range c.Items {
		if c.Items[i].Key() == key {
			c.Items[i].Quantity++
			return EventItemIncreased, CartItemQuantityIncreased{
				ProductID: key.ProductID,
				Color:     key.Color,
				Quantity:  c.Items[i].Quantity,
				UpdatedAt: time.Now(),
			}
		}
	}

	c.Items = append(c.Items, CartItem{
		Product:  product.Clone(),
		Color:    color,
		Quantity: 1,
	})
	return EventItemAdded, ItemAddedToCart{
		ProductID: key.ProductID,
		Color:     key.Color,
		Quantity:  1,
		Price:     product.Price.String(),
		AddedAt:   time.Now(),
	}
}

// Count is the badge number: the sum of all quantities.
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) Subtotal() money.Amount {
	total := money.Zero()
	for _, item := range c.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) Quantity(key Key) int {
	for _, item := range c.Items {
		if item.Key() == key {
			return item.Quantity
		}
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
