// Package catalog holds the product list a visitor browses.
package catalog

import "time"

// Status tells an empty list apart: still loading, failed, or genuinely empty.
type Status int

const (
	StatusLoading Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

const AggregateType = "Catalog"

const (
	EventCatalogLoaded     = "CatalogLoaded"
	EventCatalogLoadFailed = "CatalogLoadFailed"
)

type CatalogLoaded struct {
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at"`
}

type CatalogLoadFailed struct {
	Reason   string    `json:"reason"`
	FailedAt time.Time `json:"failed_at"`
}

// FeaturedCount is how many products the home page highlights.
const FeaturedCount = 3

type Catalog struct {
	Status   Status
	Products []Product
	Err      string
}

// BeginLoad marks a load in flight. The current list stays visible until it resolves.
func (c *Catalog) BeginLoad() {
	if c.Status != StatusLoaded {
		c.Status = StatusLoading
	}
}

// Replace installs a freshly loaded list. It never merges with the previous one.
func (c *Catalog) Replace(products []Product) CatalogLoaded {
	c.Products = products
	c.Status = StatusLoaded
	c.Err = ""
	return CatalogLoaded{Count: len(products), LoadedAt: time.Now()}
}

// Fail records a failed load and leaves the list empty.
func (c *Catalog) Fail(err error) CatalogLoadFailed {
	c.Products = nil
	c.Status = StatusFailed
	c.Err = err.Error()
	return CatalogLoadFailed{Reason: c.Err, FailedAt: time.Now()}
}

func (c *Catalog) Find(id int64) (Product, error) {
	for _, p := range c.Products {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return Product{}, ErrProductNotFound
}

func (c *Catalog) Featured() []Product {
	if len(c.Products) <= FeaturedCount {
		return c.Products
	}
	return c.Products[:FeaturedCount]
}

func (c *Catalog) IsEmpty() bool {
	return len(c.Products) == 0
}
