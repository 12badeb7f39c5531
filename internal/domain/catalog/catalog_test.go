package catalog

import (
	"errors"
	"testing"

	"github.com/example/storefront/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []Product {
	return []Product{
		{ID: 1, Name: "iPhone 15", Price: money.FromFloat(5999), Colors: []string{"Azul", "Preto"}},
		{ID: 2, Name: "MacBook Air", Price: money.FromFloat(9999)},
		{ID: 3, Name: "iPad", Price: money.FromFloat(3999), Colors: []string{"Rosa"}},
		{ID: 4, Name: "Apple Watch", Price: money.FromFloat(2999)},
	}
}

// ============================================
// Status Tests
// ============================================

func TestCatalog_ZeroValueIsLoading(t *testing.T) {
	var c Catalog

	assert.Equal(t, StatusLoading, c.Status)
	assert.True(t, c.IsEmpty())
}

func TestCatalog_Replace(t *testing.T) {
	var c Catalog
	c.BeginLoad()

	event := c.Replace(sampleProducts())

	assert.Equal(t, StatusLoaded, c.Status)
	assert.Len(t, c.Products, 4)
	assert.Equal(t, 4, event.Count)
	assert.False(t, event.LoadedAt.IsZero())
}

func TestCatalog_ReplaceDoesNotMerge(t *testing.T) {
	var c Catalog
	c.Replace(sampleProducts())

	c.Replace([]Product{{ID: 9, Name: "AirPods"}})

	require.Len(t, c.Products, 1)
	assert.Equal(t, int64(9), c.Products[0].ID)
}

func TestCatalog_ReplaceWithEmptyListIsLoaded(t *testing.T) {
	var c Catalog

	c.Replace(nil)

	assert.Equal(t, StatusLoaded, c.Status)
	assert.True(t, c.IsEmpty())
}

func TestCatalog_Fail(t *testing.T) {
	var c Catalog
	c.Replace(sampleProducts())

	event := c.Fail(errors.New("connection refused"))

	assert.Equal(t, StatusFailed, c.Status)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, "connection refused", c.Err)
	assert.Equal(t, "connection refused", event.Reason)
}

func TestCatalog_BeginLoadKeepsLoadedList(t *testing.T) {
	var c Catalog
	c.Replace(sampleProducts())

	c.BeginLoad()

	assert.Equal(t, StatusLoaded, c.Status)
	assert.Len(t, c.Products, 4)
}

func TestCatalog_BeginLoadAfterFailure(t *testing.T) {
	var c Catalog
	c.Fail(errors.New("boom"))

	c.BeginLoad()

	assert.Equal(t, StatusLoading, c.Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "failed", StatusFailed.String())
}

// ============================================
// Lookup Tests
// ============================================

func TestCatalog_Find(t *testing.T) {
	var c Catalog
	c.Replace(sampleProducts())

	p, err := c.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15", p.Name)

	// the returned product does not alias the catalog entry
	p.Colors[0] = "Verde"
	assert.Equal(t, "Azul", c.Products[0].Colors[0])

	_, err = c.Find(42)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCatalog_Featured(t *testing.T) {
	var c Catalog
	c.Replace(sampleProducts())

	featured := c.Featured()

	require.Len(t, featured, FeaturedCount)
	assert.Equal(t, int64(1), featured[0].ID)
	assert.Equal(t, int64(3), featured[2].ID)

	c.Replace(sampleProducts()[:2])
	assert.Len(t, c.Featured(), 2)
}

func TestProduct_DefaultColor(t *testing.T) {
	assert.Equal(t, "Azul", Product{Colors: []string{"Azul", "Preto"}}.DefaultColor())
	assert.Equal(t, "", Product{}.DefaultColor())
	assert.True(t, Product{Colors: []string{"Azul"}}.HasColor("Azul"))
	assert.False(t, Product{}.HasColor(""))
}
