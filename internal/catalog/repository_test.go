package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globaloptima/storefront/internal/filters"
)

// setupRepo opens a throwaway database and applies the real migrations,
// seed data included.
func setupRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("../../migrations"))
	return repo
}

func TestListProducts_DefaultsReturnFirstPageSortedByName(t *testing.T) {
	repo := setupRepo(t)

	page, err := repo.ListProducts(context.Background(), filters.Default())

	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Len(t, page.Products, 12)
	assert.False(t, page.HasMore)
	assert.Equal(t, "Chair", page.Products[0].Title)
}

func TestListProducts_SearchMatchesTitleAndDescription(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	f := filters.Default()
	f.Search = "wireless"
	page, err := repo.ListProducts(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total) // Wireless Headphones, Wireless Mouse

	f.Search = "ergonomic"
	page, err = repo.ListProducts(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total) // stand, mouse, chair match by description
}

func TestListProducts_CategoryFilter(t *testing.T) {
	repo := setupRepo(t)

	f := filters.Default()
	f.Category = "Furniture"
	page, err := repo.ListProducts(context.Background(), f)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, p := range page.Products {
		assert.Equal(t, "Furniture", p.Category)
	}
}

func TestListProducts_SortByPrice(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	f := filters.Default()
	f.Sort = filters.SortPriceAsc
	page, err := repo.ListProducts(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, "Tablet Stand", page.Products[0].Title)
	assert.InDelta(t, 34.99, page.Products[0].Price, 1e-9)

	f.Sort = filters.SortPriceDesc
	page, err = repo.ListProducts(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", page.Products[0].Title)
}

func TestListProducts_Pagination(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	f := filters.Default()
	f.Limit = 5

	page, err := repo.ListProducts(ctx, f)
	require.NoError(t, err)
	assert.Len(t, page.Products, 5)
	assert.True(t, page.HasMore)

	f.Page = 3
	page, err = repo.ListProducts(ctx, f)
	require.NoError(t, err)
	assert.Len(t, page.Products, 2)
	assert.False(t, page.HasMore)
	assert.Equal(t, 3, page.Page)
}

func TestListProducts_EmptyResult(t *testing.T) {
	repo := setupRepo(t)

	f := filters.Default()
	f.Search = "no such product"
	page, err := repo.ListProducts(context.Background(), f)

	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Products)
	assert.False(t, page.HasMore)
}

func TestCategories_DistinctAndSorted(t *testing.T) {
	repo := setupRepo(t)

	categories, err := repo.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Accessories", "Electronics", "Furniture"}, categories)
}

func TestGetProduct(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p, err := repo.GetProduct(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Wireless Headphones", p.Title)
	assert.InDelta(t, 199.99, p.Price, 1e-9)

	_, err = repo.GetProduct(ctx, "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
