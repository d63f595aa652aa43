package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/sync/singleflight"
	_ "modernc.org/sqlite"

	"github.com/globaloptima/storefront/internal/domain"
	"github.com/globaloptima/storefront/internal/filters"
)

var ErrProductNotFound = errors.New("product not found")

// Repository serves the catalog: filtered, sorted, paginated product queries
// over sqlite.
type Repository struct {
	db  *sql.DB
	sfg singleflight.Group // collapses concurrent category listings
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// ListProducts runs one catalog query: search over title and description,
// exact category match, the requested sort, and limit/offset pagination.
func (r *Repository) ListProducts(ctx context.Context, f filters.State) (*domain.ProductsPage, error) {
	f = f.Normalized()
	where, args := buildWhere(f)

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query := "SELECT id, title, description, price, image, category FROM products" +
		where + orderBy(f.Sort) + " LIMIT ? OFFSET ?"
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Price,
			&p.Image,
			&p.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &domain.ProductsPage{
		Products: products,
		Total:    total,
		Page:     f.Page,
		Limit:    f.Limit,
		HasMore:  f.Page*f.Limit < total,
	}, nil
}

func buildWhere(f filters.State) (string, []any) {
	var conds []string
	var args []any
	if f.Search != "" {
		needle := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, "(lower(title) LIKE ? OR lower(description) LIKE ?)")
		args = append(args, needle, needle)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderBy(sort filters.Sort) string {
	switch sort {
	case filters.SortPriceAsc:
		return " ORDER BY price ASC"
	case filters.SortPriceDesc:
		return " ORDER BY price DESC"
	case filters.SortNameDesc:
		return " ORDER BY title COLLATE NOCASE DESC"
	default:
		return " ORDER BY title COLLATE NOCASE ASC"
	}
}

// Categories returns the distinct category names currently present among
// products.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	v, err, _ := r.sfg.Do("categories", func() (interface{}, error) {
		rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM products ORDER BY category")
		if err != nil {
			return nil, fmt.Errorf("failed to query categories: %w", err)
		}
		defer rows.Close()

		var categories []string
		for rows.Next() {
			var c string
			if err := rows.Scan(&c); err != nil {
				return nil, fmt.Errorf("failed to scan category: %w", err)
			}
			categories = append(categories, c)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("row iteration error: %w", err)
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	query := "SELECT id, title, description, price, image, category FROM products WHERE id = ?"

	var p domain.Product
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Category,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return &p, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
