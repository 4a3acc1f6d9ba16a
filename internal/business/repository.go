// Package business is the record store: it owns persistence of businesses
// and their sales, expenses and products, and hands the finance engine
// fully materialised snapshots.
package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gescom-app/gescom/internal/finance"
	"github.com/gescom-app/gescom/internal/platform/httpx"
)

// ErrNotFound indicates the business does not exist or is soft-deleted.
// It wraps the transport sentinel so httpx.RespondError maps it to 404.
var ErrNotFound = fmt.Errorf("business: %w", httpx.ErrNotFound)

// ErrDuplicateName indicates a business with the same name already exists.
var ErrDuplicateName = fmt.Errorf("business: %w", httpx.ErrDuplicate)

const uniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence for businesses and
// their records. Soft-deleted rows are filtered in every query.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create registers a new business.
func (r *Repository) Create(ctx context.Context, name string) (finance.Business, error) {
	id := uuid.NewString()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO businesses (id, name, created_at) VALUES ($1, $2, NOW())`,
		id, name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return finance.Business{}, ErrDuplicateName
		}
		return finance.Business{}, fmt.Errorf("business: create: %w", err)
	}
	return finance.Business{ID: id, Name: name}, nil
}

// SoftDelete marks a business deleted without dropping its records.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE businesses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("business: soft delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get loads one business with all of its records.
func (r *Repository) Get(ctx context.Context, id string) (finance.Business, error) {
	var b finance.Business
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM businesses WHERE id = $1 AND deleted_at IS NULL`,
		id,
	).Scan(&b.ID, &b.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return finance.Business{}, ErrNotFound
	}
	if err != nil {
		return finance.Business{}, fmt.Errorf("business: get: %w", err)
	}
	if err := r.loadRecords(ctx, &b); err != nil {
		return finance.Business{}, err
	}
	return b, nil
}

// List loads every live business with all of its records.
func (r *Repository) List(ctx context.Context) ([]finance.Business, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name FROM businesses WHERE deleted_at IS NULL ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("business: list: %w", err)
	}
	defer rows.Close()

	var businesses []finance.Business
	for rows.Next() {
		var b finance.Business
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("business: list scan: %w", err)
		}
		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("business: list rows: %w", err)
	}

	for i := range businesses {
		if err := r.loadRecords(ctx, &businesses[i]); err != nil {
			return nil, err
		}
	}
	return businesses, nil
}

func (r *Repository) loadRecords(ctx context.Context, b *finance.Business) error {
	sales, err := r.loadSales(ctx, b.ID)
	if err != nil {
		return err
	}
	expenses, err := r.loadExpenses(ctx, b.ID)
	if err != nil {
		return err
	}
	products, err := r.loadProducts(ctx, b.ID)
	if err != nil {
		return err
	}
	b.Sales = sales
	b.Expenses = expenses
	b.Products = products
	return nil
}

func (r *Repository) loadSales(ctx context.Context, businessID string) ([]finance.Sale, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT sale_date, product_id, quantity, unit_price, total, sale_type
		FROM sales
		WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY sale_date`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("business: load sales: %w", err)
	}
	defer rows.Close()

	var sales []finance.Sale
	for rows.Next() {
		var s finance.Sale
		if err := rows.Scan(&s.Date, &s.ProductID, &s.Quantity, &s.UnitPrice, &s.Total, &s.Type); err != nil {
			return nil, fmt.Errorf("business: scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *Repository) loadExpenses(ctx context.Context, businessID string) ([]finance.Expense, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT expense_date, category, amount
		FROM expenses
		WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY expense_date`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("business: load expenses: %w", err)
	}
	defer rows.Close()

	var expenses []finance.Expense
	for rows.Next() {
		var e finance.Expense
		if err := rows.Scan(&e.Date, &e.Category, &e.Amount); err != nil {
			return nil, fmt.Errorf("business: scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *Repository) loadProducts(ctx context.Context, businessID string) ([]finance.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, stock, min_stock, cost_price, wholesale_price, retail_price
		FROM products
		WHERE business_id = $1 AND deleted_at IS NULL
		ORDER BY name`,
		businessID,
	)
	if err != nil {
		return nil, fmt.Errorf("business: load products: %w", err)
	}
	defer rows.Close()

	var products []finance.Product
	for rows.Next() {
		var p finance.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.MinStock, &p.CostPrice, &p.WholesalePrice, &p.RetailPrice); err != nil {
			return nil, fmt.Errorf("business: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
