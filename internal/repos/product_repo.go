package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `
    id, category_id, title, description, thumbnail, price, discount_percentage, stock, active,
    COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) ListByCategory(ctx context.Context, catID string, limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(`
  SELECT`+productColumns+`
  FROM products
  WHERE category_id = ? AND active = 1
  ORDER BY created_at DESC, id
  LIMIT ? OFFSET ?
`), catID, limit, offset)
	return out, domain.Persistence(err)
}

// Get returns an active product or a NotFound error.
func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.GetContext(ctx, &p, r.db.Rebind(`
  SELECT`+productColumns+`
  FROM products
  WHERE id = ? AND active = 1
`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFound(domain.MsgProductNotFound)
	}
	return p, domain.Persistence(err)
}

func (r *ProductRepo) Search(ctx context.Context, q, catID string, limit, offset int) ([]domain.Product, error) {
	where := `active = 1`
	args := []any{}
	if q != "" {
		like := "%" + strings.ToLower(q) + "%"
		where += ` AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ?)`
		args = append(args, like, like)
	}
	if catID != "" {
		where += ` AND category_id = ?`
		args = append(args, catID)
	}

	query := `
  SELECT` + productColumns + `
  FROM products
  WHERE ` + where + `
  ORDER BY created_at DESC, id
  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Product{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...)
	return out, domain.Persistence(err)
}
