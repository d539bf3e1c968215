package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

// CartRepo stores one cart document per user. The header row carries
// the version checked on every save; lines are rewritten wholesale.
type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type cartRow struct {
	UserID    string `db:"user_id"`
	Version   int    `db:"version"`
	UpdatedAt string `db:"updated_at"`
}

type cartLineRow struct {
	Qty int `db:"qty"`
	domain.Product
}

const lineProductColumns = `p.id, p.category_id, p.title, p.description, p.thumbnail,
	         p.price, p.discount_percentage, p.stock, p.active`

// GetOrCreate returns the user's cart, creating an empty one on first
// access. Concurrent first calls still end up with a single cart.
func (r *CartRepo) GetOrCreate(ctx context.Context, userID string) (domain.Cart, error) {
	ts := now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO carts(user_id, version, created_at, updated_at)
		VALUES(?, 0, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`), userID, ts, ts)
	if err != nil {
		return domain.Cart{}, domain.Persistence(err)
	}
	return r.Get(ctx, userID)
}

// Get loads the cart or returns a NotFound error.
func (r *CartRepo) Get(ctx context.Context, userID string) (domain.Cart, error) {
	var cart domain.Cart
	err := InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		cart, err = loadCart(ctx, tx, userID)
		return err
	})
	return cart, err
}

func loadCart(ctx context.Context, q sqlx.ExtContext, userID string) (domain.Cart, error) {
	var h cartRow
	err := sqlx.GetContext(ctx, q, &h, q.Rebind(`
		SELECT user_id, version, COALESCE(updated_at,'') AS updated_at
		FROM carts WHERE user_id = ?
	`), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, domain.NotFound("Cart not found")
	}
	if err != nil {
		return domain.Cart{}, domain.Persistence(err)
	}

	var lines []cartLineRow
	if err := sqlx.SelectContext(ctx, q, &lines, q.Rebind(`
		SELECT ci.qty, `+lineProductColumns+`
		FROM cart_items ci JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.pos
	`), userID); err != nil {
		return domain.Cart{}, domain.Persistence(err)
	}

	var saved []domain.Product
	if err := sqlx.SelectContext(ctx, q, &saved, q.Rebind(`
		SELECT `+lineProductColumns+`
		FROM saved_items si JOIN products p ON p.id = si.product_id
		WHERE si.user_id = ?
		ORDER BY si.pos
	`), userID); err != nil {
		return domain.Cart{}, domain.Persistence(err)
	}

	cart := domain.NewCart(h.UserID)
	for _, l := range lines {
		cart.Products = append(cart.Products, domain.LineItem{Product: l.Product, Quantity: l.Qty})
	}
	cart.SavedForLater = append(cart.SavedForLater, saved...)
	// Totals follow current catalog prices, not the stored snapshot.
	cart.Recalculate()
	cart.Version = h.Version
	cart.UpdatedAt = h.UpdatedAt
	return cart, nil
}

// Save writes the whole cart if nobody saved it since it was loaded.
// A stale version yields a Conflict error and leaves storage untouched.
func (r *CartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	ts := now()
	if err := InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return saveCart(ctx, tx, cart, ts)
	}); err != nil {
		return err
	}
	cart.Version++
	cart.UpdatedAt = ts
	return nil
}

func saveCart(ctx context.Context, tx *sqlx.Tx, cart *domain.Cart, ts string) error {
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE carts
		SET version = version + 1, total_amount = ?, total_original_price = ?, total_items = ?, updated_at = ?
		WHERE user_id = ? AND version = ?
	`), cart.TotalAmount, cart.TotalOriginalPrice, cart.TotalItems, ts, cart.UserID, cart.Version)
	if err != nil {
		return domain.Persistence(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Persistence(err)
	}
	if n == 0 {
		return domain.Conflict(domain.MsgStaleCart)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM cart_items WHERE user_id = ?`), cart.UserID); err != nil {
		return domain.Persistence(err)
	}
	for i, li := range cart.Products {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO cart_items(user_id, pos, product_id, qty) VALUES(?, ?, ?, ?)
		`), cart.UserID, i, li.Product.ID, li.Quantity); err != nil {
			return domain.Persistence(err)
		}
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM saved_items WHERE user_id = ?`), cart.UserID); err != nil {
		return domain.Persistence(err)
	}
	for i, p := range cart.SavedForLater {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO saved_items(user_id, pos, product_id) VALUES(?, ?, ?)
		`), cart.UserID, i, p.ID); err != nil {
			return domain.Persistence(err)
		}
	}
	return nil
}
