package repos

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

type wishlistRow struct {
	UserID    string `db:"user_id"`
	Version   int    `db:"version"`
	UpdatedAt string `db:"updated_at"`
}

func (r *WishlistRepo) GetOrCreate(ctx context.Context, userID string) (domain.Wishlist, error) {
	ts := now()
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
		INSERT INTO wishlists(user_id, version, created_at, updated_at)
		VALUES(?, 0, ?, ?)
		ON CONFLICT(user_id) DO NOTHING
	`), userID, ts, ts)
	if err != nil {
		return domain.Wishlist{}, domain.Persistence(err)
	}
	return r.Get(ctx, userID)
}

func (r *WishlistRepo) Get(ctx context.Context, userID string) (domain.Wishlist, error) {
	var w domain.Wishlist
	err := InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var h wishlistRow
		err := tx.GetContext(ctx, &h, tx.Rebind(`
			SELECT user_id, version, COALESCE(updated_at,'') AS updated_at
			FROM wishlists WHERE user_id = ?
		`), userID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("Wishlist not found")
		}
		if err != nil {
			return domain.Persistence(err)
		}

		var products []domain.Product
		if err := tx.SelectContext(ctx, &products, tx.Rebind(`
			SELECT `+lineProductColumns+`
			FROM wishlist_items wi JOIN products p ON p.id = wi.product_id
			WHERE wi.user_id = ?
			ORDER BY wi.pos
		`), userID); err != nil {
			return domain.Persistence(err)
		}

		w = domain.NewWishlist(h.UserID)
		w.Products = append(w.Products, products...)
		w.Version = h.Version
		w.UpdatedAt = h.UpdatedAt
		return nil
	})
	return w, err
}

// Save writes the wishlist under the same version rule as CartRepo.Save.
func (r *WishlistRepo) Save(ctx context.Context, w *domain.Wishlist) error {
	ts := now()
	if err := InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return saveWishlist(ctx, tx, w, ts)
	}); err != nil {
		return err
	}
	w.Version++
	w.UpdatedAt = ts
	return nil
}

// SaveWithCart commits a wishlist and a cart in one transaction, so a
// move between them is never half applied.
func (r *WishlistRepo) SaveWithCart(ctx context.Context, w *domain.Wishlist, cart *domain.Cart) error {
	ts := now()
	if err := InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := saveWishlist(ctx, tx, w, ts); err != nil {
			return err
		}
		return saveCart(ctx, tx, cart, ts)
	}); err != nil {
		return err
	}
	w.Version++
	w.UpdatedAt = ts
	cart.Version++
	cart.UpdatedAt = ts
	return nil
}

func saveWishlist(ctx context.Context, tx *sqlx.Tx, w *domain.Wishlist, ts string) error {
	res, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE wishlists SET version = version + 1, updated_at = ?
		WHERE user_id = ? AND version = ?
	`), ts, w.UserID, w.Version)
	if err != nil {
		return domain.Persistence(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Persistence(err)
	}
	if n == 0 {
		return domain.Conflict(domain.MsgStaleWishlist)
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM wishlist_items WHERE user_id = ?`), w.UserID); err != nil {
		return domain.Persistence(err)
	}
	for i, p := range w.Products {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`
			INSERT INTO wishlist_items(user_id, pos, product_id) VALUES(?, ?, ?)
		`), w.UserID, i, p.ID); err != nil {
			return domain.Persistence(err)
		}
	}
	return nil
}
