package repos

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"storefront/internal/domain"
)

// OpenDB opens PostgreSQL for postgres:// DSNs and SQLite for anything else,
// then applies the schema and the idempotent seeds.
func OpenDB(dsn string) (*sqlx.DB, error) {
	driver := driverFor(dsn)
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// :memory: databases live per connection, and one writer avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func driverFor(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "postgres"
	}
	return "sqlite"
}

// InTx runs fn in a transaction and commits only if fn succeeds.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Persistence(err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Persistence(err)
	}
	return nil
}

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

const schema = `
-- Catalog
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id),
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  thumbnail TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  discount_percentage NUMERIC NOT NULL DEFAULT 0
    CHECK (discount_percentage >= 0 AND discount_percentage < 100),
  stock INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_title    ON products(LOWER(title));

-- Carts: one versioned document per user
CREATE TABLE IF NOT EXISTS carts(
  user_id TEXT PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  total_amount NUMERIC NOT NULL DEFAULT 0,
  total_original_price NUMERIC NOT NULL DEFAULT 0,
  total_items INTEGER NOT NULL DEFAULT 0,
  created_at TEXT,
  updated_at TEXT
);

-- keyed by position: move-to-cart may hold two lines for one product
CREATE TABLE IF NOT EXISTS cart_items(
  user_id TEXT NOT NULL REFERENCES carts(user_id) ON DELETE CASCADE,
  pos INTEGER NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  PRIMARY KEY (user_id, pos)
);

CREATE TABLE IF NOT EXISTS saved_items(
  user_id TEXT NOT NULL REFERENCES carts(user_id) ON DELETE CASCADE,
  pos INTEGER NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id),
  PRIMARY KEY (user_id, pos)
);

-- Wishlists
CREATE TABLE IF NOT EXISTS wishlists(
  user_id TEXT PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 0,
  created_at TEXT,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS wishlist_items(
  user_id TEXT NOT NULL REFERENCES wishlists(user_id) ON DELETE CASCADE,
  pos INTEGER NOT NULL,
  product_id TEXT NOT NULL REFERENCES products(id),
  PRIMARY KEY (user_id, pos),
  UNIQUE (user_id, product_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`

func ensureSchema(db *sqlx.DB) error {
	ddl := schema
	if db.DriverName() == "sqlite" {
		ddl = "PRAGMA foreign_keys = ON;\n" + ddl
	}
	_, err := db.Exec(ddl)
	return err
}

// seedCatalog inserts demo categories and products. Safe to run on every startup.
func seedCatalog(db *sqlx.DB) error {
	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	ts := now()
	cats := [][2]string{
		{"smartphones", "Smartphones"},
		{"laptops", "Laptops"},
		{"fragrances", "Fragrances"},
		{"groceries", "Groceries"},
	}
	for _, c := range cats {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO categories(id, name, created_at) VALUES(?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`), c[0], c[1], ts); err != nil {
			return err
		}
	}

	type p struct {
		id, cat, title, desc string
		price, discount      float64
		stock                int
	}
	products := []p{
		{"iphone-9", "smartphones", "iPhone 9", "An apple mobile which is nothing like apple", 549, 12.96, 94},
		{"galaxy-s21", "smartphones", "Samsung Galaxy S21", "6.2 inch display, 8GB RAM", 1249, 15.46, 36},
		{"macbook-pro", "laptops", "MacBook Pro", "MacBook Pro 2021 with mini-LED display", 1749, 11.02, 83},
		{"surface-laptop-4", "laptops", "Microsoft Surface Laptop 4", "Style and speed", 1499, 10.23, 68},
		{"perfume-oil", "fragrances", "Perfume Oil", "Mega Discount, Impression of Acqua Di Gio", 13, 8.4, 65},
		{"brown-perfume", "fragrances", "Brown Perfume", "Royal_Mirage Sport Brown Perfume", 40, 15.66, 52},
		{"honey-jar", "groceries", "Honey Jar", "Raw forest honey, 500g", 20, 0, 120},
		{"basmati-rice", "groceries", "Basmati Rice", "Aged long grain rice, 5kg", 90, 10, 40},
	}
	for _, x := range products {
		thumb := "https://cdn.storefront.test/products/" + x.id + "/thumbnail.jpg"
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO products(id, category_id, title, description, thumbnail, price, discount_percentage, stock, active, created_at)
			VALUES(?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
			ON CONFLICT(id) DO NOTHING
		`), x.id, x.cat, x.title, x.desc, thumb, x.price, x.discount, x.stock, ts); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// seedUsers ensures the demo USERs and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	log.Println("[seed] inserting demo users")

	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@storefront.test", "Alice", "USER", "Passw0rd!"),
		mk("u-bob", "bob@storefront.test", "Bob", "USER", "Passw0rd!"),
		mk("u-admin", "admin@storefront.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(tx.Rebind(`
			INSERT INTO users(id,email,name,password_hash,role,created_at)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`), x.ID, x.Email, x.Name, x.Hash, x.Role, now()); err != nil {
			return err
		}
	}

	return tx.Commit()
}
