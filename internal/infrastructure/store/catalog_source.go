package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/storefront/internal/catalog"
	"go.uber.org/zap"
)

// PostgresCatalogSource loads the catalog dataset from the catalog_* tables.
// Rows come back in insertion order so listings match the seeded order.
type PostgresCatalogSource struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresCatalogSource(db *sql.DB, logger *zap.Logger) *PostgresCatalogSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresCatalogSource{db: db, logger: logger}
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	selectUsers = `
		SELECT id, phone, name, email, role, is_active, created_at
		FROM catalog_users ORDER BY created_at, id`
	selectShops = `
		SELECT id, name, description, address, category, latitude, longitude,
		       image_url, logo, rating, review_count, is_open, opening_time, closing_time,
		       owner_id, owner, phone, status, is_active, created_at
		FROM catalog_shops ORDER BY position`
	selectProducts = `
		SELECT id, name, description, category, price, unit, shop_id, image_url,
		       in_stock, quantity, created_at
		FROM catalog_products ORDER BY position`
	selectCategories = `SELECT name FROM catalog_categories ORDER BY position`
)

// Load reads every table and rejects rows that break catalog validation or
// reference a missing shop. catalog.NewStore then rejects duplicate IDs.
func (s *PostgresCatalogSource) Load(ctx context.Context) (catalog.Seed, error) {
	var seed catalog.Seed
	var err error

	if seed.Users, err = queryAll(ctx, s.db, selectUsers, scanUser); err != nil {
		return catalog.Seed{}, fmt.Errorf("load users: %w", err)
	}
	if seed.Shops, err = queryAll(ctx, s.db, selectShops, scanShop); err != nil {
		return catalog.Seed{}, fmt.Errorf("load shops: %w", err)
	}
	if seed.Products, err = queryAll(ctx, s.db, selectProducts, scanProduct); err != nil {
		return catalog.Seed{}, fmt.Errorf("load products: %w", err)
	}
	if seed.Categories, err = queryAll(ctx, s.db, selectCategories, scanCategory); err != nil {
		return catalog.Seed{}, fmt.Errorf("load categories: %w", err)
	}

	if err := catalog.ValidateSeed(seed); err != nil {
		return catalog.Seed{}, fmt.Errorf("invalid catalog data: %w", err)
	}

	s.logger.Info("catalog loaded from postgres",
		zap.Int("users", len(seed.Users)),
		zap.Int("shops", len(seed.Shops)),
		zap.Int("products", len(seed.Products)),
		zap.Int("categories", len(seed.Categories)),
	)
	return seed, nil
}

// Import writes seed into empty tables in one transaction. Existing rows with
// the same key are left untouched.
func (s *PostgresCatalogSource) Import(ctx context.Context, seed catalog.Seed) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range seed.Users {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_users (id, phone, name, email, role, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO NOTHING`,
			u.ID, u.Phone, u.Name, u.Email, string(u.Role), u.IsActive, u.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}
	for _, sh := range seed.Shops {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_shops (id, name, description, address, category, latitude, longitude,
				image_url, logo, rating, review_count, is_open, opening_time, closing_time,
				owner_id, owner, phone, status, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			ON CONFLICT (id) DO NOTHING`,
			sh.ID, sh.Name, sh.Description, sh.Address, sh.Category, nullFloat(sh.Latitude), nullFloat(sh.Longitude),
			sh.ImageURL, sh.Logo, sh.Rating, sh.ReviewCount, sh.IsOpen, sh.OpeningTime, sh.ClosingTime,
			sh.OwnerID, sh.Owner, sh.Phone, string(sh.Status), sh.IsActive, sh.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert shop %s: %w", sh.ID, err)
		}
	}
	for _, p := range seed.Products {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_products (id, name, description, category, price, unit, shop_id,
				image_url, in_stock, quantity, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.Description, p.Category, p.Price, p.Unit, p.ShopID,
			p.ImageURL, p.InStock, p.Quantity, p.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert product %s: %w", p.ID, err)
		}
	}
	for _, c := range seed.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO catalog_categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, c,
		); err != nil {
			return fmt.Errorf("insert category %s: %w", c, err)
		}
	}
	return tx.Commit()
}

func queryAll[T any](ctx context.Context, db *sql.DB, query string, scan func(rowScanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanUser(row rowScanner) (catalog.User, error) {
	var u catalog.User
	var role string
	err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Email, &role, &u.IsActive, &u.CreatedAt)
	u.Role = catalog.Role(role)
	return u, err
}

func scanShop(row rowScanner) (catalog.Shop, error) {
	var sh catalog.Shop
	var lat, lng sql.NullFloat64
	var status string
	err := row.Scan(
		&sh.ID, &sh.Name, &sh.Description, &sh.Address, &sh.Category, &lat, &lng,
		&sh.ImageURL, &sh.Logo, &sh.Rating, &sh.ReviewCount, &sh.IsOpen, &sh.OpeningTime, &sh.ClosingTime,
		&sh.OwnerID, &sh.Owner, &sh.Phone, &status, &sh.IsActive, &sh.CreatedAt,
	)
	if err != nil {
		return catalog.Shop{}, err
	}
	sh.Status = catalog.ShopStatus(status)
	if lat.Valid && lng.Valid {
		sh.Latitude = catalog.Float(lat.Float64)
		sh.Longitude = catalog.Float(lng.Float64)
	}
	return sh, nil
}

func scanProduct(row rowScanner) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Unit, &p.ShopID,
		&p.ImageURL, &p.InStock, &p.Quantity, &p.CreatedAt)
	return p, err
}

func scanCategory(row rowScanner) (string, error) {
	var name string
	err := row.Scan(&name)
	return name, err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
