package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mahede182/appifyEcommerce/internal/domain"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetOrCreateCart returns the user's single cart, creating it when absent.
// The upsert rides on the unique constraint on carts.user_id, so two
// concurrent first mutations by the same user resolve to the same row.
func (r *CartRepository) GetOrCreateCart(ctx context.Context, cartID, userID string) (domain.Cart, error) {
	const stmt = `
INSERT INTO carts (id, user_id)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
RETURNING id, user_id`

	var c domain.Cart
	err := r.queryRow(ctx, stmt, cartID, userID).Scan(&c.ID, &c.UserID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Cart{}, domain.ErrInvalidID
		}
		return domain.Cart{}, fmt.Errorf("get or create cart: %w", err)
	}
	return c, nil
}

// FindCartByUser returns nil without error when the user has no cart yet.
func (r *CartRepository) FindCartByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	const query = `SELECT id, user_id FROM carts WHERE user_id = $1`

	var c domain.Cart
	err := r.queryRow(ctx, query, userID).Scan(&c.ID, &c.UserID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &c, nil
}

func (r *CartRepository) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	const query = `SELECT id, user_id FROM carts WHERE id = $1`

	var c domain.Cart
	err := r.queryRow(ctx, query, cartID).Scan(&c.ID, &c.UserID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Cart{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Cart{}, domain.ErrCartItemNotFound
		}
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	return c, nil
}

// FindItem returns nil without error when the cart has no line for the product.
func (r *CartRepository) FindItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error) {
	const query = `
SELECT id, cart_id, product_id, quantity
FROM cart_items
WHERE cart_id = $1 AND product_id = $2`

	var item domain.CartItem
	err := r.queryRow(ctx, query, cartID, productID).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	return &item, nil
}

func (r *CartRepository) GetItem(ctx context.Context, itemID string) (domain.CartItem, error) {
	const query = `
SELECT id, cart_id, product_id, quantity
FROM cart_items
WHERE id = $1`

	var item domain.CartItem
	err := r.queryRow(ctx, query, itemID).
		Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.CartItem{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("get cart item: %w", err)
	}
	return item, nil
}

func (r *CartRepository) CreateItem(ctx context.Context, item domain.CartItem) error {
	const stmt = `
INSERT INTO cart_items (id, cart_id, product_id, quantity)
VALUES ($1, $2, $3, $4)`

	_, err := r.exec(ctx, stmt, item.ID, item.CartID, item.ProductID, item.Quantity)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("create cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	const stmt = `UPDATE cart_items SET quantity = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, itemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) DeleteItem(ctx context.Context, itemID string) error {
	const stmt = `DELETE FROM cart_items WHERE id = $1`

	tag, err := r.exec(ctx, stmt, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) DeleteItemsByCart(ctx context.Context, cartID string) error {
	const stmt = `DELETE FROM cart_items WHERE cart_id = $1`

	if _, err := r.exec(ctx, stmt, cartID); err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	return nil
}

// ListItemsWithProducts reads the cart's lines joined with a snapshot of each
// product, ordered by insertion.
func (r *CartRepository) ListItemsWithProducts(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	const query = `
SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
       p.id, p.name, p.description, p.price, p.stock_quantity, p.reserved_stock
FROM cart_items ci
JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at ASC`

	rows, err := r.query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.Item.ID, &line.Item.CartID, &line.Item.ProductID, &line.Item.Quantity,
			&line.Product.ID, &line.Product.Name, &line.Product.Description,
			&line.Product.Price, &line.Product.StockQuantity, &line.Product.ReservedStock,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate cart lines: %w", rows.Err())
	}
	return lines, nil
}

func (r *CartRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CartRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *CartRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
