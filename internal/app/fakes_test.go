package app

import (
	"context"

	"github.com/mahede182/appifyEcommerce/internal/domain"
)

// fakeStore is an in-memory stand-in for the postgres repositories. It backs
// every service interface in this package so service tests can share one
// consistent view of products, carts and orders.
type fakeStore struct {
	products   map[string]domain.Product
	carts      []domain.Cart
	items      []domain.CartItem
	orders     []domain.Order
	orderItems []domain.OrderItem
}

func newFakeStore(products ...domain.Product) *fakeStore {
	m := make(map[string]domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeStore{products: m}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeStore) GetProductForUpdate(_ context.Context, productID string) (domain.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeStore) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	return f.GetProductForUpdate(ctx, productID)
}

func (f *fakeStore) UpdateStock(_ context.Context, p domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeStore) CreateProduct(_ context.Context, p domain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) GetOrCreateCart(_ context.Context, cartID, userID string) (domain.Cart, error) {
	for _, c := range f.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	cart := domain.Cart{ID: cartID, UserID: userID}
	f.carts = append(f.carts, cart)
	return cart, nil
}

func (f *fakeStore) FindCartByUser(_ context.Context, userID string) (*domain.Cart, error) {
	for i := range f.carts {
		if f.carts[i].UserID == userID {
			c := f.carts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetCart(_ context.Context, cartID string) (domain.Cart, error) {
	for _, c := range f.carts {
		if c.ID == cartID {
			return c, nil
		}
	}
	return domain.Cart{}, domain.ErrCartItemNotFound
}

func (f *fakeStore) FindItem(_ context.Context, cartID, productID string) (*domain.CartItem, error) {
	for i := range f.items {
		if f.items[i].CartID == cartID && f.items[i].ProductID == productID {
			item := f.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetItem(_ context.Context, itemID string) (domain.CartItem, error) {
	for _, item := range f.items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return domain.CartItem{}, domain.ErrCartItemNotFound
}

func (f *fakeStore) CreateItem(_ context.Context, item domain.CartItem) error {
	if _, ok := f.products[item.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeStore) UpdateItemQuantity(_ context.Context, itemID string, quantity int) error {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (f *fakeStore) DeleteItem(_ context.Context, itemID string) error {
	for i := range f.items {
		if f.items[i].ID == itemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrCartItemNotFound
}

func (f *fakeStore) DeleteItemsByCart(_ context.Context, cartID string) error {
	kept := f.items[:0]
	for _, item := range f.items {
		if item.CartID != cartID {
			kept = append(kept, item)
		}
	}
	f.items = kept
	return nil
}

func (f *fakeStore) ListItemsWithProducts(_ context.Context, cartID string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	for _, item := range f.items {
		if item.CartID != cartID {
			continue
		}
		lines = append(lines, domain.CartLine{Item: item, Product: f.products[item.ProductID]})
	}
	return lines, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order domain.Order) error {
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeStore) CreateOrderItems(_ context.Context, items []domain.OrderItem) error {
	f.orderItems = append(f.orderItems, items...)
	return nil
}

func (f *fakeStore) GetOrder(_ context.Context, orderID string) (domain.Order, error) {
	for _, o := range f.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

func (f *fakeStore) ListOrderItems(_ context.Context, orderID string) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	for _, item := range f.orderItems {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeStore) ListOrdersByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

// cartItems returns the live items of the given user's cart.
func (f *fakeStore) cartItems(userID string) []domain.CartItem {
	var cartID string
	for _, c := range f.carts {
		if c.UserID == userID {
			cartID = c.ID
		}
	}
	var out []domain.CartItem
	for _, item := range f.items {
		if item.CartID == cartID {
			out = append(out, item)
		}
	}
	return out
}
