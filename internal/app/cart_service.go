package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/mahede182/appifyEcommerce/internal/domain"
)

type CartRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetOrCreateCart(ctx context.Context, cartID, userID string) (domain.Cart, error)
	FindCartByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (domain.Cart, error)
	FindItem(ctx context.Context, cartID, productID string) (*domain.CartItem, error)
	GetItem(ctx context.Context, itemID string) (domain.CartItem, error)
	CreateItem(ctx context.Context, item domain.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	DeleteItem(ctx context.Context, itemID string) error
	DeleteItemsByCart(ctx context.Context, cartID string) error
	ListItemsWithProducts(ctx context.Context, cartID string) ([]domain.CartLine, error)
}

// CartService maintains cart line items and keeps each item's quantity backed
// by an equal stock reservation for as long as the item exists.
type CartService struct {
	carts  CartRepository
	ledger *StockLedger
}

func NewCartService(carts CartRepository, ledger *StockLedger) *CartService {
	return &CartService{carts: carts, ledger: ledger}
}

type AddItemInput struct {
	Actor     domain.Actor
	ProductID string
	Quantity  int
}

// AddItem puts qty units of a product into the caller's cart, reserving the
// same amount of stock. Adding a product already in the cart merges into the
// existing line; only the incremental quantity is validated and reserved.
func (s *CartService) AddItem(ctx context.Context, in AddItemInput) (domain.CartItem, error) {
	if in.Quantity <= 0 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	var result domain.CartItem
	err := s.carts.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.carts.GetOrCreateCart(txCtx, uuid.NewString(), in.Actor.UserID)
		if err != nil {
			return err
		}

		existing, err := s.carts.FindItem(txCtx, cart.ID, in.ProductID)
		if err != nil {
			return err
		}

		// The reserve locks the product row and validates the incremental
		// quantity; a failure aborts the whole transaction.
		if _, err := s.ledger.Reserve(txCtx, in.ProductID, in.Quantity); err != nil {
			return err
		}

		if existing != nil {
			newQty := existing.Quantity + in.Quantity
			if err := s.carts.UpdateItemQuantity(txCtx, existing.ID, newQty); err != nil {
				return err
			}
			existing.Quantity = newQty
			result = *existing
			return nil
		}

		item := domain.CartItem{
			ID:        uuid.NewString(),
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
		}
		if err := s.carts.CreateItem(txCtx, item); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return domain.CartItem{}, err
	}
	return result, nil
}

// UpdateItem sets a cart item to an absolute quantity, reserving or releasing
// the difference against the item's product.
func (s *CartService) UpdateItem(ctx context.Context, actor domain.Actor, itemID string, quantity int) (domain.CartItem, error) {
	if quantity <= 0 {
		return domain.CartItem{}, domain.ErrInvalidQuantity
	}

	var result domain.CartItem
	err := s.carts.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.authorizeItem(txCtx, actor, itemID)
		if err != nil {
			return err
		}

		diff := quantity - item.Quantity
		switch {
		case diff > 0:
			if _, err := s.ledger.Reserve(txCtx, item.ProductID, diff); err != nil {
				return err
			}
		case diff < 0:
			if _, err := s.ledger.Release(txCtx, item.ProductID, -diff); err != nil {
				return err
			}
		}

		if err := s.carts.UpdateItemQuantity(txCtx, item.ID, quantity); err != nil {
			return err
		}
		item.Quantity = quantity
		result = item
		return nil
	})
	if err != nil {
		return domain.CartItem{}, err
	}
	return result, nil
}

// RemoveItem deletes a cart item and releases its full reservation. Release
// and delete share one transaction, so a reservation is never released twice.
func (s *CartService) RemoveItem(ctx context.Context, actor domain.Actor, itemID string) error {
	return s.carts.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.authorizeItem(txCtx, actor, itemID)
		if err != nil {
			return err
		}
		if _, err := s.ledger.Release(txCtx, item.ProductID, item.Quantity); err != nil {
			return err
		}
		return s.carts.DeleteItem(txCtx, item.ID)
	})
}

// authorizeItem loads a cart item and hides its existence from callers who
// neither own the cart nor hold the privileged capability.
func (s *CartService) authorizeItem(ctx context.Context, actor domain.Actor, itemID string) (domain.CartItem, error) {
	item, err := s.carts.GetItem(ctx, itemID)
	if err != nil {
		return domain.CartItem{}, err
	}
	cart, err := s.carts.GetCart(ctx, item.CartID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if !actor.CanAccess(cart.UserID) {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	return item, nil
}
