package app

import (
	"context"

	"github.com/mahede182/appifyEcommerce/internal/domain"
	"github.com/shopspring/decimal"
)

// SummaryService is a read-only projection of a cart combined with live
// stock state. It takes no locks; the authoritative stock check happens
// again, under lock, at checkout.
type SummaryService struct {
	carts CartRepository
}

func NewSummaryService(carts CartRepository) *SummaryService {
	return &SummaryService{carts: carts}
}

type CartSummaryItem struct {
	ItemID         string
	ProductID      string
	ProductName    string
	UnitPrice      decimal.Decimal
	AvailableStock int
	Quantity       int
	ItemTotal      decimal.Decimal
	InStock        bool
}

type CartSummary struct {
	Items       []CartSummaryItem
	TotalPrice  decimal.Decimal
	ItemsCount  int
	CanCheckout bool
}

// CartSummary reports the caller's cart with per-item totals and stock
// availability. An absent or empty cart yields an all-zero summary that is
// not checkout-eligible.
func (s *SummaryService) CartSummary(ctx context.Context, actor domain.Actor) (CartSummary, error) {
	summary := CartSummary{
		Items:      []CartSummaryItem{},
		TotalPrice: decimal.Zero,
	}

	cart, err := s.carts.FindCartByUser(ctx, actor.UserID)
	if err != nil {
		return CartSummary{}, err
	}
	if cart == nil {
		return summary, nil
	}

	lines, err := s.carts.ListItemsWithProducts(ctx, cart.ID)
	if err != nil {
		return CartSummary{}, err
	}

	canCheckout := len(lines) > 0
	for _, line := range lines {
		itemTotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Item.Quantity)))
		inStock := line.Product.InStock(line.Item.Quantity)
		if !inStock {
			canCheckout = false
		}

		summary.Items = append(summary.Items, CartSummaryItem{
			ItemID:         line.Item.ID,
			ProductID:      line.Product.ID,
			ProductName:    line.Product.Name,
			UnitPrice:      line.Product.Price,
			AvailableStock: line.Product.AvailableStock(),
			Quantity:       line.Item.Quantity,
			ItemTotal:      itemTotal,
			InStock:        inStock,
		})
		summary.TotalPrice = summary.TotalPrice.Add(itemTotal)
	}

	summary.ItemsCount = len(summary.Items)
	summary.CanCheckout = canCheckout
	return summary, nil
}
