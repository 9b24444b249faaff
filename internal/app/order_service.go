package app

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mahede182/appifyEcommerce/internal/clock"
	"github.com/mahede182/appifyEcommerce/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateOrder(ctx context.Context, order domain.Order) error
	CreateOrderItems(ctx context.Context, items []domain.OrderItem) error
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

// OrderService turns carts or explicit item lists into immutable orders.
// Both entry points funnel into createOrder; they differ only in how stock is
// accounted: cart lines carry a live reservation that gets converted, direct
// placement validates and decrements unreserved stock.
type OrderService struct {
	orders   OrderRepository
	carts    CartRepository
	products LedgerProducts
	ledger   *StockLedger
	clock    clock.Clock
}

func NewOrderService(orders OrderRepository, carts CartRepository, products LedgerProducts, ledger *StockLedger, clk clock.Clock) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		ledger:   ledger,
		clock:    clk,
	}
}

// PlacedOrder is the result of a successful checkout or direct placement.
type PlacedOrder struct {
	Order domain.Order
	Items []domain.OrderItem
}

type orderSourceKind int

const (
	fromCart orderSourceKind = iota
	fromItemList
)

type orderLine struct {
	productID string
	quantity  int
	unitPrice decimal.Decimal
}

type orderSource struct {
	kind   orderSourceKind
	lines  []orderLine
	cartID string
}

// Checkout converts the caller's cart into an order. Totals are priced from
// the current product prices; each line's reservation is converted into a
// permanent deduction under the product's row lock; cart items are cleared.
// Any failure rolls the whole transaction back.
func (s *OrderService) Checkout(ctx context.Context, actor domain.Actor) (PlacedOrder, error) {
	var placed PlacedOrder
	err := s.orders.WithTx(ctx, func(txCtx context.Context) error {
		cart, err := s.carts.FindCartByUser(txCtx, actor.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return domain.ErrEmptyCart
		}

		lines, err := s.carts.ListItemsWithProducts(txCtx, cart.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}

		src := orderSource{kind: fromCart, cartID: cart.ID, lines: make([]orderLine, 0, len(lines))}
		for _, line := range lines {
			src.lines = append(src.lines, orderLine{
				productID: line.Item.ProductID,
				quantity:  line.Item.Quantity,
				unitPrice: line.Product.Price,
			})
		}

		placed, err = s.createOrder(txCtx, actor.UserID, src)
		return err
	})
	if err != nil {
		return PlacedOrder{}, err
	}
	return placed, nil
}

type OrderLineInput struct {
	ProductID string
	Quantity  int
}

// PlaceOrder creates an order directly from an item list, bypassing the cart.
// All product rows are locked and validated before any stock is committed;
// duplicate products are merged so the check runs once against a single
// locked snapshot. Validation uses available stock, so reservations held in
// the caller's own cart are not reconciled with the requested quantities.
func (s *OrderService) PlaceOrder(ctx context.Context, actor domain.Actor, inputs []OrderLineInput) (PlacedOrder, error) {
	if len(inputs) == 0 {
		return PlacedOrder{}, domain.ErrInvalidQuantity
	}

	merged := make(map[string]int, len(inputs))
	productIDs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return PlacedOrder{}, domain.ErrInvalidQuantity
		}
		if _, ok := merged[in.ProductID]; !ok {
			productIDs = append(productIDs, in.ProductID)
		}
		merged[in.ProductID] += in.Quantity
	}

	// Lock rows in ascending id order so concurrent multi-product orders
	// cannot deadlock.
	lockOrder := append([]string(nil), productIDs...)
	sort.Strings(lockOrder)

	var placed PlacedOrder
	err := s.orders.WithTx(ctx, func(txCtx context.Context) error {
		snapshot := make(map[string]domain.Product, len(lockOrder))
		for _, id := range lockOrder {
			p, err := s.products.GetProductForUpdate(txCtx, id)
			if err != nil {
				return err
			}
			snapshot[id] = p
		}

		// Every line must pass before any stock is committed.
		src := orderSource{kind: fromItemList, lines: make([]orderLine, 0, len(productIDs))}
		for _, id := range productIDs {
			p := snapshot[id]
			qty := merged[id]
			if !p.InStock(qty) {
				return &domain.InsufficientStockError{ProductID: id, Available: p.AvailableStock(), Requested: qty}
			}
			src.lines = append(src.lines, orderLine{productID: id, quantity: qty, unitPrice: p.Price})
		}

		var err error
		placed, err = s.createOrder(txCtx, actor.UserID, src)
		return err
	})
	if err != nil {
		return PlacedOrder{}, err
	}
	return placed, nil
}

// createOrder is the single order-construction routine both placement paths
// share: same pricing, same item shape, same all-or-nothing transaction.
func (s *OrderService) createOrder(txCtx context.Context, userID string, src orderSource) (PlacedOrder, error) {
	total := decimal.Zero
	for _, line := range src.lines {
		total = total.Add(line.unitPrice.Mul(decimal.NewFromInt(int64(line.quantity))))
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		TotalPrice: total,
		Status:     domain.OrderStatusPending,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.orders.CreateOrder(txCtx, order); err != nil {
		return PlacedOrder{}, err
	}

	items := make([]domain.OrderItem, 0, len(src.lines))
	for _, line := range src.lines {
		items = append(items, domain.OrderItem{
			ID:              uuid.NewString(),
			OrderID:         order.ID,
			ProductID:       line.productID,
			Quantity:        line.quantity,
			PriceAtPurchase: line.unitPrice,
		})

		switch src.kind {
		case fromCart:
			if _, err := s.ledger.Reduce(txCtx, line.productID, line.quantity); err != nil {
				return PlacedOrder{}, err
			}
		case fromItemList:
			if _, err := s.ledger.Deduct(txCtx, line.productID, line.quantity); err != nil {
				return PlacedOrder{}, err
			}
		}
	}

	if err := s.orders.CreateOrderItems(txCtx, items); err != nil {
		return PlacedOrder{}, err
	}

	if src.kind == fromCart {
		if err := s.carts.DeleteItemsByCart(txCtx, src.cartID); err != nil {
			return PlacedOrder{}, err
		}
	}

	return PlacedOrder{Order: order, Items: items}, nil
}

// GetOrder returns an order visible to the actor: its owner or a privileged
// caller. Others get not-found, never forbidden.
func (s *OrderService) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (PlacedOrder, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if !actor.CanAccess(order.UserID) {
		return PlacedOrder{}, domain.ErrOrderNotFound
	}
	items, err := s.orders.ListOrderItems(ctx, orderID)
	if err != nil {
		return PlacedOrder{}, err
	}
	return PlacedOrder{Order: order, Items: items}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	return s.orders.ListOrdersByUser(ctx, actor.UserID)
}
