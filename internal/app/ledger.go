package app

import (
	"context"
	"errors"

	"github.com/mahede182/appifyEcommerce/internal/domain"
	"go.uber.org/zap"
)

// LedgerProducts is the product storage surface the ledger works against.
type LedgerProducts interface {
	GetProductForUpdate(ctx context.Context, productID string) (domain.Product, error)
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	UpdateStock(ctx context.Context, p domain.Product) error
}

// StockLedger owns every mutation of a product's stock counters. Each
// mutating method must run inside the caller's transaction: it reads the
// product row under an exclusive lock, applies the change, and persists it,
// so concurrent mutations of the same product serialize on the row lock.
type StockLedger struct {
	products LedgerProducts
	logger   *zap.Logger
}

func NewStockLedger(products LedgerProducts, logger *zap.Logger) *StockLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockLedger{products: products, logger: logger}
}

// Reserve holds qty units of the product for an open cart item.
func (l *StockLedger) Reserve(ctx context.Context, productID string, qty int) (domain.Product, error) {
	return l.mutate(ctx, productID, func(p *domain.Product) error {
		return p.Reserve(qty)
	})
}

// Release returns qty previously reserved units to available stock.
func (l *StockLedger) Release(ctx context.Context, productID string, qty int) (domain.Product, error) {
	p, err := l.mutate(ctx, productID, func(p *domain.Product) error {
		return p.Release(qty)
	})
	if errors.Is(err, domain.ErrOverRelease) {
		// Broken reservation accounting in the caller, not bad user input.
		l.logger.Error("stock release exceeds reservation",
			zap.String("product_id", productID),
			zap.Int("quantity", qty),
		)
	}
	return p, err
}

// Reduce converts qty reserved units into a permanent stock deduction. Used
// at order commit, when a cart reservation becomes a sale.
func (l *StockLedger) Reduce(ctx context.Context, productID string, qty int) (domain.Product, error) {
	p, err := l.mutate(ctx, productID, func(p *domain.Product) error {
		return p.Reduce(qty)
	})
	if errors.Is(err, domain.ErrOverReduce) {
		l.logger.Error("stock reduction exceeds reservation",
			zap.String("product_id", productID),
			zap.Int("quantity", qty),
		)
	}
	return p, err
}

// Deduct sells qty unreserved units, decrementing total stock directly. Used
// by direct order placement, which carries no prior reservation.
func (l *StockLedger) Deduct(ctx context.Context, productID string, qty int) (domain.Product, error) {
	return l.mutate(ctx, productID, func(p *domain.Product) error {
		return p.Deduct(qty)
	})
}

// InStock is an unlocked advisory check. It must never be the basis of a
// commit decision: mutating methods re-validate under the row lock.
func (l *StockLedger) InStock(ctx context.Context, productID string, qty int) (bool, error) {
	p, err := l.products.GetProduct(ctx, productID)
	if err != nil {
		return false, err
	}
	return p.InStock(qty), nil
}

func (l *StockLedger) mutate(ctx context.Context, productID string, fn func(p *domain.Product) error) (domain.Product, error) {
	p, err := l.products.GetProductForUpdate(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if err := fn(&p); err != nil {
		return domain.Product{}, err
	}
	if err := l.products.UpdateStock(ctx, p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
