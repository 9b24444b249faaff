package domain

import "github.com/shopspring/decimal"

// Product is a sellable item whose stock is split between owned units
// (StockQuantity) and units held by open carts (ReservedStock). Both fields
// are only ever changed through the stock methods below, under a row lock.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	ReservedStock int
}

// AvailableStock is the quantity purchasable right now.
func (p *Product) AvailableStock() int {
	return p.StockQuantity - p.ReservedStock
}

// InStock reports whether qty units could be reserved or sold right now.
func (p *Product) InStock(qty int) bool {
	return p.AvailableStock() >= qty
}

// Reserve places a temporary hold of qty units for a cart item.
func (p *Product) Reserve(qty int) error {
	if qty > p.AvailableStock() {
		return &InsufficientStockError{ProductID: p.ID, Available: p.AvailableStock(), Requested: qty}
	}
	p.ReservedStock += qty
	return nil
}

// Release returns qty previously reserved units back to available stock.
func (p *Product) Release(qty int) error {
	if qty > p.ReservedStock {
		return ErrOverRelease
	}
	p.ReservedStock -= qty
	return nil
}

// Reduce converts qty reserved units into a permanent sale: the reservation
// is cleared and total stock decremented in one step, so a sold unit can
// never be decremented twice.
func (p *Product) Reduce(qty int) error {
	if qty > p.ReservedStock {
		return ErrOverReduce
	}
	p.ReservedStock -= qty
	p.StockQuantity -= qty
	return nil
}

// Deduct sells qty units that carry no prior reservation, decrementing total
// stock directly. Used by direct order placement, which validates against
// available stock instead of converting a hold.
func (p *Product) Deduct(qty int) error {
	if qty > p.AvailableStock() {
		return &InsufficientStockError{ProductID: p.ID, Available: p.AvailableStock(), Requested: qty}
	}
	p.StockQuantity -= qty
	return nil
}
