package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// Order is an immutable record of a purchase. TotalPrice is computed
// server-side from product prices at placement time.
type Order struct {
	ID         string
	UserID     string
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
}

// OrderItem is one line of an order. PriceAtPurchase snapshots the product
// price at order time and never changes afterwards.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}
