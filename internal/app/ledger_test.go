package app

import (
	"context"
	"errors"
	"testing"

	"github.com/mahede182/appifyEcommerce/internal/domain"
	"go.uber.org/zap"
)

func TestStockLedger(t *testing.T) {
	t.Parallel()

	makeLedger := func(p domain.Product) (*StockLedger, *fakeStore) {
		store := newFakeStore(p)
		return NewStockLedger(store, zap.NewNop()), store
	}

	t.Run("reserve persists the new counters", func(t *testing.T) {
		ledger, store := makeLedger(domain.Product{ID: "prod-1", StockQuantity: 10})

		p, err := ledger.Reserve(context.Background(), "prod-1", 4)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.ReservedStock != 4 {
			t.Fatalf("expected 4 reserved, got %d", p.ReservedStock)
		}
		if got := store.products["prod-1"].ReservedStock; got != 4 {
			t.Fatalf("expected persisted reservation 4, got %d", got)
		}
	})

	t.Run("over-release surfaces server fault without persisting", func(t *testing.T) {
		ledger, store := makeLedger(domain.Product{ID: "prod-1", StockQuantity: 10, ReservedStock: 2})

		if _, err := ledger.Release(context.Background(), "prod-1", 3); !errors.Is(err, domain.ErrOverRelease) {
			t.Fatalf("expected ErrOverRelease, got %v", err)
		}
		if got := store.products["prod-1"].ReservedStock; got != 2 {
			t.Fatalf("expected reservation unchanged, got %d", got)
		}
	})

	t.Run("over-reduce surfaces server fault without persisting", func(t *testing.T) {
		ledger, store := makeLedger(domain.Product{ID: "prod-1", StockQuantity: 10, ReservedStock: 1})

		if _, err := ledger.Reduce(context.Background(), "prod-1", 2); !errors.Is(err, domain.ErrOverReduce) {
			t.Fatalf("expected ErrOverReduce, got %v", err)
		}
		if got := store.products["prod-1"].StockQuantity; got != 10 {
			t.Fatalf("expected stock unchanged, got %d", got)
		}
	})

	t.Run("in-stock check is read-only", func(t *testing.T) {
		ledger, store := makeLedger(domain.Product{ID: "prod-1", StockQuantity: 5, ReservedStock: 3})

		ok, err := ledger.InStock(context.Background(), "prod-1", 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !ok {
			t.Fatalf("expected 2 units in stock")
		}
		ok, err = ledger.InStock(context.Background(), "prod-1", 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if ok {
			t.Fatalf("expected 3 units not in stock")
		}
		p := store.products["prod-1"]
		if p.StockQuantity != 5 || p.ReservedStock != 3 {
			t.Fatalf("expected counters untouched, got %d/%d", p.StockQuantity, p.ReservedStock)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		ledger, _ := makeLedger(domain.Product{ID: "prod-1", StockQuantity: 5})

		if _, err := ledger.Reserve(context.Background(), "prod-missing", 1); !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})
}
