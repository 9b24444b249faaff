package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mahede182/appifyEcommerce/internal/app"
	"github.com/mahede182/appifyEcommerce/internal/domain"
	"github.com/shopspring/decimal"
)

func TestHandleCartSummary(t *testing.T) {
	t.Parallel()

	alice := domain.Actor{UserID: "user-alice", Capability: domain.CapabilityOwner}

	t.Run("renders lines with nested product", func(t *testing.T) {
		t.Parallel()
		svc := &stubSummaryService{summary: app.CartSummary{
			Items: []app.CartSummaryItem{
				{
					ItemID:         "item-1",
					ProductID:      "prod-1",
					ProductName:    "Keyboard",
					UnitPrice:      decimal.RequireFromString("49.99"),
					AvailableStock: 8,
					Quantity:       2,
					ItemTotal:      decimal.RequireFromString("99.98"),
					InStock:        true,
				},
			},
			TotalPrice:  decimal.RequireFromString("99.98"),
			ItemsCount:  1,
			CanCheckout: true,
		}}

		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		req = requestWithActor(req, alice)
		rec := httptest.NewRecorder()

		HandleCartSummary(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{
			`"name":"Keyboard"`,
			`"available_stock":8`,
			`"item_total":"99.98"`,
			`"can_checkout":true`,
			`"items_count":1`,
		} {
			if !strings.Contains(body, want) {
				t.Fatalf("expected response to contain %q, got %q", want, body)
			}
		}
	})

	t.Run("empty summary serializes with empty items array", func(t *testing.T) {
		t.Parallel()
		svc := &stubSummaryService{summary: app.CartSummary{
			Items:      []app.CartSummaryItem{},
			TotalPrice: decimal.Zero,
		}}

		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		req = requestWithActor(req, alice)
		rec := httptest.NewRecorder()

		HandleCartSummary(svc).ServeHTTP(rec, req)

		body := rec.Body.String()
		if !strings.Contains(body, `"items":[]`) {
			t.Fatalf("expected empty items array, got %q", body)
		}
		if !strings.Contains(body, `"can_checkout":false`) {
			t.Fatalf("expected can_checkout false, got %q", body)
		}
	})

	t.Run("missing identity", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		rec := httptest.NewRecorder()

		HandleCartSummary(&stubSummaryService{}).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("service failure", func(t *testing.T) {
		t.Parallel()
		svc := &stubSummaryService{err: errors.New("boom")}
		req := httptest.NewRequest(http.MethodGet, "/cart/summary", nil)
		req = requestWithActor(req, alice)
		rec := httptest.NewRecorder()

		HandleCartSummary(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

type stubSummaryService struct {
	summary app.CartSummary
	err     error
}

func (s *stubSummaryService) CartSummary(_ context.Context, _ domain.Actor) (app.CartSummary, error) {
	if s.err != nil {
		return app.CartSummary{}, s.err
	}
	return s.summary, nil
}
