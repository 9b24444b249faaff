package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mahede182/appifyEcommerce/internal/app"
	"github.com/mahede182/appifyEcommerce/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderPlacer is the minimal interface needed for order placement endpoints.
type OrderPlacer interface {
	Checkout(ctx context.Context, actor domain.Actor) (app.PlacedOrder, error)
	PlaceOrder(ctx context.Context, actor domain.Actor, inputs []app.OrderLineInput) (app.PlacedOrder, error)
}

// OrderReader is the minimal interface needed for order read endpoints.
type OrderReader interface {
	GetOrder(ctx context.Context, actor domain.Actor, orderID string) (app.PlacedOrder, error)
	ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
}

// HandleCheckout returns an HTTP handler converting the caller's cart into
// an order.
func HandleCheckout(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		placed, err := svc.Checkout(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newOrderResponse(placed))
	}
}

// HandlePlaceOrder returns an HTTP handler for direct order placement from
// an explicit item list, bypassing the cart.
func HandlePlaceOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req placeOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if len(req.Items) == 0 {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "items are required")
			return
		}

		inputs := make([]app.OrderLineInput, 0, len(req.Items))
		for _, item := range req.Items {
			if item.ProductID == "" {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "product_id is required")
				return
			}
			inputs = append(inputs, app.OrderLineInput{ProductID: item.ProductID, Quantity: item.Quantity})
		}

		placed, err := svc.PlaceOrder(r.Context(), actor, inputs)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newOrderResponse(placed))
	}
}

// HandleGetOrder returns an HTTP handler for reading one order.
func HandleGetOrder(svc OrderReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		placed, err := svc.GetOrder(r.Context(), actor, chi.URLParam(r, "orderID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(newOrderResponse(placed))
	}
}

// HandleListOrders returns an HTTP handler listing the caller's orders.
func HandleListOrders(svc OrderReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		orders, err := svc.ListOrders(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := make([]orderSummaryResponse, 0, len(orders))
		for _, o := range orders {
			resp = append(resp, orderSummaryResponse{
				ID:         o.ID,
				TotalPrice: o.TotalPrice,
				Status:     string(o.Status),
				CreatedAt:  o.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type placeOrderRequest struct {
	Items []placeOrderItemRequest `json:"items"`
}

type placeOrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Status     string              `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []orderItemResponse `json:"items"`
}

type orderSummaryResponse struct {
	ID         string          `json:"id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

func newOrderResponse(placed app.PlacedOrder) orderResponse {
	items := make([]orderItemResponse, 0, len(placed.Items))
	for _, item := range placed.Items {
		items = append(items, orderItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		})
	}
	return orderResponse{
		ID:         placed.Order.ID,
		TotalPrice: placed.Order.TotalPrice,
		Status:     string(placed.Order.Status),
		CreatedAt:  placed.Order.CreatedAt,
		Items:      items,
	}
}
