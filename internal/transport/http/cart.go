package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mahede182/appifyEcommerce/internal/app"
	"github.com/mahede182/appifyEcommerce/internal/domain"
)

// CartItemService is the minimal interface needed for cart item endpoints.
type CartItemService interface {
	AddItem(ctx context.Context, in app.AddItemInput) (domain.CartItem, error)
	UpdateItem(ctx context.Context, actor domain.Actor, itemID string, quantity int) (domain.CartItem, error)
	RemoveItem(ctx context.Context, actor domain.Actor, itemID string) error
}

// HandleAddCartItem returns an HTTP handler for adding a product to the
// caller's cart.
func HandleAddCartItem(svc CartItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		var req addCartItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ProductID == "" {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "product_id is required")
			return
		}

		item, err := svc.AddItem(r.Context(), app.AddItemInput{
			Actor:     actor,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(cartItemResponse{
			ID:        item.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
}

// HandleUpdateCartItem returns an HTTP handler for setting a cart item to an
// absolute quantity.
func HandleUpdateCartItem(svc CartItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		itemID := chi.URLParam(r, "itemID")

		var req updateCartItemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		item, err := svc.UpdateItem(r.Context(), actor, itemID, req.Quantity)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cartItemResponse{
			ID:        item.ID,
			CartID:    item.CartID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
}

// HandleRemoveCartItem returns an HTTP handler for removing a cart item.
func HandleRemoveCartItem(svc CartItemService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}
		itemID := chi.URLParam(r, "itemID")

		if err := svc.RemoveItem(r.Context(), actor, itemID); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartItemResponse struct {
	ID        string `json:"id"`
	CartID    string `json:"cart_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
