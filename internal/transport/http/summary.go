package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mahede182/appifyEcommerce/internal/app"
	"github.com/mahede182/appifyEcommerce/internal/domain"
	"github.com/shopspring/decimal"
)

// CartSummarizer is the minimal interface needed for the summary endpoint.
type CartSummarizer interface {
	CartSummary(ctx context.Context, actor domain.Actor) (app.CartSummary, error)
}

// HandleCartSummary returns an HTTP handler for the read-only cart summary.
func HandleCartSummary(svc CartSummarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r)
		if !ok {
			return
		}

		summary, err := svc.CartSummary(r.Context(), actor)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := cartSummaryResponse{
			Items:       make([]cartSummaryItemResponse, 0, len(summary.Items)),
			TotalPrice:  summary.TotalPrice,
			ItemsCount:  summary.ItemsCount,
			CanCheckout: summary.CanCheckout,
		}
		for _, item := range summary.Items {
			resp.Items = append(resp.Items, cartSummaryItemResponse{
				ID: item.ItemID,
				Product: summaryProductResponse{
					ID:             item.ProductID,
					Name:           item.ProductName,
					Price:          item.UnitPrice,
					AvailableStock: item.AvailableStock,
				},
				Quantity:  item.Quantity,
				ItemTotal: item.ItemTotal,
				InStock:   item.InStock,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

type summaryProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	AvailableStock int             `json:"available_stock"`
}

type cartSummaryItemResponse struct {
	ID        string                 `json:"id"`
	Product   summaryProductResponse `json:"product"`
	Quantity  int                    `json:"quantity"`
	ItemTotal decimal.Decimal        `json:"item_total"`
	InStock   bool                   `json:"in_stock"`
}

type cartSummaryResponse struct {
	Items       []cartSummaryItemResponse `json:"items"`
	TotalPrice  decimal.Decimal           `json:"total_price"`
	ItemsCount  int                       `json:"items_count"`
	CanCheckout bool                      `json:"can_checkout"`
}
