package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RouterConfig carries the services and settings the router wires together.
type RouterConfig struct {
	Cart        CartItemService
	Summary     CartSummarizer
	Orders      OrderPlacer
	OrderReads  OrderReader
	Catalog     CatalogService
	CORSOrigins []string
	Logger      *zap.Logger
}

// NewRouter assembles the service's HTTP surface. Catalog reads and health
// are public; everything else requires a caller identity.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", HealthHandler)
	r.Get("/products", HandleListProducts(cfg.Catalog))
	r.Get("/products/{productID}", HandleGetProduct(cfg.Catalog))

	r.Group(func(r chi.Router) {
		r.Use(WithIdentity)

		r.Post("/products", HandleCreateProduct(cfg.Catalog))

		r.Post("/cart/items", HandleAddCartItem(cfg.Cart))
		r.Patch("/cart/items/{itemID}", HandleUpdateCartItem(cfg.Cart))
		r.Delete("/cart/items/{itemID}", HandleRemoveCartItem(cfg.Cart))
		r.Get("/cart/summary", HandleCartSummary(cfg.Summary))
		r.Post("/cart/checkout", HandleCheckout(cfg.Orders))

		r.Post("/orders", HandlePlaceOrder(cfg.Orders))
		r.Get("/orders", HandleListOrders(cfg.OrderReads))
		r.Get("/orders/{orderID}", HandleGetOrder(cfg.OrderReads))
	})

	r.NotFound(NotFoundHandler().ServeHTTP)

	return RequestLogger(CORS(cfg.CORSOrigins, r), cfg.Logger)
}
