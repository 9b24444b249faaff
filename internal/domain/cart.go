package domain

// Cart holds a user's open line items. A user has at most one cart, created
// lazily on the first mutation and kept (possibly empty) after checkout.
type Cart struct {
	ID     string
	UserID string
}

// CartItem is one product line in a cart. While the item exists, each unit of
// Quantity corresponds to exactly one reserved unit of the product's stock.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int
}

// CartLine pairs a cart item with a snapshot of its product, as read in a
// single joined query. Used for summaries and the checkout pricing pass.
type CartLine struct {
	Item    CartItem
	Product Product
}
