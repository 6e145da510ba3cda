package orderline

// Defaults applied to new order lines when the request does not carry them.
const (
	DefaultVat      = 23
	DefaultDiscount = 0
)

// OrderLine is a single product entry within an order. ListPrice is the
// catalog price captured at order creation and is never re-read afterward.
type OrderLine struct {
	OrderID   int64   `json:"orderId"`
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	ListPrice float64 `json:"listPrice"`
	Vat       int     `json:"vat"`
	Discount  int     `json:"discount"`
}
