package model

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderItem is a snapshot of the product at order time.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID           string      `json:"id,omitempty"`
	CustomerName string      `json:"customer_name"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status"`
	Items        []OrderItem `json:"items"`
	CreatedAt    string      `json:"created_at,omitempty"`
}

type OrderPatch struct {
	CustomerName *string      `json:"customer_name,omitempty"`
	TotalAmount  *float64     `json:"total_amount,omitempty"`
	Status       *OrderStatus `json:"status,omitempty"`
	Items        []OrderItem  `json:"items,omitempty"`
}
