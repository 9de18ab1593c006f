// ABOUTME: Aggregated customer profile derived from sales transactions
// ABOUTME: Keyed by customer name, created once per aggregation run
package models

import "time"

// Customer status values derived during aggregation.
const (
	CustomerActive   = "Active"
	CustomerInactive = "Inactive"
)

// CustomerProfile is the aggregate view of one customer. A customer is
// Active iff any of its transactions has "Shipped" status.
type CustomerProfile struct {
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	Country           string    `json:"country"`
	Territory         string    `json:"territory"`
	ContactName       string    `json:"contact_name"`
	TotalOrders       int       `json:"total_orders"`
	TotalSales        float64   `json:"total_sales"`
	AvgOrderValue     float64   `json:"avg_order_value"`
	PreferredProducts []string  `json:"preferred_products"`
	DealSizes         []string  `json:"deal_sizes"`
	LastOrderDate     time.Time `json:"last_order_date"`
	CustomerStatus    string    `json:"customer_status"`
}
