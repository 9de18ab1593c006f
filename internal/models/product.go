// ABOUTME: Product catalog entry aggregated per (product line, product code)
// ABOUTME: Carries the weighted performance score computed from global maxima
package models

import "fmt"

// ProductEntry is the aggregate view of one product, keyed by product line
// and product code. PerformanceScore is a weighted composite in [0,1]:
// 0.5*sales ratio + 0.3*order ratio + 0.2*quantity ratio, each ratio
// normalized against the maximum across all products.
type ProductEntry struct {
	ProductLine      string  `json:"product_line"`
	ProductCode      string  `json:"product_code"`
	TotalSales       float64 `json:"total_sales"`
	AvgSales         float64 `json:"avg_sales"`
	OrderCount       int     `json:"order_count"`
	AvgPrice         float64 `json:"avg_price"`
	TotalQuantity    float64 `json:"total_quantity"`
	TypicalDealSize  string  `json:"typical_deal_size"`
	PerformanceScore float64 `json:"performance_score"`
}

// Key returns the catalog key, "LINE_CODE".
func (p *ProductEntry) Key() string {
	return fmt.Sprintf("%s_%s", p.ProductLine, p.ProductCode)
}
