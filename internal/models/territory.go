// ABOUTME: Territory analysis aggregated per sales territory
// ABOUTME: Market shares across all territories sum to 100 percent
package models

// ProductLineCount is one entry of a territory's top-product ranking.
// Kept as an ordered pair list because ranking order matters downstream.
type ProductLineCount struct {
	Line  string `json:"line"`
	Count int    `json:"count"`
}

// TerritoryAnalysis is the aggregate view of one territory.
// MarketShare is 100 * territory sales / grand total sales.
type TerritoryAnalysis struct {
	Territory        string             `json:"territory"`
	TotalSales       float64            `json:"total_sales"`
	AvgSales         float64            `json:"avg_sales"`
	TotalOrders      int                `json:"total_orders"`
	UniqueCustomers  int                `json:"unique_customers"`
	TopProducts      []ProductLineCount `json:"top_products"`
	DealDistribution map[string]int     `json:"deal_distribution"`
	MarketShare      float64            `json:"market_share"`
}
