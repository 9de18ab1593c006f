// ABOUTME: Deterministic text synthesis for each aggregate entity type
// ABOUTME: Identical aggregates must yield byte-identical text for reproducible embeddings
package embeddings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/util"
)

// CustomerText renders the embedding description for a customer profile.
func CustomerText(p *models.CustomerProfile) string {
	lastOrder := ""
	if !p.LastOrderDate.IsZero() {
		lastOrder = p.LastOrderDate.Format("2006-01-02")
	}
	focus := ""
	if len(p.PreferredProducts) > 0 {
		focus = p.PreferredProducts[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", p.Name)
	fmt.Fprintf(&b, "Location: %s, %s, %s\n", p.City, p.State, p.Country)
	fmt.Fprintf(&b, "Territory: %s\n", p.Territory)
	fmt.Fprintf(&b, "Contact: %s\n\n", p.ContactName)
	b.WriteString("Sales Profile:\n")
	fmt.Fprintf(&b, "- Total Orders: %d\n", p.TotalOrders)
	fmt.Fprintf(&b, "- Total Sales: %s\n", util.Money(p.TotalSales))
	fmt.Fprintf(&b, "- Average Order Value: %s\n", util.Money(p.AvgOrderValue))
	fmt.Fprintf(&b, "- Preferred Products: %s\n", strings.Join(p.PreferredProducts, ", "))
	fmt.Fprintf(&b, "- Deal Sizes: %s\n", strings.Join(p.DealSizes, ", "))
	fmt.Fprintf(&b, "- Status: %s\n", p.CustomerStatus)
	fmt.Fprintf(&b, "- Last Order: %s\n\n", lastOrder)
	fmt.Fprintf(&b, "Customer Segment: %s market with focus on %s products", p.Territory, focus)
	return b.String()
}

// ProductText renders the embedding description for a product entry.
func ProductText(p *models.ProductEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Product: %s - %s\n\n", p.ProductLine, p.ProductCode)
	b.WriteString("Performance Metrics:\n")
	fmt.Fprintf(&b, "- Total Sales: %s\n", util.Money(p.TotalSales))
	fmt.Fprintf(&b, "- Average Sales per Order: %s\n", util.Money(p.AvgSales))
	fmt.Fprintf(&b, "- Total Orders: %d\n", p.OrderCount)
	fmt.Fprintf(&b, "- Average Price: %s\n", util.Money(p.AvgPrice))
	fmt.Fprintf(&b, "- Total Quantity Sold: %.0f\n", p.TotalQuantity)
	fmt.Fprintf(&b, "- Typical Deal Size: %s\n", p.TypicalDealSize)
	fmt.Fprintf(&b, "- Performance Score: %s\n\n", util.Score(p.PerformanceScore))
	fmt.Fprintf(&b, "Product Category: %s with strong performance in %s market segment",
		p.ProductLine, p.TypicalDealSize)
	return b.String()
}

// TerritoryText renders the embedding description for a territory analysis.
func TerritoryText(t *models.TerritoryAnalysis) string {
	topLines := make([]string, 0, len(t.TopProducts))
	for _, pc := range t.TopProducts {
		topLines = append(topLines, pc.Line)
	}
	leading := "various"
	if len(topLines) > 0 {
		leading = topLines[0]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Territory: %s\n\n", t.Territory)
	b.WriteString("Market Performance:\n")
	fmt.Fprintf(&b, "- Total Sales: %s\n", util.Money(t.TotalSales))
	fmt.Fprintf(&b, "- Average Sales: %s\n", util.Money(t.AvgSales))
	fmt.Fprintf(&b, "- Total Orders: %d\n", t.TotalOrders)
	fmt.Fprintf(&b, "- Unique Customers: %d\n", t.UniqueCustomers)
	fmt.Fprintf(&b, "- Market Share: %s\n\n", util.Percent(t.MarketShare))
	fmt.Fprintf(&b, "Top Products: %s\n", strings.Join(topLines, ", "))
	fmt.Fprintf(&b, "Deal Distribution: %s\n\n", formatDistribution(t.DealDistribution))
	fmt.Fprintf(&b, "Market Characteristics: %s region with strong demand for %s products",
		t.Territory, leading)
	return b.String()
}

// formatDistribution renders a count map with sorted keys so the output is
// stable across runs.
func formatDistribution(dist map[string]int) string {
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %d", k, dist[k]))
	}
	return strings.Join(parts, ", ")
}
