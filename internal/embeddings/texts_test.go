// ABOUTME: Tests for deterministic embedding text synthesis
// ABOUTME: Same aggregate in must produce byte-identical text out
package embeddings

import (
	"strings"
	"testing"
	"time"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
)

func sampleCustomer() *models.CustomerProfile {
	return &models.CustomerProfile{
		Name:              "Alpha Ltd",
		City:              "Paris",
		State:             "Unknown",
		Country:           "France",
		Territory:         "EMEA",
		ContactName:       "Anna Martin",
		TotalOrders:       3,
		TotalSales:        1234.5,
		AvgOrderValue:     411.5,
		PreferredProducts: []string{"Classic Cars"},
		DealSizes:         []string{"Small", "Medium"},
		LastOrderDate:     time.Date(2004, 3, 6, 0, 0, 0, 0, time.UTC),
		CustomerStatus:    models.CustomerActive,
	}
}

func TestCustomerText(t *testing.T) {
	text := CustomerText(sampleCustomer())

	for _, want := range []string{
		"Customer: Alpha Ltd",
		"Location: Paris, Unknown, France",
		"Territory: EMEA",
		"- Total Sales: $1,234.50",
		"- Average Order Value: $411.50",
		"- Deal Sizes: Small, Medium",
		"- Status: Active",
		"- Last Order: 2004-03-06",
		"EMEA market with focus on Classic Cars products",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("customer text missing %q\ngot:\n%s", want, text)
		}
	}
}

func TestCustomerText_Deterministic(t *testing.T) {
	a := CustomerText(sampleCustomer())
	b := CustomerText(sampleCustomer())
	if a != b {
		t.Error("customer text differs across identical inputs")
	}
}

func TestProductText(t *testing.T) {
	p := &models.ProductEntry{
		ProductLine:      "Motorcycles",
		ProductCode:      "S10_1678",
		TotalSales:       50000,
		AvgSales:         2500,
		OrderCount:       20,
		AvgPrice:         95.5,
		TotalQuantity:    520,
		TypicalDealSize:  "Medium",
		PerformanceScore: 0.5,
	}
	text := ProductText(p)

	for _, want := range []string{
		"Product: Motorcycles - S10_1678",
		"- Total Sales: $50,000.00",
		"- Total Quantity Sold: 520",
		"- Performance Score: 0.500",
		"Motorcycles with strong performance in Medium market segment",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("product text missing %q\ngot:\n%s", want, text)
		}
	}
}

func TestTerritoryText(t *testing.T) {
	terr := &models.TerritoryAnalysis{
		Territory:       "EMEA",
		TotalSales:      800,
		AvgSales:        200,
		TotalOrders:     4,
		UniqueCustomers: 2,
		TopProducts: []models.ProductLineCount{
			{Line: "Classic Cars", Count: 3},
			{Line: "Motorcycles", Count: 1},
		},
		DealDistribution: map[string]int{"Small": 2, "Large": 1, "Medium": 1},
		MarketShare:      100,
	}
	text := TerritoryText(terr)

	for _, want := range []string{
		"Territory: EMEA",
		"- Market Share: 100.00%",
		"Top Products: Classic Cars, Motorcycles",
		"Deal Distribution: Large: 1, Medium: 1, Small: 2",
		"EMEA region with strong demand for Classic Cars products",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("territory text missing %q\ngot:\n%s", want, text)
		}
	}
}

func TestTerritoryText_EmptyTopProducts(t *testing.T) {
	terr := &models.TerritoryAnalysis{Territory: "APAC"}
	text := TerritoryText(terr)
	if !strings.Contains(text, "strong demand for various products") {
		t.Errorf("expected 'various' fallback, got:\n%s", text)
	}
}
