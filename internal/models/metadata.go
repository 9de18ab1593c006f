// ABOUTME: Typed metadata variants attached to embedding records
// ABOUTME: Closed per-type records replace dynamic payload dictionaries
package models

import "fmt"

// EntityType tags which aggregate view an embedding record came from.
type EntityType string

const (
	EntityCustomer  EntityType = "customer"
	EntityProduct   EntityType = "product"
	EntityTerritory EntityType = "territory"
)

// Metadata is the closed union of per-type metadata records. Each variant
// flattens to the scalar payload stored alongside the vector, and decodes
// back exhaustively so filtering logic never sees an unknown shape.
type Metadata interface {
	Type() EntityType
	Payload() map[string]any
}

// CustomerMeta is the filterable metadata for a customer embedding.
type CustomerMeta struct {
	Territory      string  `json:"territory"`
	TotalSales     float64 `json:"total_sales"`
	CustomerStatus string  `json:"customer_status"`
}

func (m CustomerMeta) Type() EntityType { return EntityCustomer }

func (m CustomerMeta) Payload() map[string]any {
	return map[string]any{
		"territory":       m.Territory,
		"total_sales":     m.TotalSales,
		"customer_status": m.CustomerStatus,
	}
}

// ProductMeta is the filterable metadata for a product embedding.
type ProductMeta struct {
	ProductLine      string  `json:"product_line"`
	PerformanceScore float64 `json:"performance_score"`
	TypicalDealSize  string  `json:"typical_deal_size"`
}

func (m ProductMeta) Type() EntityType { return EntityProduct }

func (m ProductMeta) Payload() map[string]any {
	return map[string]any{
		"product_line":      m.ProductLine,
		"performance_score": m.PerformanceScore,
		"typical_deal_size": m.TypicalDealSize,
	}
}

// TerritoryMeta is the filterable metadata for a territory embedding.
type TerritoryMeta struct {
	MarketShare     float64 `json:"market_share"`
	TotalSales      float64 `json:"total_sales"`
	UniqueCustomers int     `json:"unique_customers"`
}

func (m TerritoryMeta) Type() EntityType { return EntityTerritory }

func (m TerritoryMeta) Payload() map[string]any {
	return map[string]any{
		"market_share":     m.MarketShare,
		"total_sales":      m.TotalSales,
		"unique_customers": m.UniqueCustomers,
	}
}

// DecodeMetadata rebuilds the typed variant from a flattened payload, keyed
// on the "type" field.
func DecodeMetadata(payload map[string]any) (Metadata, error) {
	switch EntityType(payloadString(payload, "type")) {
	case EntityCustomer:
		return CustomerMeta{
			Territory:      payloadString(payload, "territory"),
			TotalSales:     payloadFloat(payload, "total_sales"),
			CustomerStatus: payloadString(payload, "customer_status"),
		}, nil
	case EntityProduct:
		return ProductMeta{
			ProductLine:      payloadString(payload, "product_line"),
			PerformanceScore: payloadFloat(payload, "performance_score"),
			TypicalDealSize:  payloadString(payload, "typical_deal_size"),
		}, nil
	case EntityTerritory:
		return TerritoryMeta{
			MarketShare:     payloadFloat(payload, "market_share"),
			TotalSales:      payloadFloat(payload, "total_sales"),
			UniqueCustomers: int(payloadFloat(payload, "unique_customers")),
		}, nil
	default:
		return nil, fmt.Errorf("unknown entity type %q in payload", payload["type"])
	}
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadFloat(payload map[string]any, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}
