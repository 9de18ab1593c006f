// ABOUTME: Request and response schemas for the HTTP API
// ABOUTME: All endpoints return the uniform success/message/data envelope
package api

// Envelope is the uniform response wrapper. Callers always receive a
// structured payload, success or failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// QueryRequest asks an open question, optionally scoped to one entity type.
type QueryRequest struct {
	Query       string `json:"query" binding:"required"`
	ContextType string `json:"context_type"`
}

// CustomerAnalysisRequest names the customer to analyze.
type CustomerAnalysisRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
}

// ProductRecommendationRequest describes the customer criteria to match.
type ProductRecommendationRequest struct {
	CustomerCriteria string `json:"customer_criteria" binding:"required"`
}

// TerritoryAnalysisRequest names the territory to analyze.
type TerritoryAnalysisRequest struct {
	TerritoryName string `json:"territory_name" binding:"required"`
}

// SalesPitchRequest names the target customer and optional product focus.
type SalesPitchRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	ProductFocus string `json:"product_focus"`
}
