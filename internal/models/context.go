// ABOUTME: Ephemeral retrieval results and the aggregate bundle
// ABOUTME: ContextResult is produced during search and never persisted
package models

// ContextResult is one retrieval hit: the entity key, its similarity score
// under the collection's distance metric, and the stored text and metadata.
type ContextResult struct {
	Key   string     `json:"key"`
	Type  EntityType `json:"type"`
	Score float64    `json:"score"`
	Text  string     `json:"text"`
	Meta  Metadata   `json:"metadata"`
}

// Aggregates bundles the three keyed collections of one processing run in
// deterministic (first-encountered) order for sequential batch work.
type Aggregates struct {
	Customers   []*CustomerProfile
	Products    []*ProductEntry
	Territories []*TerritoryAnalysis
}

// Len returns the total number of entities across all three collections.
func (a *Aggregates) Len() int {
	return len(a.Customers) + len(a.Products) + len(a.Territories)
}
