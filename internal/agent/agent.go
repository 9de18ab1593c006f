// ABOUTME: Sales agent: retrieval, context merging, grounded response generation
// ABOUTME: Each request walks a fixed lifecycle and always returns a structured result
package agent

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/util"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/vectorstore"
)

// Retrieval scopes accepted by Query and RetrieveContext.
const (
	ScopeAll       = "all"
	ScopeCustomer  = "customer"
	ScopeProduct   = "product"
	ScopeTerritory = "territory"
)

// Per-category retrieval caps, chosen to bound prompt size while covering
// all relevant categories.
const (
	customerLimit  = 3
	productLimit   = 3
	territoryLimit = 2
)

// noContextMarker is rendered instead of an empty context block so the
// prompt is never ambiguous about whether retrieval ran.
const noContextMarker = "No relevant context found."

// Request lifecycle states; ERROR is absorbing from any step.
type requestState string

const (
	stateReceived      requestState = "RECEIVED"
	stateEmbeddingQry  requestState = "EMBEDDING_QUERY"
	stateRetrieving    requestState = "RETRIEVING"
	stateContextMerged requestState = "CONTEXT_MERGED"
	statePrompting     requestState = "PROMPTING"
	stateGenerating    requestState = "GENERATING"
	stateDone          requestState = "DONE"
	stateError         requestState = "ERROR"
)

// Completer is the generation-service capability for final answers.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder embeds the user query into the shared vector space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher is the read-only vector store capability the agent depends on.
type Searcher interface {
	Search(ctx context.Context, vector []float32, f vectorstore.Filters, limit int, scoreThreshold float64) []models.ContextResult
}

// Agent answers natural-language sales questions grounded in retrieved
// context. It never mutates stored state.
type Agent struct {
	completer Completer
	embedder  Embedder
	store     Searcher
	dimension int
}

// New creates an agent over the given capabilities.
func New(completer Completer, embedder Embedder, store Searcher, dimension int) *Agent {
	return &Agent{
		completer: completer,
		embedder:  embedder,
		store:     store,
		dimension: dimension,
	}
}

// QueryResult is the structured answer to an open query.
type QueryResult struct {
	Response       string                 `json:"response"`
	ContextUsed    int                    `json:"context_used"`
	ContextDetails []models.ContextResult `json:"context_details"`
	Timestamp      time.Time              `json:"timestamp"`
}

// CustomerAnalysisResult is the structured answer to a customer analysis.
// NotFound is set with suggestions when no stored customer matches.
type CustomerAnalysisResult struct {
	Analysis    string                `json:"customer_analysis,omitempty"`
	Customer    *models.ContextResult `json:"customer_data,omitempty"`
	NotFound    bool                  `json:"not_found,omitempty"`
	Message     string                `json:"message,omitempty"`
	Suggestions []string              `json:"suggestions,omitempty"`
	Timestamp   time.Time             `json:"timestamp"`
}

// RecommendationResult is the structured answer to a product recommendation.
type RecommendationResult struct {
	Recommendations  string    `json:"recommendations"`
	ProductsAnalyzed int       `json:"products_analyzed"`
	Timestamp        time.Time `json:"timestamp"`
}

// TerritoryAnalysisResult is the structured answer to a territory analysis.
type TerritoryAnalysisResult struct {
	Analysis  string                `json:"territory_analysis"`
	Territory *models.ContextResult `json:"territory_data,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// PitchResult is the structured answer to sales-pitch generation.
type PitchResult struct {
	Pitch                string    `json:"sales_pitch"`
	PersonalizationLevel int       `json:"personalization_level"`
	Timestamp            time.Time `json:"timestamp"`
}

// InsightsResult is the structured answer to a general-insights request.
type InsightsResult struct {
	Insights           string    `json:"insights"`
	DataPointsAnalyzed int       `json:"data_points_analyzed"`
	Timestamp          time.Time `json:"timestamp"`
}

func (a *Agent) transition(s requestState, detail string) {
	log.Printf("agent: %s (%s)", s, detail)
}

// embedQuery embeds the user query, degrading to a zero vector on failure
// so retrieval still runs (and returns nothing) instead of crashing.
func (a *Agent) embedQuery(ctx context.Context, query string) []float32 {
	vector, err := a.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("Error embedding query, using zero vector: %v", err)
		return models.ZeroVector(a.dimension)
	}
	return vector
}

// RetrieveContext embeds the query once and issues category-scoped searches
// per the requested scope, merging all hits into one globally ranked list.
// Scores are comparable across categories because every vector shares the
// same embedding space and distance metric; the sort is stable so equal
// scores keep their category emission order.
func (a *Agent) RetrieveContext(ctx context.Context, query, scope string) []models.ContextResult {
	a.transition(stateEmbeddingQry, query)
	vector := a.embedQuery(ctx, query)

	a.transition(stateRetrieving, scope)
	var results []models.ContextResult
	if scope == ScopeAll || scope == ScopeCustomer {
		results = append(results, a.store.Search(ctx, vector,
			vectorstore.Filters{Type: models.EntityCustomer}, customerLimit, 0)...)
	}
	if scope == ScopeAll || scope == ScopeProduct {
		results = append(results, a.store.Search(ctx, vector,
			vectorstore.Filters{Type: models.EntityProduct}, productLimit, 0)...)
	}
	if scope == ScopeAll || scope == ScopeTerritory {
		results = append(results, a.store.Search(ctx, vector,
			vectorstore.Filters{Type: models.EntityTerritory}, territoryLimit, 0)...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	a.transition(stateContextMerged, fmt.Sprintf("%d results", len(results)))
	return results
}

// FormatContext renders retrieval results for the grounding prompt. An
// empty result set renders the literal no-context marker.
func (a *Agent) FormatContext(results []models.ContextResult) string {
	if len(results) == 0 {
		return noContextMarker
	}

	items := make([]string, 0, len(results))
	for _, r := range results {
		var b strings.Builder
		fmt.Fprintf(&b, "**Relevance Score: %s**\n", util.Score(r.Score))
		fmt.Fprintf(&b, "**Type:** %s\n", r.Type)
		fmt.Fprintf(&b, "**Key:** %s\n", r.Key)
		fmt.Fprintf(&b, "**Description:**\n%s\n", r.Text)

		switch meta := r.Meta.(type) {
		case models.CustomerMeta:
			fmt.Fprintf(&b, "- Territory: %s\n", meta.Territory)
			fmt.Fprintf(&b, "- Total Sales: %s\n", util.Money(meta.TotalSales))
			fmt.Fprintf(&b, "- Status: %s\n", meta.CustomerStatus)
		case models.ProductMeta:
			fmt.Fprintf(&b, "- Product Line: %s\n", meta.ProductLine)
			fmt.Fprintf(&b, "- Performance Score: %s\n", util.Score(meta.PerformanceScore))
			fmt.Fprintf(&b, "- Deal Size: %s\n", meta.TypicalDealSize)
		case models.TerritoryMeta:
			fmt.Fprintf(&b, "- Market Share: %s\n", util.Percent(meta.MarketShare))
			fmt.Fprintf(&b, "- Total Sales: %s\n", util.Money(meta.TotalSales))
			fmt.Fprintf(&b, "- Unique Customers: %d\n", meta.UniqueCustomers)
		}
		items = append(items, b.String())
	}
	return strings.Join(items, "\n\n---\n\n")
}

// generate calls the generation service. On exhausted retries (handled by
// the completer) the response carries a literal error message: a
// conversational agent always returns something to the caller.
func (a *Agent) generate(ctx context.Context, systemPrompt, userPrompt string) string {
	a.transition(stateGenerating, "")
	response, err := a.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		a.transition(stateError, err.Error())
		return fmt.Sprintf("Error generating response: %v", err)
	}
	return strings.TrimSpace(response)
}

// Query answers an open question grounded in retrieved context.
func (a *Agent) Query(ctx context.Context, query, scope string) *QueryResult {
	a.transition(stateReceived, query)
	if scope == "" {
		scope = ScopeAll
	}
	results := a.RetrieveContext(ctx, query, scope)

	a.transition(statePrompting, "")
	userPrompt := fmt.Sprintf(`User query: %s

Relevant information from the database:
%s

Please provide a complete and helpful answer based on this information.`,
		query, a.FormatContext(results))

	response := a.generate(ctx, querySystemPrompt, userPrompt)
	a.transition(stateDone, "")
	return &QueryResult{
		Response:       response,
		ContextUsed:    len(results),
		ContextDetails: results,
		Timestamp:      time.Now(),
	}
}

// AnalyzeCustomer analyzes one customer by name. The retrieved customer
// context is filtered by case-insensitive substring match on the entity
// key; no match yields a structured not-found result with suggestions.
func (a *Agent) AnalyzeCustomer(ctx context.Context, customerName string) *CustomerAnalysisResult {
	a.transition(stateReceived, customerName)
	query := fmt.Sprintf("Complete analysis of customer %s", customerName)
	results := a.RetrieveContext(ctx, query, ScopeCustomer)
	matched := filterByKey(results, customerName)

	if len(matched) == 0 {
		a.transition(stateDone, "customer not found")
		return &CustomerAnalysisResult{
			NotFound: true,
			Message:  fmt.Sprintf("No information found for customer %s", customerName),
			Suggestions: []string{
				"Verify the customer name",
				"Search by partial name",
				"Check the database",
			},
			Timestamp: time.Now(),
		}
	}

	a.transition(statePrompting, "")
	userPrompt := fmt.Sprintf(`Analyze this customer in detail:
%s

Provide a complete analysis and actionable recommendations.`, a.FormatContext(matched))

	analysis := a.generate(ctx, customerSystemPrompt, userPrompt)
	a.transition(stateDone, "")
	return &CustomerAnalysisResult{
		Analysis:  analysis,
		Customer:  &matched[0],
		Timestamp: time.Now(),
	}
}

// RecommendProducts recommends products for the given customer criteria.
func (a *Agent) RecommendProducts(ctx context.Context, criteria string) *RecommendationResult {
	a.transition(stateReceived, criteria)
	query := fmt.Sprintf("Recommended products for %s", criteria)
	results := a.RetrieveContext(ctx, query, ScopeProduct)

	a.transition(statePrompting, "")
	userPrompt := fmt.Sprintf(`Customer criteria: %s

Available products:
%s

Provide specific recommendations with data-backed justification.`,
		criteria, a.FormatContext(results))

	recommendations := a.generate(ctx, productSystemPrompt, userPrompt)
	a.transition(stateDone, "")
	return &RecommendationResult{
		Recommendations:  recommendations,
		ProductsAnalyzed: len(results),
		Timestamp:        time.Now(),
	}
}

// AnalyzeTerritory analyzes one territory by name. Unlike customer
// analysis, an empty substring match proceeds with empty context rather
// than failing.
func (a *Agent) AnalyzeTerritory(ctx context.Context, territoryName string) *TerritoryAnalysisResult {
	a.transition(stateReceived, territoryName)
	query := fmt.Sprintf("Analysis of territory %s", territoryName)
	results := a.RetrieveContext(ctx, query, ScopeTerritory)
	matched := filterByKey(results, territoryName)

	a.transition(statePrompting, "")
	userPrompt := fmt.Sprintf(`Analyze this territory:
%s

Provide strategic insights and actionable recommendations.`, a.FormatContext(matched))

	analysis := a.generate(ctx, territorySystemPrompt, userPrompt)
	a.transition(stateDone, "")
	result := &TerritoryAnalysisResult{
		Analysis:  analysis,
		Timestamp: time.Now(),
	}
	if len(matched) > 0 {
		result.Territory = &matched[0]
	}
	return result
}

// GenerateSalesPitch builds a personalized pitch for a customer, optionally
// focused on a product.
func (a *Agent) GenerateSalesPitch(ctx context.Context, customerName, productFocus string) *PitchResult {
	a.transition(stateReceived, customerName)
	query := strings.TrimSpace(fmt.Sprintf("Sales pitch for %s %s", customerName, productFocus))
	results := a.RetrieveContext(ctx, query, ScopeAll)

	a.transition(statePrompting, "")
	userPrompt := fmt.Sprintf(`Target customer: %s
Product focus: %s

Customer and market information:
%s

Create a personalized, persuasive sales pitch.`,
		customerName, productFocus, a.FormatContext(results))

	pitch := a.generate(ctx, pitchSystemPrompt, userPrompt)
	a.transition(stateDone, "")
	return &PitchResult{
		Pitch:                pitch,
		PersonalizationLevel: len(results),
		Timestamp:            time.Now(),
	}
}

// GetInsights answers a general insights question over the full scope.
func (a *Agent) GetInsights(ctx context.Context, query string) *InsightsResult {
	a.transition(stateReceived, query)
	results := a.RetrieveContext(ctx, query, ScopeAll)

	a.transition(statePrompting, "")
	userPrompt := fmt.Sprintf(`Query: %s

Available data:
%s

Provide valuable insights and strategic recommendations.`,
		query, a.FormatContext(results))

	insights := a.generate(ctx, insightsSystemPrompt, userPrompt)
	a.transition(stateDone, "")
	return &InsightsResult{
		Insights:           insights,
		DataPointsAnalyzed: len(results),
		Timestamp:          time.Now(),
	}
}

// filterByKey keeps results whose key contains name, case-insensitively.
func filterByKey(results []models.ContextResult, name string) []models.ContextResult {
	needle := strings.ToLower(name)
	var matched []models.ContextResult
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Key), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}
