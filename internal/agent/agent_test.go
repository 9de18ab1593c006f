// ABOUTME: Tests for the sales agent over fake service capabilities
// ABOUTME: Covers scoped retrieval, context formatting, and degradation paths
package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/vectorstore"
)

type fakeCompleter struct {
	response   string
	err        error
	lastSystem string
	lastUser   string
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeEmbedder struct {
	err error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{1, 0, 0, 0}, nil
}

// fakeSearcher serves canned results per entity type and records the limits
// it was asked for.
type fakeSearcher struct {
	byType map[models.EntityType][]models.ContextResult
	limits map[models.EntityType]int
}

func (f *fakeSearcher) Search(ctx context.Context, vector []float32, flt vectorstore.Filters, limit int, scoreThreshold float64) []models.ContextResult {
	if f.limits == nil {
		f.limits = make(map[models.EntityType]int)
	}
	f.limits[flt.Type] = limit
	results := f.byType[flt.Type]
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func customerResult(key string, score float64) models.ContextResult {
	return models.ContextResult{
		Key: key, Type: models.EntityCustomer, Score: score, Text: "Customer: " + key,
		Meta: models.CustomerMeta{Territory: "EMEA", TotalSales: 300, CustomerStatus: models.CustomerActive},
	}
}

func productResult(key string, score float64) models.ContextResult {
	return models.ContextResult{
		Key: key, Type: models.EntityProduct, Score: score, Text: "Product: " + key,
		Meta: models.ProductMeta{ProductLine: "Classic Cars", PerformanceScore: 0.9, TypicalDealSize: "Large"},
	}
}

func territoryResult(key string, score float64) models.ContextResult {
	return models.ContextResult{
		Key: key, Type: models.EntityTerritory, Score: score, Text: "Territory: " + key,
		Meta: models.TerritoryMeta{MarketShare: 50, TotalSales: 800, UniqueCustomers: 2},
	}
}

func newTestAgent(completer *fakeCompleter, searcher *fakeSearcher) *Agent {
	return New(completer, &fakeEmbedder{}, searcher, 4)
}

func TestRetrieveContext_ScopeCaps(t *testing.T) {
	searcher := &fakeSearcher{}
	a := newTestAgent(&fakeCompleter{response: "ok"}, searcher)

	a.RetrieveContext(context.Background(), "question", ScopeAll)

	if searcher.limits[models.EntityCustomer] != 3 {
		t.Errorf("customer limit = %d, want 3", searcher.limits[models.EntityCustomer])
	}
	if searcher.limits[models.EntityProduct] != 3 {
		t.Errorf("product limit = %d, want 3", searcher.limits[models.EntityProduct])
	}
	if searcher.limits[models.EntityTerritory] != 2 {
		t.Errorf("territory limit = %d, want 2", searcher.limits[models.EntityTerritory])
	}
}

func TestRetrieveContext_ScopedToOneCategory(t *testing.T) {
	searcher := &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer: {customerResult("Alpha Ltd", 0.9)},
		models.EntityProduct:  {productResult("Classic Cars_P1", 0.8)},
	}}
	a := newTestAgent(&fakeCompleter{response: "ok"}, searcher)

	results := a.RetrieveContext(context.Background(), "question", ScopeProduct)
	if len(results) != 1 || results[0].Type != models.EntityProduct {
		t.Errorf("product scope returned %+v", results)
	}
	if _, asked := searcher.limits[models.EntityCustomer]; asked {
		t.Error("product scope should not search customers")
	}
}

func TestRetrieveContext_MergeRanksByScore(t *testing.T) {
	searcher := &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer: {customerResult("Alpha Ltd", 0.5)},
		models.EntityProduct:  {productResult("Classic Cars_P1", 0.9)},
		models.EntityTerritory: {
			territoryResult("EMEA", 0.7),
		},
	}}
	a := newTestAgent(&fakeCompleter{response: "ok"}, searcher)

	results := a.RetrieveContext(context.Background(), "question", ScopeAll)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	wantOrder := []string{"Classic Cars_P1", "EMEA", "Alpha Ltd"}
	for i, want := range wantOrder {
		if results[i].Key != want {
			t.Errorf("position %d = %q, want %q", i, results[i].Key, want)
		}
	}
}

func TestRetrieveContext_StableOrderOnEqualScores(t *testing.T) {
	// Equal scores keep category emission order: customer, product, territory.
	searcher := &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer:  {customerResult("C", 0.5)},
		models.EntityProduct:   {productResult("P", 0.5)},
		models.EntityTerritory: {territoryResult("T", 0.5)},
	}}
	a := newTestAgent(&fakeCompleter{response: "ok"}, searcher)

	results := a.RetrieveContext(context.Background(), "question", ScopeAll)
	wantOrder := []string{"C", "P", "T"}
	for i, want := range wantOrder {
		if results[i].Key != want {
			t.Errorf("position %d = %q, want %q", i, results[i].Key, want)
		}
	}
}

func TestFormatContext_Empty(t *testing.T) {
	a := newTestAgent(&fakeCompleter{response: "ok"}, &fakeSearcher{})
	if got := a.FormatContext(nil); got != "No relevant context found." {
		t.Errorf("FormatContext(nil) = %q", got)
	}
}

func TestFormatContext_MetadataLines(t *testing.T) {
	a := newTestAgent(&fakeCompleter{response: "ok"}, &fakeSearcher{})
	text := a.FormatContext([]models.ContextResult{
		customerResult("Alpha Ltd", 0.9),
		territoryResult("EMEA", 0.7),
	})
	for _, want := range []string{
		"**Key:** Alpha Ltd",
		"- Total Sales: $300.00",
		"- Status: Active",
		"- Market Share: 50.00%",
		"- Unique Customers: 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("formatted context missing %q\ngot:\n%s", want, text)
		}
	}
}

func TestQuery_EmptyStore(t *testing.T) {
	completer := &fakeCompleter{response: "no data available"}
	a := newTestAgent(completer, &fakeSearcher{})

	result := a.Query(context.Background(), "top customers?", "")
	if result.ContextUsed != 0 {
		t.Errorf("ContextUsed = %d, want 0", result.ContextUsed)
	}
	if !strings.Contains(completer.lastUser, "No relevant context found.") {
		t.Errorf("prompt should carry the no-context marker:\n%s", completer.lastUser)
	}
	if result.Response != "no data available" {
		t.Errorf("Response = %q", result.Response)
	}
}

func TestQuery_GenerationFailure(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("service down")}
	a := newTestAgent(completer, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer: {customerResult("Alpha Ltd", 0.9)},
	}})

	result := a.Query(context.Background(), "question", ScopeCustomer)
	if result.Response != "Error generating response: service down" {
		t.Errorf("Response = %q, want the literal error message", result.Response)
	}
	if result.ContextUsed != 1 {
		t.Errorf("ContextUsed = %d, want 1 (retrieval still ran)", result.ContextUsed)
	}
}

func TestAnalyzeCustomer_Found(t *testing.T) {
	completer := &fakeCompleter{response: "solid customer"}
	a := newTestAgent(completer, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer: {
			customerResult("Alpha Ltd", 0.9),
			customerResult("Beta GmbH", 0.8),
		},
	}})

	result := a.AnalyzeCustomer(context.Background(), "alpha")
	if result.NotFound {
		t.Fatal("expected a match for case-insensitive substring 'alpha'")
	}
	if result.Customer == nil || result.Customer.Key != "Alpha Ltd" {
		t.Errorf("Customer = %+v, want Alpha Ltd", result.Customer)
	}
	if result.Analysis != "solid customer" {
		t.Errorf("Analysis = %q", result.Analysis)
	}
}

func TestAnalyzeCustomer_NotFound(t *testing.T) {
	a := newTestAgent(&fakeCompleter{response: "unused"}, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer: {customerResult("Alpha Ltd", 0.9)},
	}})

	result := a.AnalyzeCustomer(context.Background(), "Zeta Corp")
	if !result.NotFound {
		t.Fatal("expected not-found result")
	}
	if !strings.Contains(result.Message, "Zeta Corp") {
		t.Errorf("Message = %q, should name the customer", result.Message)
	}
	if len(result.Suggestions) != 3 {
		t.Errorf("Suggestions = %d, want 3", len(result.Suggestions))
	}
}

func TestAnalyzeTerritory_ProceedsWithoutMatch(t *testing.T) {
	completer := &fakeCompleter{response: "sparse data"}
	a := newTestAgent(completer, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityTerritory: {territoryResult("EMEA", 0.7)},
	}})

	result := a.AnalyzeTerritory(context.Background(), "Atlantis")
	if result.Territory != nil {
		t.Errorf("Territory = %+v, want nil for no match", result.Territory)
	}
	if result.Analysis != "sparse data" {
		t.Errorf("Analysis = %q, analysis should still run on empty context", result.Analysis)
	}
	if !strings.Contains(completer.lastUser, "No relevant context found.") {
		t.Error("prompt should carry the no-context marker for an unmatched territory")
	}
}

func TestRecommendProducts(t *testing.T) {
	completer := &fakeCompleter{response: "buy classic cars"}
	a := newTestAgent(completer, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityProduct: {
			productResult("Classic Cars_P1", 0.9),
			productResult("Motorcycles_P2", 0.8),
		},
	}})

	result := a.RecommendProducts(context.Background(), "large deals in EMEA")
	if result.ProductsAnalyzed != 2 {
		t.Errorf("ProductsAnalyzed = %d, want 2", result.ProductsAnalyzed)
	}
	if !strings.Contains(completer.lastUser, "large deals in EMEA") {
		t.Error("prompt should carry the criteria")
	}
}

func TestGenerateSalesPitch(t *testing.T) {
	completer := &fakeCompleter{response: "the pitch"}
	a := newTestAgent(completer, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityCustomer: {customerResult("Alpha Ltd", 0.9)},
	}})

	result := a.GenerateSalesPitch(context.Background(), "Alpha Ltd", "Classic Cars")
	if result.Pitch != "the pitch" {
		t.Errorf("Pitch = %q", result.Pitch)
	}
	if result.PersonalizationLevel != 1 {
		t.Errorf("PersonalizationLevel = %d, want 1", result.PersonalizationLevel)
	}
	if !strings.Contains(completer.lastUser, "Product focus: Classic Cars") {
		t.Error("prompt should carry the product focus")
	}
}

func TestGetInsights(t *testing.T) {
	completer := &fakeCompleter{response: "grow EMEA"}
	a := newTestAgent(completer, &fakeSearcher{byType: map[models.EntityType][]models.ContextResult{
		models.EntityTerritory: {territoryResult("EMEA", 0.7)},
	}})

	result := a.GetInsights(context.Background(), "where to invest?")
	if result.Insights != "grow EMEA" {
		t.Errorf("Insights = %q", result.Insights)
	}
	if result.DataPointsAnalyzed != 1 {
		t.Errorf("DataPointsAnalyzed = %d, want 1", result.DataPointsAnalyzed)
	}
}
