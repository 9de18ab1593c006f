// ABOUTME: Tests for batch embedding generation and its degradation paths
// ABOUTME: Service failures must yield zero vectors and base texts, never lost records
package embeddings

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func testAggregates() *models.Aggregates {
	return &models.Aggregates{
		Customers: []*models.CustomerProfile{
			{Name: "Alpha Ltd", Territory: "EMEA", TotalSales: 300, CustomerStatus: models.CustomerActive},
		},
		Products: []*models.ProductEntry{
			{ProductLine: "Classic Cars", ProductCode: "P1", PerformanceScore: 1, TypicalDealSize: "Large"},
		},
		Territories: []*models.TerritoryAnalysis{
			{Territory: "EMEA", MarketShare: 100, TotalSales: 800, UniqueCustomers: 2},
		},
	}
}

func newTestGenerator(completer Completer, embedder Embedder, enrich bool, clock Clock) *Generator {
	limiter := NewRateLimiterWithClock(100, time.Minute, clock)
	return NewGenerator(completer, embedder, limiter, GeneratorConfig{
		Dimension: 4,
		Enrich:    enrich,
		ItemDelay: 1,
		Clock:     clock,
	})
}

func TestGenerateAll_CoversAllEntities(t *testing.T) {
	clock := newFakeClock()
	embedder := &fakeEmbedder{vector: []float32{1, 2, 3, 4}}
	g := newTestGenerator(nil, embedder, false, clock)

	records := g.GenerateAll(context.Background(), testAggregates())

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	wantKeys := []string{"Alpha Ltd", "Classic Cars_P1", "EMEA"}
	for i, rec := range records {
		if rec.Key != wantKeys[i] {
			t.Errorf("record %d key = %q, want %q", i, rec.Key, wantKeys[i])
		}
		if rec.Enriched {
			t.Errorf("record %q enriched with enrichment disabled", rec.Key)
		}
		if models.IsZeroVector(rec.Vector) {
			t.Errorf("record %q has a zero vector from a healthy embedder", rec.Key)
		}
	}
	if records[0].Meta.Type() != models.EntityCustomer {
		t.Errorf("first record meta type = %s, want customer", records[0].Meta.Type())
	}
	if records[1].Meta.Type() != models.EntityProduct {
		t.Errorf("second record meta type = %s, want product", records[1].Meta.Type())
	}
	if records[2].Meta.Type() != models.EntityTerritory {
		t.Errorf("third record meta type = %s, want territory", records[2].Meta.Type())
	}
}

func TestGenerateAll_EmbedderFailureDegradesToZeroVectors(t *testing.T) {
	clock := newFakeClock()
	embedder := &fakeEmbedder{err: errors.New("service unavailable")}
	g := newTestGenerator(nil, embedder, false, clock)

	records := g.GenerateAll(context.Background(), testAggregates())

	if len(records) != 3 {
		t.Fatalf("records = %d, want 3 despite embedder failure", len(records))
	}
	for _, rec := range records {
		if !models.IsZeroVector(rec.Vector) {
			t.Errorf("record %q vector should be zero on failure", rec.Key)
		}
		if len(rec.Vector) != 4 {
			t.Errorf("record %q vector length = %d, want configured dimension 4", rec.Key, len(rec.Vector))
		}
	}
}

func TestEmbed_DimensionMismatchDegrades(t *testing.T) {
	clock := newFakeClock()
	embedder := &fakeEmbedder{vector: []float32{1, 2}} // wrong size
	g := newTestGenerator(nil, embedder, false, clock)

	vector := g.Embed(context.Background(), "text")
	if !models.IsZeroVector(vector) || len(vector) != 4 {
		t.Errorf("mismatched dimension should yield a 4-dim zero vector, got %v", vector)
	}
}

func TestEnhance_Success(t *testing.T) {
	clock := newFakeClock()
	completer := &fakeCompleter{response: "enriched description"}
	g := newTestGenerator(completer, &fakeEmbedder{vector: []float32{1, 0, 0, 0}}, true, clock)

	text, enriched := g.Enhance(context.Background(), "base text", "Customer in EMEA territory")
	if !enriched {
		t.Error("expected enriched=true on success")
	}
	if text != "enriched description" {
		t.Errorf("text = %q, want the service response", text)
	}
	if completer.calls != 1 {
		t.Errorf("completer called %d times, want 1", completer.calls)
	}
}

func TestEnhance_FallsBackAfterRetries(t *testing.T) {
	clock := newFakeClock()
	completer := &fakeCompleter{err: errors.New("rate limited")}
	g := newTestGenerator(completer, &fakeEmbedder{vector: []float32{1, 0, 0, 0}}, true, clock)

	text, enriched := g.Enhance(context.Background(), "base text", "hint")
	if enriched {
		t.Error("expected enriched=false after exhausted retries")
	}
	if text != "base text" {
		t.Errorf("text = %q, want the base text back", text)
	}
	if completer.calls != 3 {
		t.Errorf("completer called %d times, want 3 attempts", completer.calls)
	}
}

func TestEnhance_DisabledSkipsService(t *testing.T) {
	clock := newFakeClock()
	completer := &fakeCompleter{response: "should not be used"}
	g := newTestGenerator(completer, &fakeEmbedder{vector: []float32{1, 0, 0, 0}}, false, clock)

	text, enriched := g.Enhance(context.Background(), "base text", "hint")
	if enriched || text != "base text" {
		t.Errorf("enrichment disabled: got (%q, %v), want (base text, false)", text, enriched)
	}
	if completer.calls != 0 {
		t.Errorf("completer called %d times, want 0", completer.calls)
	}
}

func TestEnhance_PromptIncludesContext(t *testing.T) {
	clock := newFakeClock()
	var captured string
	completer := &capturingCompleter{capture: &captured}
	g := newTestGenerator(completer, &fakeEmbedder{vector: []float32{1, 0, 0, 0}}, true, clock)

	g.Enhance(context.Background(), "the base", "the hint")
	if !strings.Contains(captured, "the base") || !strings.Contains(captured, "the hint") {
		t.Errorf("prompt missing base text or context hint:\n%s", captured)
	}
}

type capturingCompleter struct {
	capture *string
}

func (c *capturingCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	*c.capture = userPrompt
	return "ok", nil
}
