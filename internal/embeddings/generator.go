// ABOUTME: Batch embedding generation: synthesize, optionally enrich, embed, tag metadata
// ABOUTME: Per-item failures degrade to base text / zero vectors and never abort the batch
package embeddings

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/util"
)

// Completer is the generation-service capability used for text enrichment.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Embedder is the embedding-model capability.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

const enhancePrompt = `Enhance this customer/product description for better semantic search:

Context: %s
Original text: %s

Create a rich, descriptive text that captures:
1. Key business characteristics
2. Sales potential
3. Market segment
4. Product preferences
5. Geographic and demographic insights

Keep it concise but informative (max 200 words):`

// GeneratorConfig holds tunables for batch embedding generation.
type GeneratorConfig struct {
	Dimension  int
	Enrich     bool
	ItemDelay  time.Duration // cooperative yield between items
	MaxRetries int           // enrichment retries after the first attempt
	RetryDelay time.Duration
	RetryCap   time.Duration
	Clock      Clock
}

// Generator turns aggregate entities into embedding records.
type Generator struct {
	completer  Completer
	embedder   Embedder
	limiter    *RateLimiter
	dimension  int
	enrich     bool
	itemDelay  time.Duration
	maxRetries int
	retryDelay time.Duration
	retryCap   time.Duration
	clock      Clock
}

// NewGenerator wires a generator over the given service capabilities. The
// limiter gates enrichment calls only.
func NewGenerator(completer Completer, embedder Embedder, limiter *RateLimiter, cfg GeneratorConfig) *Generator {
	if cfg.ItemDelay == 0 {
		cfg.ItemDelay = 100 * time.Millisecond
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2 // 3 attempts total
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 4 * time.Second
	}
	if cfg.RetryCap == 0 {
		cfg.RetryCap = 10 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	return &Generator{
		completer:  completer,
		embedder:   embedder,
		limiter:    limiter,
		dimension:  cfg.Dimension,
		enrich:     cfg.Enrich,
		itemDelay:  cfg.ItemDelay,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		retryCap:   cfg.RetryCap,
		clock:      cfg.Clock,
	}
}

// Enhance asks the generation service for a richer description. Enrichment
// is best-effort: on exhausted retries the deterministic base text comes
// back with enriched=false, never an error.
func (g *Generator) Enhance(ctx context.Context, baseText, contextHint string) (string, bool) {
	if !g.enrich || g.completer == nil {
		return baseText, false
	}

	prompt := fmt.Sprintf(enhancePrompt, contextHint, baseText)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.clock.Sleep(util.CalculateBackoff(g.retryDelay, g.retryCap, attempt))
		}
		g.limiter.Wait()

		enhanced, err := g.completer.Complete(ctx, "", prompt)
		if err != nil {
			lastErr = err
			continue
		}
		return enhanced, true
	}

	log.Printf("Error enhancing text, falling back to base description: %v", lastErr)
	return baseText, false
}

// Embed generates a vector for text, failing soft: any error yields a zero
// vector of the configured dimension so one bad input cannot abort a batch.
func (g *Generator) Embed(ctx context.Context, text string) []float32 {
	vector, err := g.embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("Error generating embedding: %v", err)
		return models.ZeroVector(g.dimension)
	}
	if len(vector) != g.dimension {
		log.Printf("Embedding dimension mismatch: expected %d, got %d", g.dimension, len(vector))
		return models.ZeroVector(g.dimension)
	}
	return vector
}

// GenerateAll produces one embedding record per entity across all three
// aggregate collections, sequentially, with a fixed yield between items.
// The output covers exactly the union of input keys.
func (g *Generator) GenerateAll(ctx context.Context, agg *models.Aggregates) []*models.EmbeddingRecord {
	records := make([]*models.EmbeddingRecord, 0, agg.Len())

	for _, c := range agg.Customers {
		log.Printf("Generating embedding for customer: %s", c.Name)
		records = append(records, g.generateOne(ctx,
			c.Name,
			CustomerText(c),
			fmt.Sprintf("Customer in %s territory", c.Territory),
			models.CustomerMeta{
				Territory:      c.Territory,
				TotalSales:     c.TotalSales,
				CustomerStatus: c.CustomerStatus,
			}))
		g.clock.Sleep(g.itemDelay)
	}
	log.Printf("Generated embeddings for %d customers", len(agg.Customers))

	for _, p := range agg.Products {
		log.Printf("Generating embedding for product: %s", p.Key())
		records = append(records, g.generateOne(ctx,
			p.Key(),
			ProductText(p),
			fmt.Sprintf("Product in %s category", p.ProductLine),
			models.ProductMeta{
				ProductLine:      p.ProductLine,
				PerformanceScore: p.PerformanceScore,
				TypicalDealSize:  p.TypicalDealSize,
			}))
		g.clock.Sleep(g.itemDelay)
	}
	log.Printf("Generated embeddings for %d products", len(agg.Products))

	for _, t := range agg.Territories {
		log.Printf("Generating embedding for territory: %s", t.Territory)
		records = append(records, g.generateOne(ctx,
			t.Territory,
			TerritoryText(t),
			fmt.Sprintf("Sales territory analysis for %s", t.Territory),
			models.TerritoryMeta{
				MarketShare:     t.MarketShare,
				TotalSales:      t.TotalSales,
				UniqueCustomers: t.UniqueCustomers,
			}))
		g.clock.Sleep(g.itemDelay)
	}
	log.Printf("Generated embeddings for %d territories", len(agg.Territories))

	return records
}

func (g *Generator) generateOne(ctx context.Context, key, baseText, hint string, meta models.Metadata) *models.EmbeddingRecord {
	text, enriched := g.Enhance(ctx, baseText, hint)
	return &models.EmbeddingRecord{
		Key:      key,
		Text:     text,
		Vector:   g.Embed(ctx, text),
		Enriched: enriched,
		Meta:     meta,
	}
}
