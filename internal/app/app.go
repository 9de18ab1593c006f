// ABOUTME: Application context wiring all services, constructed once at startup
// ABOUTME: Replaces ambient globals; every request-scoped operation receives the handle
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/agent"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/config"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/data"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/embeddings"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/llm"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/vectorstore"
)

// App is the application context: configuration plus every service handle,
// constructed once by New and passed by reference into request-scoped
// operations. Startup fails fast on missing credentials, an unreachable
// data source, or an unreachable vector store.
type App struct {
	Config    *config.Config
	Processor *data.Processor
	LLM       *llm.Client
	Generator *embeddings.Generator
	Store     *vectorstore.Store
	Agent     *agent.Agent

	Summary *data.Summary
}

// New builds the full application context and runs the initial data
// processing pass.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}

	client, err := llm.NewClient(llm.ClientConfig{
		APIKey:         cfg.GroqAPIKey,
		BaseURL:        cfg.GroqBaseURL,
		ChatModel:      cfg.GroqModel,
		EmbeddingModel: cfg.EmbeddingModel,
		Dimension:      cfg.EmbeddingDimension,
		Temperature:    float32(cfg.GroqTemperature),
		MaxTokens:      cfg.GroqMaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}

	store := vectorstore.New(vectorstore.Config{
		URL:        cfg.QdrantURL,
		APIKey:     cfg.QdrantAPIKey,
		Collection: cfg.QdrantCollection,
		Dimension:  cfg.EmbeddingDimension,
		Timeout:    cfg.QdrantTimeout,
	})
	if err := store.EnsureCollection(ctx); err != nil {
		return nil, fmt.Errorf("initializing vector store: %w", err)
	}

	processor := data.NewProcessor(cfg.DataPath)
	log.Println("Processing sales data...")
	summary, err := processor.ProcessAll()
	if err != nil {
		return nil, fmt.Errorf("processing sales data: %w", err)
	}

	limiter := embeddings.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	generator := embeddings.NewGenerator(client, client, limiter, embeddings.GeneratorConfig{
		Dimension: cfg.EmbeddingDimension,
		Enrich:    cfg.EnrichTexts,
	})

	salesAgent := agent.New(client, client, store, cfg.EmbeddingDimension)

	log.Println("All services initialized successfully")
	return &App{
		Config:    cfg,
		Processor: processor,
		LLM:       client,
		Generator: generator,
		Store:     store,
		Agent:     salesAgent,
		Summary:   summary,
	}, nil
}

// ProcessAll reruns the full aggregation pass, replacing the previous run's
// collections.
func (a *App) ProcessAll() (*data.Summary, error) {
	summary, err := a.Processor.ProcessAll()
	if err != nil {
		return nil, err
	}
	a.Summary = summary
	return summary, nil
}

// GenerateEmbeddings produces embedding records for the current aggregates.
func (a *App) GenerateEmbeddings(ctx context.Context) []*models.EmbeddingRecord {
	return a.Generator.GenerateAll(ctx, a.Processor.Aggregates())
}

// StoreEmbeddings writes records into the vector collection.
func (a *App) StoreEmbeddings(ctx context.Context, records []*models.EmbeddingRecord) bool {
	return a.Store.Upsert(ctx, records)
}

// RebuildIndex clears the collection and re-indexes the current aggregates.
// Destructive; must not run concurrently with retrieval.
func (a *App) RebuildIndex(ctx context.Context) error {
	if !a.Store.Clear(ctx) {
		return fmt.Errorf("clearing collection %s", a.Config.QdrantCollection)
	}
	records := a.GenerateEmbeddings(ctx)
	if !a.StoreEmbeddings(ctx, records) {
		return fmt.Errorf("storing %d embedding records", len(records))
	}
	log.Printf("Index rebuilt with %d records", len(records))
	return nil
}
