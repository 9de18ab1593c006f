// ABOUTME: Qdrant vector store over its REST API
// ABOUTME: Collection ensure, batch upsert, filtered search, stats, health, clear
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JahazielHernandezHoyos/embedding-with-groq-and-qdrant/internal/models"
)

// Config holds connection settings for the Qdrant store.
type Config struct {
	URL        string
	APIKey     string
	Collection string
	Dimension  int
	Timeout    time.Duration
}

// Store is a minimal REST client to Qdrant. It assumes cosine distance and
// creates the collection if missing. Search, upsert and stats failures are
// logged and degrade to empty results so a transient outage does not crash
// the caller; only EnsureCollection propagates errors (fatal at startup).
type Store struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

// Stats reports collection-level counts.
type Stats struct {
	TotalPoints int                       `json:"total_points"`
	TypeCounts  map[models.EntityType]int `json:"type_counts"`
	Status      string                    `json:"status"`
}

// Health reports store reachability and target-collection presence.
type Health struct {
	Status           string `json:"status"`
	CollectionsCount int    `json:"collections_count"`
	CollectionExists bool   `json:"target_collection_exists"`
	Error            string `json:"error,omitempty"`
}

// New creates a store for the configured collection.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		dimension:  cfg.Dimension,
		client:     &http.Client{Timeout: timeout},
	}
}

// EnsureCollection creates the backing collection if absent; if it already
// exists this is a no-op. Safe to call on every startup.
func (s *Store) EnsureCollection(ctx context.Context) error {
	status, err := s.do(ctx, http.MethodGet, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil, nil)
	if err == nil && status == http.StatusOK {
		log.Printf("Collection already exists: %s", s.collection)
		return nil
	}
	if err != nil && status != http.StatusNotFound {
		return fmt.Errorf("checking collection %s: %w", s.collection, err)
	}

	body := map[string]any{
		"vectors": map[string]any{
			"size":     s.dimension,
			"distance": "Cosine",
		},
	}
	if _, err := s.do(ctx, http.MethodPut, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body, nil); err != nil {
		return fmt.Errorf("creating collection %s: %w", s.collection, err)
	}
	log.Printf("Created collection: %s", s.collection)
	return nil
}

// Upsert writes records as one batch of points, generating a stable unique
// identifier per point. An empty input is a successful no-op.
func (s *Store) Upsert(ctx context.Context, records []*models.EmbeddingRecord) bool {
	if len(records) == 0 {
		log.Println("No embeddings to store")
		return true
	}

	points := make([]map[string]any, 0, len(records))
	for _, r := range records {
		payload := r.Meta.Payload()
		payload["type"] = string(r.Meta.Type())
		payload["key"] = r.Key
		payload["text"] = r.Text
		payload["enriched"] = r.Enriched

		points = append(points, map[string]any{
			"id":      uuid.NewString(),
			"vector":  r.Vector,
			"payload": payload,
		})
	}

	body := map[string]any{"points": points}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	if _, err := s.do(ctx, http.MethodPut, url, body, nil); err != nil {
		log.Printf("Error storing embeddings: %v", err)
		return false
	}
	log.Printf("Stored %d embeddings in Qdrant", len(points))
	return true
}

// Filters restricts a search. Equality fields are applied server-side;
// the Min* fields are numeric-range conditions Qdrant match filters cannot
// express, applied as a client-side post-filter on the returned page. A
// strict numeric filter can therefore yield fewer than limit candidates;
// there is no backfill re-query.
type Filters struct {
	Type           models.EntityType
	Territory      string
	CustomerStatus string
	ProductLine    string
	DealSize       string

	MinSales       *float64
	MinPerformance *float64
	MinMarketShare *float64
}

func (f Filters) conditions() []map[string]any {
	var must []map[string]any
	add := func(key, value string) {
		if value != "" {
			must = append(must, map[string]any{
				"key":   key,
				"match": map[string]any{"value": value},
			})
		}
	}
	add("type", string(f.Type))
	add("territory", f.Territory)
	add("customer_status", f.CustomerStatus)
	add("product_line", f.ProductLine)
	add("typical_deal_size", f.DealSize)
	return must
}

// Search runs nearest-neighbor search under cosine distance, restricted
// server-side to the equality filters, ordered by descending score and
// truncated to limit. Internal errors degrade to an empty result.
func (s *Store) Search(ctx context.Context, vector []float32, f Filters, limit int, scoreThreshold float64) []models.ContextResult {
	if limit <= 0 {
		limit = 10
	}
	req := map[string]any{
		"vector":          vector,
		"limit":           limit,
		"with_payload":    true,
		"score_threshold": scoreThreshold,
	}
	if must := f.conditions(); len(must) > 0 {
		req["filter"] = map[string]any{"must": must}
	}

	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if _, err := s.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		log.Printf("Error searching embeddings: %v", err)
		return nil
	}

	results := make([]models.ContextResult, 0, len(resp.Result))
	for _, hit := range resp.Result {
		meta, err := models.DecodeMetadata(hit.Payload)
		if err != nil {
			log.Printf("Skipping search hit with bad payload: %v", err)
			continue
		}
		key, _ := hit.Payload["key"].(string)
		text, _ := hit.Payload["text"].(string)
		results = append(results, models.ContextResult{
			Key:   key,
			Type:  meta.Type(),
			Score: hit.Score,
			Text:  text,
			Meta:  meta,
		})
	}

	return postFilter(results, f)
}

// postFilter applies the numeric minimums on the fetched page. It can only
// shrink the result set, never grow it.
func postFilter(results []models.ContextResult, f Filters) []models.ContextResult {
	if f.MinSales == nil && f.MinPerformance == nil && f.MinMarketShare == nil {
		return results
	}
	kept := results[:0]
	for _, r := range results {
		switch meta := r.Meta.(type) {
		case models.CustomerMeta:
			if f.MinSales != nil && meta.TotalSales < *f.MinSales {
				continue
			}
		case models.ProductMeta:
			if f.MinPerformance != nil && meta.PerformanceScore < *f.MinPerformance {
				continue
			}
		case models.TerritoryMeta:
			if f.MinMarketShare != nil && meta.MarketShare < *f.MinMarketShare {
				continue
			}
			if f.MinSales != nil && meta.TotalSales < *f.MinSales {
				continue
			}
		}
		kept = append(kept, r)
	}
	return kept
}

// SearchCustomers searches customer embeddings with optional filters.
func (s *Store) SearchCustomers(ctx context.Context, vector []float32, territory, status string, minSales *float64, limit int) []models.ContextResult {
	return s.Search(ctx, vector, Filters{
		Type:           models.EntityCustomer,
		Territory:      territory,
		CustomerStatus: status,
		MinSales:       minSales,
	}, limit, 0)
}

// SearchProducts searches product embeddings with optional filters.
func (s *Store) SearchProducts(ctx context.Context, vector []float32, productLine, dealSize string, minPerformance *float64, limit int) []models.ContextResult {
	return s.Search(ctx, vector, Filters{
		Type:           models.EntityProduct,
		ProductLine:    productLine,
		DealSize:       dealSize,
		MinPerformance: minPerformance,
	}, limit, 0)
}

// SearchTerritories searches territory embeddings with optional filters.
func (s *Store) SearchTerritories(ctx context.Context, vector []float32, minMarketShare *float64, limit int) []models.ContextResult {
	return s.Search(ctx, vector, Filters{
		Type:           models.EntityTerritory,
		MinMarketShare: minMarketShare,
	}, limit, 0)
}

// GetStats returns total point count, per-type counts, and collection
// status. Errors degrade to empty stats.
func (s *Store) GetStats(ctx context.Context) Stats {
	var info struct {
		Result struct {
			Status      string `json:"status"`
			PointsCount int    `json:"points_count"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	if _, err := s.do(ctx, http.MethodGet, url, nil, &info); err != nil {
		log.Printf("Error getting collection stats: %v", err)
		return Stats{TypeCounts: map[models.EntityType]int{}}
	}

	counts := make(map[models.EntityType]int, 3)
	for _, t := range []models.EntityType{models.EntityCustomer, models.EntityProduct, models.EntityTerritory} {
		counts[t] = s.countByType(ctx, t)
	}

	return Stats{
		TotalPoints: info.Result.PointsCount,
		TypeCounts:  counts,
		Status:      info.Result.Status,
	}
}

func (s *Store) countByType(ctx context.Context, t models.EntityType) int {
	req := map[string]any{
		"exact": true,
		"filter": map[string]any{
			"must": []map[string]any{
				{"key": "type", "match": map[string]any{"value": string(t)}},
			},
		},
	}
	var resp struct {
		Result struct {
			Count int `json:"count"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/count", s.url, s.collection)
	if _, err := s.do(ctx, http.MethodPost, url, req, &resp); err != nil {
		log.Printf("Error counting %s points: %v", t, err)
		return 0
	}
	return resp.Result.Count
}

// HealthCheck reports reachability and whether the target collection exists.
func (s *Store) HealthCheck(ctx context.Context) Health {
	var resp struct {
		Result struct {
			Collections []struct {
				Name string `json:"name"`
			} `json:"collections"`
		} `json:"result"`
	}
	if _, err := s.do(ctx, http.MethodGet, fmt.Sprintf("%s/collections", s.url), nil, &resp); err != nil {
		return Health{Status: "unhealthy", Error: err.Error()}
	}
	h := Health{Status: "healthy", CollectionsCount: len(resp.Result.Collections)}
	for _, c := range resp.Result.Collections {
		if c.Name == s.collection {
			h.CollectionExists = true
		}
	}
	return h
}

// Clear drops and immediately recreates the collection. Destructive; used
// only for full rebuilds and must not run concurrently with retrieval.
func (s *Store) Clear(ctx context.Context) bool {
	if _, err := s.do(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil, nil); err != nil {
		log.Printf("Error deleting collection: %v", err)
		return false
	}
	if err := s.EnsureCollection(ctx); err != nil {
		log.Printf("Error recreating collection: %v", err)
		return false
	}
	log.Printf("Cleared collection: %s", s.collection)
	return true
}

// do sends one JSON request and decodes the response into out when given.
// It returns the HTTP status for callers that branch on 404.
func (s *Store) do(ctx context.Context, method, url string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return resp.StatusCode, json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode, nil
}
