// ABOUTME: Embedding record pairing synthesized text with its vector
// ABOUTME: One per entity, overwritten wholesale on each full rebuild
package models

// EmbeddingRecord is the stored unit of the vector index: the synthesized
// (possibly enriched) description of one entity plus its embedding vector
// and typed metadata. Enriched is false when enrichment degraded to the
// deterministic base text, so callers can tell a fallback from the real
// thing.
type EmbeddingRecord struct {
	Key      string
	Text     string
	Vector   []float32
	Enriched bool
	Meta     Metadata
}

// EntityType returns the tagged type of the attached metadata.
func (r *EmbeddingRecord) EntityType() EntityType {
	return r.Meta.Type()
}

// ZeroVector returns an all-zero vector of the given dimension, the
// degraded stand-in when embedding generation fails.
func ZeroVector(dimension int) []float32 {
	return make([]float32, dimension)
}

// IsZeroVector reports whether every component of v is zero.
func IsZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
