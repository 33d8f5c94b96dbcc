// Package embed wraps an OpenAI-compatible embeddings endpoint behind the
// minimal interface the scorer needs, so any compatible or local backend can
// be adapted.
package embed

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the single method needed from the underlying SDK.
type Client interface {
	CreateEmbeddings(ctx context.Context, request openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Embedder turns texts into vectors using an OpenAI-compatible backend.
// A nil Embedder is valid and embeds nothing; callers treat missing vectors
// as a zero semantic signal.
type Embedder struct {
	Client Client
	Model  string
}

// Embed returns one vector per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e == nil || e.Client == nil {
		return nil, errors.New("embedder not configured")
	}
	if len(texts) == 0 {
		return nil, nil
	}
	model := openai.EmbeddingModel(e.Model)
	if e.Model == "" {
		model = openai.SmallEmbedding3
	}
	resp, err := e.Client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: texts,
		Model: model,
	})
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: want %d, got %d", len(texts), len(resp.Data))
	}
	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("embedding index out of range: %d", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// Cosine returns the cosine similarity of two vectors, or 0 when either is
// empty or zero-length in magnitude. The result is clamped to [0,1] so it can
// feed the scorer directly.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
