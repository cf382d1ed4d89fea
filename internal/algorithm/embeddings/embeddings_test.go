package embeddings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/document"
	"github.com/kailas-cloud/clusterdex/internal/language"
)

// --- Mocks ---

// topicEmbedder maps a text to a one-hot vector chosen by the first known keyword.
type topicEmbedder struct {
	topics []string
	calls  int
	err    error
}

func (e *topicEmbedder) vector(text string) []float32 {
	v := make([]float32, len(e.topics)+1)
	for i, topic := range e.topics {
		if strings.Contains(text, topic) {
			v[i] = 1
			return v
		}
	}
	v[len(e.topics)] = 1
	return v
}

func (e *topicEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	e.calls++
	if e.err != nil {
		return domain.EmbeddingResult{}, e.err
	}
	return domain.EmbeddingResult{Embedding: e.vector(text), TotalTokens: 1}, nil
}

type batchTopicEmbedder struct {
	topicEmbedder
	batchCalls int
	short      bool
}

func (e *batchTopicEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	e.batchCalls++
	out := domain.BatchEmbeddingResult{}
	for _, t := range texts {
		out.Embeddings = append(out.Embeddings, e.vector(t))
	}
	if e.short {
		out.Embeddings = out.Embeddings[:len(out.Embeddings)-1]
	}
	return out, nil
}

func english(t *testing.T) *language.Resources {
	t.Helper()
	c, err := language.NewCatalog([]string{language.English})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	r, _ := c.ResourcesFor(language.English)
	return r
}

func docs(texts ...string) []*document.Document {
	out := make([]*document.Document, len(texts))
	for i, text := range texts {
		d := document.New(fmt.Sprintf("d%d", i), text, "", "")
		out[i] = &d
	}
	return out
}

// --- Tests ---

func TestCluster_GroupsSimilarDocuments(t *testing.T) {
	emb := &topicEmbedder{topics: []string{"rust", "java"}}
	alg := New(emb)
	in := docs(
		"rust borrow checker",
		"java virtual machine",
		"rust async runtime",
		"java garbage collector",
		"rust traits",
		"gardening tips",
	)

	cs, err := alg.Cluster(context.Background(), in, english(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.calls != len(in) {
		t.Errorf("expected per-text fallback, got %d calls", emb.calls)
	}
	if len(cs) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(cs))
	}
	if len(cs[0].Documents) != 3 || cs[0].Labels[0] != "rust" {
		t.Errorf("first cluster = %v with %d docs", cs[0].Labels, len(cs[0].Documents))
	}
	if cs[0].Score != 1 {
		t.Errorf("score = %v, want 1", cs[0].Score)
	}
	if len(cs[1].Documents) != 2 || cs[1].Labels[0] != "java" {
		t.Errorf("second cluster = %v with %d docs", cs[1].Labels, len(cs[1].Documents))
	}
}

func TestCluster_UsesBatchEmbedder(t *testing.T) {
	emb := &batchTopicEmbedder{topicEmbedder: topicEmbedder{topics: []string{"rust"}}}
	alg := New(emb)

	if _, err := alg.Cluster(context.Background(), docs("rust a", "rust b"), english(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.batchCalls != 1 || emb.calls != 0 {
		t.Errorf("batch=%d single=%d", emb.batchCalls, emb.calls)
	}
}

func TestCluster_VectorCountMismatch(t *testing.T) {
	emb := &batchTopicEmbedder{short: true}
	_, err := New(emb).Cluster(context.Background(), docs("a", "b"), english(t))
	if err == nil || !strings.Contains(err.Error(), "1 vectors for 2 documents") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCluster_EmbedderError(t *testing.T) {
	boom := errors.New("provider down")
	_, err := New(&topicEmbedder{err: boom}).Cluster(context.Background(), docs("a"), english(t))
	if !errors.Is(err, boom) {
		t.Errorf("expected provider error, got %v", err)
	}
}

func TestCluster_Attributes(t *testing.T) {
	emb := &topicEmbedder{topics: []string{"rust", "java", "go"}}
	alg := New(emb)
	err := alg.Attributes().Apply(map[string]any{
		"maxClusters":    1,
		"minClusterSize": 1,
		"labelCount":     1,
		"queryHint":      "rust",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	cs, err := alg.Cluster(context.Background(), docs("rust alpha", "rust alpha", "java beta"), english(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cs) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(cs))
	}
	if len(cs[0].Labels) != 1 || cs[0].Labels[0] != "alpha" {
		t.Errorf("labels = %v", cs[0].Labels)
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		a, b []float32
		want float64
	}{
		{[]float32{1, 0}, []float32{1, 0}, 1},
		{[]float32{1, 0}, []float32{0, 1}, 0},
		{[]float32{1, 0}, []float32{1}, 0},
		{[]float32{0, 0}, []float32{1, 0}, 0},
	}
	for _, tt := range tests {
		if got := cosine(tt.a, tt.b); got != tt.want {
			t.Errorf("cosine(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
