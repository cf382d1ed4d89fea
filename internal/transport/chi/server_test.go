package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterdex/internal/algorithm"
	"github.com/kailas-cloud/clusterdex/internal/algorithm/terms"
	"github.com/kailas-cloud/clusterdex/internal/db"
	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/cluster"
	"github.com/kailas-cloud/clusterdex/internal/domain/hit"
	"github.com/kailas-cloud/clusterdex/internal/domain/request"
	"github.com/kailas-cloud/clusterdex/internal/language"
	gen "github.com/kailas-cloud/clusterdex/internal/transport/generated"
	clusteringuc "github.com/kailas-cloud/clusterdex/internal/usecase/clustering"
	healthuc "github.com/kailas-cloud/clusterdex/internal/usecase/health"
)

// --- Mocks ---

type fakeClusterer struct {
	resp    *clusteringuc.Response
	err     error
	lastReq *request.Request
}

func (f *fakeClusterer) Cluster(_ context.Context, req *request.Request) (*clusteringuc.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func (f *fakeClusterer) Algorithms() []clusteringuc.AlgorithmInfo {
	return []clusteringuc.AlgorithmInfo{{ID: "terms", Languages: []string{"English"}}}
}

type fakeHealth struct {
	report healthuc.Report
}

func (f *fakeHealth) Check(context.Context) healthuc.Report { return f.report }

type stubSearcher struct {
	hits []hit.Hit
}

func (s *stubSearcher) Search(context.Context, *hit.Query) ([]hit.Hit, error) { return s.hits, nil }

// --- Helpers ---

func newTestRouter(t *testing.T, c Clusterer) http.Handler {
	t.Helper()
	health := &fakeHealth{report: healthuc.Report{Status: healthuc.Healthy, Checks: map[string]healthuc.CheckResult{}}}
	return NewRouter(NewServer(c, health, zap.NewNop()), nil, zap.NewNop())
}

const validBody = `{
	"search_request": {"query": "go", "size": 20},
	"field_mapping": {"title": ["fields.title"], "content": ["fields.body"]}
}`

func postClusters(t *testing.T, h http.Handler, index, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/indexes/"+index+"/clusters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) gen.ErrorResponse {
	t.Helper()
	var resp gen.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

// --- Tests ---

func TestClusterSearchResults_BuildsRequest(t *testing.T) {
	fc := &fakeClusterer{resp: &clusteringuc.Response{Info: map[string]string{}}}
	h := newTestRouter(t, fc)

	body := `{
		"search_request": {"query": "go", "size": 20},
		"query_hint": "golang",
		"field_mapping": {"Title": ["fields.title"], "language": ["_source.lang"]},
		"algorithm": "terms",
		"attributes": {"maxClusters": 5},
		"create_ungrouped": true,
		"max_hits": 10,
		"default_language": "German"
	}`
	rr := postClusters(t, h, "news", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	r := fc.lastReq
	if r.Index() != "news" || r.Query() != "go" || r.Size() != 20 {
		t.Errorf("unexpected search params: %q %q %d", r.Index(), r.Query(), r.Size())
	}
	if r.QueryHint() != "golang" || r.Algorithm() != "terms" || r.DefaultLanguage() != "German" {
		t.Errorf("unexpected options: %q %q %q", r.QueryHint(), r.Algorithm(), r.DefaultLanguage())
	}
	if !r.CreateUngrouped() || !r.IncludeHits() || r.MaxHits() != 10 {
		t.Errorf("flags: ungrouped=%v hits=%v max=%d", r.CreateUngrouped(), r.IncludeHits(), r.MaxHits())
	}
	if len(r.Mappings()) != 2 {
		t.Errorf("expected 2 mappings, got %d", len(r.Mappings()))
	}
	if _, ok := r.Attributes()["maxClusters"].(json.Number); !ok {
		t.Errorf("attributes must keep json numbers, got %T", r.Attributes()["maxClusters"])
	}
}

func TestClusterSearchResults_IncludeHitsFalse(t *testing.T) {
	fc := &fakeClusterer{resp: &clusteringuc.Response{Info: map[string]string{}}}
	h := newTestRouter(t, fc)

	rr := postClusters(t, h, "news", `{"include_hits": false, "field_mapping": {"title": ["fields.t"]}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if fc.lastReq.IncludeHits() {
		t.Error("include_hits=false was ignored")
	}
	if !strings.Contains(rr.Body.String(), `"clusters":[]`) {
		t.Errorf("expected empty clusters array, got %s", rr.Body.String())
	}
}

func TestClusterSearchResults_ResponseShape(t *testing.T) {
	h1 := hit.New("a", 2, map[string]any{"title": "Go"}, nil, nil)
	fc := &fakeClusterer{resp: &clusteringuc.Response{
		Hits: []hit.Hit{h1},
		Groups: []cluster.Group{
			{ID: 1, Labels: []string{"go", "lang"}, Score: 1.5, Documents: []string{"a"},
				Subgroups: []cluster.Group{{ID: 2, Labels: []string{"gc"}, Documents: []string{"a"}}}},
			{ID: 3, Labels: []string{cluster.UngroupedLabel}, Documents: []string{"b"}, Ungrouped: true},
		},
		Info: map[string]string{clusteringuc.InfoAlgorithm: "terms", clusteringuc.InfoEmbeddingTokens: "12"},
	}}
	h := newTestRouter(t, fc)

	rr := postClusters(t, h, "news", validBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Embedding-Tokens") != "12" {
		t.Errorf("X-Embedding-Tokens = %q", rr.Header().Get("X-Embedding-Tokens"))
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	var resp gen.ClusterResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Info[clusteringuc.InfoAlgorithm] != "terms" {
		t.Errorf("info = %v", resp.Info)
	}
	if len(resp.Clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %d", len(resp.Clusters))
	}
	top := resp.Clusters[0]
	if top.Label != "go, lang" || len(top.Phrases) != 2 || top.Clusters == nil || len(*top.Clusters) != 1 {
		t.Fatalf("unexpected top cluster: %+v", top)
	}
	if (*top.Clusters)[0].Id != 2 {
		t.Errorf("subcluster id = %d, want 2", (*top.Clusters)[0].Id)
	}
	if other := resp.Clusters[1].OtherTopics; other == nil || !*other {
		t.Error("ungrouped bucket must be flagged other_topics")
	}
	if resp.SearchResponse == nil || len(resp.SearchResponse.Hits) != 1 || resp.SearchResponse.Hits[0].Id != "a" {
		t.Errorf("unexpected hits: %+v", resp.SearchResponse)
	}
}

func TestClusterSearchResults_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  gen.ErrorResponseCode
		wantMsg  string
	}{
		{
			name: "malformed json", body: `{`,
			wantCode: http.StatusBadRequest, wantErr: gen.ErrorResponseCodeBadRequest,
		},
		{
			name: "unknown logical field", body: `{"field_mapping": {"author": ["fields.a"]}}`,
			wantCode: http.StatusBadRequest, wantErr: gen.ErrorResponseCodeValidationFailed, wantMsg: "author",
		},
		{
			name: "invalid field spec", body: `{"field_mapping": {"title": ["bogus.title"]}}`,
			wantCode: http.StatusBadRequest, wantErr: gen.ErrorResponseCodeValidationFailed,
			wantMsg: "field mapping specification must contain a valid source prefix",
		},
		{
			name: "empty mapping", body: `{"field_mapping": {}}`,
			wantCode: http.StatusBadRequest, wantErr: gen.ErrorResponseCodeValidationFailed,
		},
		{
			name: "unknown algorithm", body: validBody, err: domain.NewUnknownAlgorithm("nope"),
			wantCode: http.StatusBadRequest, wantErr: gen.ErrorResponseCodeUnknownAlgorithm, wantMsg: "No such algorithm: nope",
		},
		{
			name: "unsupported language", body: validBody,
			err:      &domain.UnsupportedLanguageError{Language: "Klingon", Supported: []string{"English"}},
			wantCode: http.StatusBadRequest, wantErr: gen.ErrorResponseCodeUnsupportedLanguage, wantMsg: "Klingon",
		},
		{
			name: "index not found", body: validBody,
			err:      fmt.Errorf("%w: %w", domain.ErrSearchFailed, db.ErrIndexNotFound),
			wantCode: http.StatusNotFound, wantErr: gen.ErrorResponseCodeIndexNotFound,
		},
		{
			name: "search failed", body: validBody,
			err:      fmt.Errorf("%w: %w", domain.ErrSearchFailed, errors.New("connection reset by 10.0.0.1")),
			wantCode: http.StatusBadGateway, wantErr: gen.ErrorResponseCodeSearchFailed, wantMsg: "search failed",
		},
		{
			name: "embedding provider", body: validBody,
			err:      domain.NewClusteringError(fmt.Errorf("embed: %w", domain.ErrEmbeddingProviderError)),
			wantCode: http.StatusBadGateway, wantErr: gen.ErrorResponseCodeEmbeddingProviderError,
		},
		{
			name: "clustering failure", body: validBody,
			err:      fmt.Errorf("dispatch: %w", domain.NewClusteringError(errors.New("value 1.5 must be <= 1"))),
			wantCode: http.StatusInternalServerError, wantErr: gen.ErrorResponseCodeClusteringFailed,
			wantMsg: "Clustering error: value 1.5 must be <= 1",
		},
		{
			name: "timeout", body: validBody, err: fmt.Errorf("search: %w", context.DeadlineExceeded),
			wantCode: http.StatusGatewayTimeout, wantErr: gen.ErrorResponseCodeTimeout,
		},
		{
			name: "unexpected", body: validBody, err: errors.New("secret internals"),
			wantCode: http.StatusInternalServerError, wantErr: gen.ErrorResponseCodeInternalError, wantMsg: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClusterer{err: tt.err}
			h := newTestRouter(t, fc)

			rr := postClusters(t, h, "news", tt.body)
			if rr.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.wantCode, rr.Body.String())
			}
			resp := decodeError(t, rr)
			if resp.Code != tt.wantErr {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(resp.Message, tt.wantMsg) {
				t.Errorf("message = %q, want substring %q", resp.Message, tt.wantMsg)
			}
			if strings.Contains(resp.Message, "10.0.0.1") || strings.Contains(resp.Message, "secret") {
				t.Errorf("message leaks internals: %q", resp.Message)
			}
		})
	}
}

func TestListAlgorithms(t *testing.T) {
	h := newTestRouter(t, &fakeClusterer{})

	req := httptest.NewRequest(http.MethodGet, "/v1/algorithms", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp gen.AlgorithmListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Algorithms) != 1 || resp.Algorithms[0].Id != "terms" {
		t.Errorf("unexpected algorithms: %+v", resp.Algorithms)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		status   healthuc.Status
		wantCode int
	}{
		{healthuc.Healthy, http.StatusOK},
		{healthuc.Degraded, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			health := &fakeHealth{report: healthuc.Report{
				Status: tt.status,
				Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
			}}
			h := NewRouter(NewServer(&fakeClusterer{}, health, zap.NewNop()), []string{"secret"}, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantCode)
			}
			var resp gen.HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Checks["database"] != "ok" {
				t.Errorf("checks = %v", resp.Checks)
			}
		})
	}
}

func TestRouter_NotFoundIsJSON(t *testing.T) {
	h := newTestRouter(t, &fakeClusterer{})

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", rr.Header().Get("Content-Type"))
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Code != gen.ErrorResponseCodeInternalError {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestClusterSearchResults_EndToEnd(t *testing.T) {
	catalog, err := language.NewCatalog(nil)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	registry := algorithm.NewRegistry()
	registry.MustRegister(terms.Factory())

	titles := []string{
		"golang concurrency patterns", "golang channels explained", "golang concurrency in practice",
		"baking sourdough bread", "sourdough starter tips", "sourdough bread at home",
	}
	hits := make([]hit.Hit, len(titles))
	for i, title := range titles {
		hits[i] = hit.New(fmt.Sprintf("doc-%d", i), float64(len(titles)-i), map[string]any{"title": title}, nil, nil)
	}

	svc := clusteringuc.New(&stubSearcher{hits: hits}, registry, catalog, zap.NewNop()).
		WithDefaults("terms", "English")
	h := newTestRouter(t, svc)

	rr := postClusters(t, h, "news", `{
		"field_mapping": {"title": ["fields.title"]},
		"create_ungrouped": true,
		"include_hits": false
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp gen.ClusterResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SearchResponse != nil {
		t.Error("hits must be omitted when include_hits=false")
	}
	if len(resp.Clusters) == 0 {
		t.Fatal("expected clusters")
	}

	seen := make(map[string]bool)
	var walk func([]gen.Cluster)
	walk = func(cs []gen.Cluster) {
		for _, c := range cs {
			if c.Documents != nil {
				for _, d := range *c.Documents {
					seen[d] = true
				}
			}
			if c.Clusters != nil {
				walk(*c.Clusters)
			}
		}
	}
	walk(resp.Clusters)
	for i := range titles {
		if id := fmt.Sprintf("doc-%d", i); !seen[id] {
			t.Errorf("document %s missing from cluster tree with ungrouped bucket", id)
		}
	}
	if resp.Info[clusteringuc.InfoAlgorithm] != "terms" {
		t.Errorf("info = %v", resp.Info)
	}
}

func TestClusterSearchResults_IndexPathBinding(t *testing.T) {
	fc := &fakeClusterer{resp: &clusteringuc.Response{Info: map[string]string{}}}
	h := newTestRouter(t, fc)

	rr := postClusters(t, h, "news%2Fsports", validBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if fc.lastReq.Index() != "news/sports" {
		t.Errorf("index = %q, want unescaped %q", fc.lastReq.Index(), "news/sports")
	}
}

func TestClusterSearchResults_InvalidIndexEscape(t *testing.T) {
	fc := &fakeClusterer{resp: &clusteringuc.Response{Info: map[string]string{}}}
	h := newTestRouter(t, fc)

	req := httptest.NewRequest(http.MethodPost, "/v1/indexes/x/clusters", strings.NewReader(validBody))
	req.URL.RawPath = "/v1/indexes/%zz/clusters"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeError(t, rr); resp.Code != gen.ErrorResponseCodeBadRequest {
		t.Errorf("code = %q", resp.Code)
	}
	if fc.lastReq != nil {
		t.Error("clustering must not run when the index parameter is invalid")
	}
}

func TestClusterSearchResults_EmptyPhrasesIsArray(t *testing.T) {
	fc := &fakeClusterer{resp: &clusteringuc.Response{
		Groups: []cluster.Group{{ID: 1, Documents: []string{"a"}}},
		Info:   map[string]string{},
	}}
	h := newTestRouter(t, fc)

	rr := postClusters(t, h, "news", validBody)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), `"phrases":null`) {
		t.Errorf("phrases must be an array, got %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"phrases":[]`) {
		t.Errorf("expected empty phrases array, got %s", rr.Body.String())
	}
}
