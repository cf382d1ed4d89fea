package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterdex/internal/db"
	"github.com/kailas-cloud/clusterdex/internal/domain"
	"github.com/kailas-cloud/clusterdex/internal/domain/request"
	"github.com/kailas-cloud/clusterdex/internal/logger"
	gen "github.com/kailas-cloud/clusterdex/internal/transport/generated"
	clusteringuc "github.com/kailas-cloud/clusterdex/internal/usecase/clustering"
	healthuc "github.com/kailas-cloud/clusterdex/internal/usecase/health"
)

// maxBodyBytes bounds clustering request bodies.
const maxBodyBytes = 1 << 20

// Clusterer runs clustering requests.
type Clusterer interface {
	Cluster(ctx context.Context, req *request.Request) (*clusteringuc.Response, error)
	Algorithms() []clusteringuc.AlgorithmInfo
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements generated.ServerInterface for the oapi-codegen chi router.
type Server struct {
	gen.Unimplemented
	clustering    Clusterer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(clustering Clusterer, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		clustering: clustering,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		detailHandler(domain.ErrInvalidRequest, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
		detailHandler(domain.ErrInvalidFieldSpec, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
		detailHandler(domain.ErrEmptyFieldMapping, http.StatusBadRequest, gen.ErrorResponseCodeValidationFailed),
		detailHandler(domain.ErrUnknownAlgorithm, http.StatusBadRequest, gen.ErrorResponseCodeUnknownAlgorithm),
		detailHandler(domain.ErrUnsupportedLanguage, http.StatusBadRequest, gen.ErrorResponseCodeUnsupportedLanguage),
		sentinelHandler(db.ErrIndexNotFound, http.StatusNotFound, gen.ErrorResponseCodeIndexNotFound),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, gen.ErrorResponseCodeEmbeddingProviderError),
		sentinelHandler(domain.ErrSearchFailed, http.StatusBadGateway, gen.ErrorResponseCodeSearchFailed),
		detailHandler(domain.ErrClustering, http.StatusInternalServerError, gen.ErrorResponseCodeClusteringFailed),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, gen.ErrorResponseCodeTimeout),
	}
	return s
}

// ClusterSearchResults handles POST /v1/indexes/{index}/clusters.
func (s *Server) ClusterSearchResults(w http.ResponseWriter, r *http.Request, index gen.IndexName) {
	var body gen.ClusterSearchResultsJSONRequestBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := requestFromGen(index, &body)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	resp, err := s.clustering.Cluster(r.Context(), &req)
	if err != nil {
		s.handleDomainError(r.Context(), w, err)
		return
	}

	if tokens, ok := resp.Info[clusteringuc.InfoEmbeddingTokens]; ok {
		w.Header().Set("X-Embedding-Tokens", tokens)
	}
	writeJSON(w, http.StatusOK, responseToGen(resp))
}

// ListAlgorithms handles GET /v1/algorithms.
func (s *Server) ListAlgorithms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, algorithmsToGen(s.clustering.Algorithms()))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]gen.HealthResponseChecks, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = gen.HealthResponseChecks(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: gen.HealthResponseStatus(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler matches a single sentinel and replies with the sentinel's
// own message, hiding the wrapped upstream details.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

// detailHandler matches a single sentinel and replies with the full error
// message. Only for errors whose text is built from request input.
func detailHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, clientMessage(err))
		return true
	}
}

// clientMessage prefers the typed error's own message over wrapping context.
func clientMessage(err error) string {
	var ce *domain.ClusteringError
	if errors.As(err, &ce) {
		return ce.Error()
	}
	var ua *domain.UnknownAlgorithmError
	if errors.As(err, &ua) {
		return ua.Error()
	}
	var ul *domain.UnsupportedLanguageError
	if errors.As(err, &ul) {
		return ul.Error()
	}
	return err.Error()
}

func (s *Server) handleDomainError(ctx context.Context, w http.ResponseWriter, err error) {
	log := logger.FromContextOr(ctx, s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
