package clustering

import (
	"strconv"
	"strings"
	"time"
)

// Info keys attached to every clustering response.
const (
	InfoAlgorithm        = "algorithm"
	InfoSearchMillis     = "search-millis"
	InfoClusteringMillis = "clustering-millis"
	InfoTotalMillis      = "total-millis"
	InfoMaxHits          = "max-hits"
	InfoIncludeHits      = "include-hits"
	InfoLanguages        = "languages"
	InfoEmbeddingTokens  = "embedding-tokens"
)

type infoInput struct {
	algorithm   string
	search      time.Duration
	clustering  time.Duration
	total       time.Duration
	maxHits     int // 0 = unbounded
	includeHits bool
	languages   []string
	tokens      int
	usedTokens  bool
}

// buildInfo renders diagnostic metadata. Informational only.
func buildInfo(in infoInput) map[string]string {
	info := map[string]string{
		InfoAlgorithm:        in.algorithm,
		InfoSearchMillis:     strconv.FormatInt(in.search.Milliseconds(), 10),
		InfoClusteringMillis: strconv.FormatInt(in.clustering.Milliseconds(), 10),
		InfoTotalMillis:      strconv.FormatInt(in.total.Milliseconds(), 10),
		InfoMaxHits:          "",
		InfoIncludeHits:      strconv.FormatBool(in.includeHits),
		InfoLanguages:        strings.Join(in.languages, ","),
	}
	if in.maxHits > 0 {
		info[InfoMaxHits] = strconv.Itoa(in.maxHits)
	}
	if in.usedTokens {
		info[InfoEmbeddingTokens] = strconv.Itoa(in.tokens)
	}
	return info
}
