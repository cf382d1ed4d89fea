package clustering

import "github.com/kailas-cloud/clusterdex/internal/domain/document"

// partitionEntry is the documents of one language.
type partitionEntry struct {
	language string
	docs     []*document.Document
}

// partition groups docs by language, falling back to defaultLanguage.
// Languages keep first-seen order; documents keep input order.
func partition(docs []*document.Document, defaultLanguage string) []partitionEntry {
	index := make(map[string]int)
	var parts []partitionEntry

	for _, d := range docs {
		lang := defaultLanguage
		if d.HasLanguage() {
			lang = d.Language()
		}
		i, ok := index[lang]
		if !ok {
			i = len(parts)
			index[lang] = i
			parts = append(parts, partitionEntry{language: lang})
		}
		parts[i].docs = append(parts[i].docs, d)
	}

	return parts
}
