package clustering

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterdex/internal/domain/document"
	"github.com/kailas-cloud/clusterdex/internal/domain/fieldspec"
	"github.com/kailas-cloud/clusterdex/internal/domain/hit"
)

// fieldSeparator joins values so phrases never glue across field boundaries.
const fieldSeparator = " . "

// extract assembles the canonical document for h by applying mappings in order.
// URL mappings are resolved but not copied into the document body.
func extract(h *hit.Hit, mappings []fieldspec.Mapping, logger *zap.Logger) document.Document {
	var title, content, lang strings.Builder

	for _, m := range mappings {
		value, ok := extractValue(h, m, logger)
		if !ok {
			continue
		}

		var buf *strings.Builder
		switch m.Logical() {
		case fieldspec.Title:
			buf = &title
		case fieldspec.Content:
			buf = &content
		case fieldspec.Language:
			// single-valued: the last applicable mapping wins
			lang.Reset()
			buf = &lang
		default:
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString(fieldSeparator)
		}
		buf.WriteString(value)
	}

	return document.New(h.ID(), title.String(), content.String(), lang.String())
}

// extractValue reads one mapping's value. ok is false when the hit has nothing for it.
func extractValue(h *hit.Hit, m fieldspec.Mapping, logger *zap.Logger) (string, bool) {
	switch m.Source() {
	case fieldspec.Field:
		return fromField(h, m.Field())
	case fieldspec.Highlight:
		return fromHighlight(h, m.Field())
	case fieldspec.DocSource:
		return fromSource(h, m, logger)
	default:
		return "", false
	}
}

func fromField(h *hit.Hit, name string) (string, bool) {
	v, ok := h.Fields()[name]
	if !ok {
		return "", false
	}
	return stringify(v)
}

func fromHighlight(h *hit.Hit, name string) (string, bool) {
	frags := h.Highlights()[name]
	if len(frags) == 0 {
		return "", false
	}
	return strings.Join(frags, fieldSeparator), true
}

// fromSource descends into the nested source document along the dotted path.
// A missing segment or a non-map intermediate aborts only this mapping.
func fromSource(h *hit.Hit, m fieldspec.Mapping, logger *zap.Logger) (string, bool) {
	path := strings.Split(m.Field(), ".")
	var cur any = h.Source()

	for i, seg := range path {
		obj, isMap := cur.(map[string]any)
		if !isMap {
			logger.Warn("Source path descends into a non-object value",
				zap.String("hit", h.ID()),
				zap.String("spec", m.Spec()),
				zap.String("at", strings.Join(path[:i], ".")),
			)
			return "", false
		}
		next, ok := obj[seg]
		if !ok {
			logger.Warn("Source path not found in hit",
				zap.String("hit", h.ID()),
				zap.String("spec", m.Spec()),
				zap.String("missing", seg),
			)
			return "", false
		}
		cur = next
	}

	return stringify(cur)
}

// stringify renders scalar and list values; lists are joined with fieldSeparator.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case []string:
		return joinNonEmpty(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := stringify(e); ok {
				parts = append(parts, s)
			}
		}
		return joinNonEmpty(parts)
	case map[string]any:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}

func joinNonEmpty(parts []string) (string, bool) {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, fieldSeparator), true
}
