package language

import (
	"fmt"

	"github.com/pemistahl/lingua-go"
)

var linguaLanguages = map[string]lingua.Language{
	English:    lingua.English,
	German:     lingua.German,
	French:     lingua.French,
	Spanish:    lingua.Spanish,
	Italian:    lingua.Italian,
	Portuguese: lingua.Portuguese,
	Dutch:      lingua.Dutch,
	Polish:     lingua.Polish,
	Swedish:    lingua.Swedish,
}

// Detector guesses the language of a text among the catalog's languages.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector builds a detector over every language in the catalog.
// lingua needs at least two candidate languages.
func NewDetector(c *Catalog) (*Detector, error) {
	langs := make([]lingua.Language, 0, len(c.order))
	for _, name := range c.order {
		l, ok := linguaLanguages[name]
		if !ok {
			return nil, fmt.Errorf("no detection model for language %q", name)
		}
		langs = append(langs, l)
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detection needs at least 2 languages, got %d", len(langs))
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		WithMinimumRelativeDistance(0.1).
		Build()
	return &Detector{detector: d}, nil
}

// Detect returns the catalog code for text, or "" when detection is not confident.
func (d *Detector) Detect(text string) string {
	if text == "" {
		return ""
	}
	l, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return l.String()
}
