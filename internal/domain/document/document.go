package document

// Document is the canonical, algorithm-ready form of one search hit.
// Created once per hit during extraction and never mutated afterwards.
type Document struct {
	id       string
	title    string
	content  string
	language string
}

// New creates a document. An empty language means "use the request default".
func New(id, title, content, language string) Document {
	return Document{id: id, title: title, content: content, language: language}
}

// ID returns the stable reference back to the originating hit.
func (d *Document) ID() string { return d.id }

// Title returns the mapped title text.
func (d *Document) Title() string { return d.title }

// Content returns the mapped content text.
func (d *Document) Content() string { return d.content }

// Language returns the mapped language code, empty if none was mapped.
func (d *Document) Language() string { return d.language }

// HasLanguage reports whether a language was mapped or detected.
func (d *Document) HasLanguage() bool { return d.language != "" }

// Text returns title and content joined for tokenization.
func (d *Document) Text() string {
	switch {
	case d.title == "":
		return d.content
	case d.content == "":
		return d.title
	default:
		return d.title + " . " + d.content
	}
}

// WithLanguage returns a copy with the language set.
func (d Document) WithLanguage(language string) Document {
	d.language = language
	return d
}
