package build

import (
	"time"

	"hmblog/internal/domain/content"
)

// SearchDoc is the minimal post record the client-side command palette
// loads: enough to match and link, never the body.
type SearchDoc struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Path    string   `json:"path"`
	Date    string   `json:"date"`
	LastMod string   `json:"lastmod,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Summary string   `json:"summary,omitempty"`
}

func searchDocs(posts []content.Post) []SearchDoc {
	docs := make([]SearchDoc, 0, len(posts))
	for _, p := range posts {
		m := p.Meta
		if m.Draft {
			continue
		}
		doc := SearchDoc{
			Title:   m.Title,
			Slug:    m.Slug,
			Path:    m.Path,
			Date:    m.Date.UTC().Format(time.RFC3339),
			Tags:    m.Tags,
			Authors: m.Authors,
			Summary: m.Summary,
		}
		if !m.Updated.Equal(m.Date) {
			doc.LastMod = m.Updated.UTC().Format(time.RFC3339)
		}
		docs = append(docs, doc)
	}
	return docs
}
