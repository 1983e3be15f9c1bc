package build

import (
	"hmblog/internal/domain/content"
	"hmblog/internal/index"
)

// SeriesRef is one installment of a series, in reading order. The
// current post is marked instead of linked.
type SeriesRef struct {
	Title   string `json:"title"`
	Path    string `json:"path"`
	Link    string `json:"link,omitempty"`
	Current bool   `json:"current,omitempty"`
}

// seriesData maps each non-draft post slug to its series installments.
// 顶层文章没有分组目录，不算系列；只有一篇的组也不算。
func seriesData(posts []content.Post) map[string][]SeriesRef {
	out := make(map[string][]SeriesRef)
	for _, p := range posts {
		m := p.Meta
		if m.Draft || m.GroupPrefix() == "" {
			continue
		}
		entries := index.RelatedSeries(m.Path, posts)
		if len(entries) < 2 {
			continue
		}
		refs := make([]SeriesRef, 0, len(entries))
		for _, e := range entries {
			refs = append(refs, SeriesRef{
				Title:   e.Meta.Title,
				Path:    e.Meta.Path,
				Link:    e.Link,
				Current: e.Current,
			})
		}
		out[m.Slug] = refs
	}
	return out
}
