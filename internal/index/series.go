package index

import (
	"sort"
	"strings"

	"hmblog/internal/domain/content"
)

// SeriesEntry is one post of a multi-part series, in reading order.
// The current post carries no link.
type SeriesEntry struct {
	Meta    content.PostMeta
	Link    string
	Current bool
}

// RelatedSeries finds the non-draft posts that live under the same
// group prefix (the path minus its last segment) as currentPath and
// orders them by date ascending. Matching is segment-wise, not plain
// substring containment: "go/gen" does not pull in "django/generics".
// A top-level post has an empty group prefix and matches everything.
func RelatedSeries(currentPath string, posts []content.Post) []SeriesEntry {
	prefix := groupPrefix(currentPath)

	var selected []content.PostMeta
	for _, p := range posts {
		if p.Meta.Draft {
			continue
		}
		if !inGroup(p.Meta.Path, prefix) {
			continue
		}
		selected = append(selected, p.Meta)
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if !selected[i].Date.Equal(selected[j].Date) {
			return selected[i].Date.Before(selected[j].Date)
		}
		return selected[i].Path < selected[j].Path
	})

	entries := make([]SeriesEntry, 0, len(selected))
	for _, m := range selected {
		e := SeriesEntry{Meta: m}
		if m.Path == currentPath {
			e.Current = true
		} else {
			e.Link = "/" + m.Path
		}
		entries = append(entries, e)
	}
	return entries
}

func groupPrefix(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	return path[:i]
}

func inGroup(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
