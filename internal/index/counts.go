package index

import (
	"hmblog/internal/domain/content"
	"hmblog/internal/slug"
)

// BuildCounts folds the selected multi-valued field of every non-draft
// post into a canonical-slug -> occurrence-count map. Distinct labels
// that normalize to the same slug merge into one count; labels that
// normalize to nothing (e.g. "---") are dropped, there is no page or
// feed an empty slug could address. The sum of all counts equals the
// number of (post, value) pairs with a usable slug over non-draft posts.
func BuildCounts(posts []content.Post, field func(content.Post) []string) map[string]int {
	counts := make(map[string]int)
	for _, p := range posts {
		if p.Meta.Draft {
			continue
		}
		for _, v := range field(p) {
			s := slug.Slug(v)
			if s == "" {
				continue
			}
			counts[s]++
		}
	}
	return counts
}

func TagCounts(posts []content.Post) map[string]int {
	return BuildCounts(posts, func(p content.Post) []string { return p.Meta.Tags })
}

func AuthorCounts(posts []content.Post) map[string]int {
	return BuildCounts(posts, func(p content.Post) []string { return p.Meta.Authors })
}
