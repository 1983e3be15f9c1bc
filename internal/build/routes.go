package build

import (
	"sort"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/site"
	"hmblog/internal/index"
)

// siteRoutes enumerates every address the sitemap should carry:
// section roots, posts, tag pages, author pages.
func siteRoutes(cfg config.Config, st *index.Store, tagCounts, authorCounts map[string]int) ([]site.Route, error) {
	routes := []site.Route{
		{Kind: site.RouteHome, Loc: "/"},
		{Kind: site.RouteBlog, Loc: "/blog"},
		{Kind: site.RouteTags, Loc: "/tags"},
		{Kind: site.RouteAuthors, Loc: "/authors"},
	}

	metas, err := st.List(index.ListOptions{Sort: cfg.Site.SortMode})
	if err != nil {
		return nil, err
	}
	for _, m := range metas {
		routes = append(routes, site.Route{
			Kind:    site.RoutePost,
			Slug:    m.Slug,
			Loc:     "/blog/" + m.Slug,
			LastMod: m.Updated,
		})
	}

	for _, tag := range sortedKeys(tagCounts) {
		routes = append(routes, site.Route{
			Kind: site.RouteTag,
			Slug: tag,
			Loc:  "/tags/" + tag,
		})
	}

	for _, author := range sortedKeys(authorCounts) {
		r := site.Route{
			Kind: site.RouteAuthor,
			Slug: author,
			Loc:  "/authors/" + author,
		}
		// 作者页的 lastmod 取该作者最新一篇
		if latest, err := st.ListByAuthor(author, index.ListOptions{Sort: cfg.Site.SortMode, Limit: 1}); err == nil && len(latest) > 0 {
			r.LastMod = latest[0].Updated
		}
		routes = append(routes, r)
	}

	return routes, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
