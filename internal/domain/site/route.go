package site

import (
	"strings"
	"time"
)

type RouteKind string

const (
	RouteHome    RouteKind = "home"
	RouteBlog    RouteKind = "blog"
	RoutePost    RouteKind = "post"
	RouteTags    RouteKind = "tags"
	RouteTag     RouteKind = "tag"
	RouteAuthors RouteKind = "authors"
	RouteAuthor  RouteKind = "author"
)

// Route 描述站点里一个可被 sitemap 收录的地址。
type Route struct {
	Kind    RouteKind
	Slug    string
	Loc     string // 相对站点根的路径，以 "/" 开头
	LastMod time.Time
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Slug != "" {
		parts = append(parts, "slug="+r.Slug)
	}
	if r.Loc != "" {
		parts = append(parts, "loc="+r.Loc)
	}
	return strings.Join(parts, " ")
}
