package build

import (
	"fmt"
	"html"
	"strings"

	"hmblog/internal/domain/site"
)

func sitemapXML(baseURL string, routes []site.Route) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, r := range routes {
		b.WriteString("  <url>\n")
		b.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", html.EscapeString(base+r.Loc)))
		if !r.LastMod.IsZero() {
			b.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", r.LastMod.UTC().Format("2006-01-02")))
		}
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}
