package feed

import (
	"fmt"
	"sort"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"
	"hmblog/internal/render"
	"hmblog/internal/slug"

	"github.com/rs/zerolog/log"
)

// Generator renders feed documents from the immutable post snapshot.
type Generator struct {
	cfg config.Config
	md  *render.MarkdownRenderer
}

func NewGenerator(cfg config.Config, md *render.MarkdownRenderer) *Generator {
	return &Generator{cfg: cfg, md: md}
}

// SummaryFeed assembles a feed whose items carry only the post summary,
// no body. metas 已经按时间排好序（来自 index），顺序原样保留。
func (g *Generator) SummaryFeed(metas []content.PostMeta, selfPath string) string {
	ch := g.channel(selfPath)
	for _, m := range metas {
		if m.Draft {
			continue
		}
		ch.Items = append(ch.Items, g.item(m, ""))
	}
	return ch.XML()
}

// FullContentFeed filters the posts down to those whose normalized tag
// slugs include tagSlug and renders each body to sanitized, absolutized
// HTML. ok is false when no post matches — the caller skips the output
// file entirely in that case.
func (g *Generator) FullContentFeed(posts []content.Post, tagSlug string) (xml string, ok bool) {
	var matched []content.Post
	slugger := slug.New()
	for _, p := range posts {
		if p.Meta.Draft {
			continue
		}
		// 每篇文章一个独立的去重域
		slugger.Reset()
		for _, t := range p.Meta.Tags {
			if slugger.Slug(t) == tagSlug {
				matched = append(matched, p)
				break
			}
		}
	}
	if len(matched) == 0 {
		return "", false
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Meta.Date.After(matched[j].Meta.Date)
	})

	ch := g.channel("/tags/" + tagSlug + "/feed.xml")
	for _, p := range matched {
		ch.Items = append(ch.Items, g.item(p.Meta, g.renderBody(p)))
	}
	return ch.XML(), true
}

// renderBody degrades per post: a body that fails to convert yields an
// item without content:encoded instead of aborting the feed.
func (g *Generator) renderBody(p content.Post) string {
	cleaned := Sanitize(string(p.Body.Raw))
	htmlBytes, err := g.md.Render([]byte(cleaned))
	if err != nil {
		log.Warn().Err(err).Str("slug", p.Meta.Slug).Msg("markdown render failed, item will have no body")
		return ""
	}
	return Absolutize(string(htmlBytes), g.cfg.Site.SiteURL)
}

func (g *Generator) channel(selfPath string) Channel {
	site := g.cfg.Site
	editor := authorDisplay(site)
	return Channel{
		Title:          site.Title,
		Link:           site.SiteURL + "/blog",
		Description:    site.Description,
		Language:       site.Language,
		ManagingEditor: editor,
		WebMaster:      editor,
		SelfLink:       site.SiteURL + selfPath,
		LastBuild:      g.cfg.Build.Now,
	}
}

func (g *Generator) item(m content.PostMeta, encoded string) Item {
	link := g.cfg.Site.SiteURL + "/blog/" + m.Slug
	return Item{
		GUID:        link,
		Title:       m.Title,
		Link:        link,
		Description: m.Summary,
		PubDate:     m.Date,
		Author:      authorDisplay(g.cfg.Site),
		Categories:  m.Tags,
		Encoded:     encoded,
	}
}

// "editor@example.com (Jane Doe)"，RSS 约定的 email (name) 写法
func authorDisplay(site config.SiteConfig) string {
	return fmt.Sprintf("%s (%s)", site.Email, site.Author)
}
