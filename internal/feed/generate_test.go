package feed

import (
	"strings"
	"testing"
	"time"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"
	"hmblog/internal/render"
)

func testGenerator() *Generator {
	cfg := config.Default()
	cfg.Site.Title = "Test Blog"
	cfg.Site.Author = "Jane Doe"
	cfg.Site.Email = "jane@example.com"
	cfg.Site.SiteURL = "https://example.com"
	cfg.Site.Description = "test"
	cfg.Build.Now = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return NewGenerator(cfg, render.NewMarkdownRenderer())
}

func feedPost(slug string, date time.Time, draft bool, tags []string, body string) content.Post {
	return content.Post{
		Meta: content.PostMeta{
			Title:   "Title " + slug,
			Slug:    slug,
			Date:    date,
			Updated: date,
			Tags:    tags,
			Draft:   draft,
			Summary: "summary of " + slug,
			Path:    "blog/" + slug,
		},
		Body: content.BodyRef{Raw: []byte(body)},
	}
}

func TestSummaryFeed(t *testing.T) {
	g := testGenerator()
	metas := []content.PostMeta{
		{Title: "First", Slug: "first", Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), Summary: "s1"},
		{Title: "Second", Slug: "second", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Summary: "s2", Draft: true},
	}
	out := g.SummaryFeed(metas, "/feed.xml")

	if !strings.Contains(out, "<link>https://example.com/blog/first</link>") {
		t.Fatalf("missing item link:\n%s", out)
	}
	if strings.Contains(out, "second") {
		t.Fatalf("draft leaked into feed:\n%s", out)
	}
	if strings.Contains(out, "content:encoded") {
		t.Fatalf("summary feed carries full body:\n%s", out)
	}
	if !strings.Contains(out, "<author>jane@example.com (Jane Doe)</author>") {
		t.Fatalf("author format wrong:\n%s", out)
	}
	if !strings.Contains(out, `href="https://example.com/feed.xml"`) {
		t.Fatalf("self link wrong:\n%s", out)
	}
}

func TestFullContentFeedFiltersByTag(t *testing.T) {
	g := testGenerator()
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	posts := []content.Post{
		feedPost("match-old", base, false, []string{"Data Science"}, "old body"),
		feedPost("match-new", base.AddDate(0, 0, 5), false, []string{"data science"}, "new body"),
		feedPost("other", base.AddDate(0, 0, 3), false, []string{"go"}, "other body"),
		feedPost("hidden", base.AddDate(0, 0, 9), true, []string{"Data Science"}, "draft body"),
	}

	out, ok := g.FullContentFeed(posts, "data-science")
	if !ok {
		t.Fatal("expected a feed, got ok=false")
	}
	if strings.Contains(out, "other body") || strings.Contains(out, "draft body") {
		t.Fatalf("wrong posts in feed:\n%s", out)
	}
	newIdx := strings.Index(out, "match-new")
	oldIdx := strings.Index(out, "match-old")
	if newIdx < 0 || oldIdx < 0 || newIdx > oldIdx {
		t.Fatalf("items not newest-first:\n%s", out)
	}
	if !strings.Contains(out, "<content:encoded><![CDATA[") {
		t.Fatalf("full feed missing encoded body:\n%s", out)
	}
}

func TestFullContentFeedEmptyFilter(t *testing.T) {
	g := testGenerator()
	posts := []content.Post{
		feedPost("a", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), false, []string{"go"}, "body"),
	}
	if _, ok := g.FullContentFeed(posts, "nonexistent"); ok {
		t.Fatal("expected ok=false for an empty filter")
	}
}

func TestFullContentFeedRendersBody(t *testing.T) {
	g := testGenerator()
	body := "import Foo from 'x'\n\n# Heading\n\n<CustomWidget />\n\n![pic](/img/p.png)\n"
	posts := []content.Post{
		feedPost("a", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), false, []string{"r"}, body),
	}
	out, ok := g.FullContentFeed(posts, "r")
	if !ok {
		t.Fatal("ok=false")
	}
	if strings.Contains(out, "import Foo") || strings.Contains(out, "CustomWidget") {
		t.Fatalf("mdx constructs survived into feed html:\n%s", out)
	}
	if !strings.Contains(out, "Heading</h1>") {
		t.Fatalf("markdown not rendered:\n%s", out)
	}
	if !strings.Contains(out, `src="https://example.com/img/p.png"`) {
		t.Fatalf("image url not absolutized:\n%s", out)
	}
}
