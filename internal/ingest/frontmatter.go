package ingest

import (
	"bytes"
	"path"
	"strings"
	"time"

	"hmblog/internal/slug"

	"github.com/adrg/frontmatter"
)

type FrontMatter struct {
	Title   string `yaml:"title"`
	Slug    string `yaml:"slug"`
	Date    string `yaml:"date"`
	LastMod string `yaml:"lastmod"`

	Tags    []string `yaml:"tags"`
	Authors []string `yaml:"authors"`

	Draft   bool   `yaml:"draft"`
	Summary string `yaml:"summary"`
}

// ParseSource splits YAML front matter from the body. A file without
// front matter comes back with a zero FrontMatter and the whole input
// as body.
func ParseSource(raw []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return FrontMatter{}, raw, err
	}
	return fm, bytes.TrimSpace(body), nil
}

// ResolveSlug prefers an explicit front matter slug, then the title,
// then the file name.
func ResolveSlug(fm FrontMatter, rel string) string {
	if s := strings.TrimSpace(fm.Slug); s != "" {
		return slug.Slug(s)
	}
	if t := strings.TrimSpace(fm.Title); t != "" {
		return slug.Slug(t)
	}
	return slug.Slug(path.Base(rel))
}

// ParseTime 全部按 UTC 解析，feed 和 sitemap 里的时间才能一致。
func ParseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		time.RFC3339,
		time.DateOnly,
		"2006-01-02 15:04",
		time.DateTime,
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
