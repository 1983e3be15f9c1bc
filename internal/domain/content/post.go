package content

import (
	"strings"
	"time"
)

// Post is one authored article, immutable for the duration of a run.
type Post struct {
	Meta PostMeta
	Body BodyRef
}

type PostMeta struct {
	Title   string
	Slug    string
	Date    time.Time
	Updated time.Time

	Tags    []string
	Authors []string

	Draft   bool
	Summary string

	// Path 是文章在内容树里的位置（相对 source 根目录，去掉扩展名），
	// 比如 "blog/nested-route/part-1"。多篇文章共享同一个父目录时构成系列。
	Path string
}

type BodyRef struct {
	SourcePath  string
	ContentHash string

	// Raw 是去掉 front matter 之后的正文
	Raw []byte
}

func (m *PostMeta) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Slug = strings.TrimSpace(m.Slug)
	m.Summary = strings.TrimSpace(m.Summary)
	m.Path = strings.Trim(strings.TrimSpace(m.Path), "/")

	m.Tags = dedupeStrings(m.Tags)
	m.Authors = dedupeStrings(m.Authors)
}

// GroupPrefix returns the path minus its last slash-delimited segment.
// A single-segment path yields "".
func (m PostMeta) GroupPrefix() string {
	i := strings.LastIndex(m.Path, "/")
	if i < 0 {
		return ""
	}
	return m.Path[:i]
}

// 保留原始大小写：tag/author 的展示文本直接来自 front matter，
// 规范化成 slug 是 index 层的事。
func dedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
