package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	domainerr "hmblog/internal/domain/errors"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Site  SiteConfig  `yaml:"site"`
	Build BuildConfig `yaml:"build"`
	Feeds FeedsConfig `yaml:"feeds"`
}

type SiteConfig struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author"`
	Email       string   `yaml:"email"`
	SiteURL     string   `yaml:"site_url"`
	Description string   `yaml:"description"`
	Language    string   `yaml:"language"`
	SortMode    SortMode `yaml:"sort_mode"`
}

type SortMode string

const (
	SortCreated SortMode = "created"
	SortUpdated SortMode = "updated"
)

type BuildConfig struct {
	SourceDir    string    `yaml:"source_dir"`
	PublicDir    string    `yaml:"public_dir"`
	IndexPath    string    `yaml:"index_path"`
	IncludeDraft bool      `yaml:"include_draft"`
	Now          time.Time `yaml:"-"`
}

type FeedsConfig struct {
	// FullContentTag 指定哪个 tag 的 feed 输出全文（CDATA 正文），
	// 其余 tag feed 只带摘要。
	FullContentTag    string `yaml:"full_content_tag"`
	SearchDocsPath    string `yaml:"search_docs_path"`
	SyndicatedFeedURL string `yaml:"syndicated_feed_url"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "hmblog",
			Language: "en-us",
			SortMode: SortCreated,
		},
		Build: BuildConfig{
			SourceDir: "data/blog",
			PublicDir: "public",
			IndexPath: ".hmblog/index.db",
			Now:       time.Now(),
		},
		Feeds: FeedsConfig{
			FullContentTag: "r",
			SearchDocsPath: "search.json",
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}

	if strings.TrimSpace(c.Site.SiteURL) == "" {
		ve.Add("site.site_url", "must not be empty")
	} else if !isValidAbsURL(c.Site.SiteURL) {
		ve.Add("site.site_url", "must be a valid absolute URL")
	}

	switch c.Site.SortMode {
	case "", SortCreated:
	// default ok
	case SortUpdated:
	default:
		ve.Add("site.sort_mode", "must be 'created' or 'updated'")
	}

	if strings.TrimSpace(c.Build.SourceDir) == "" {
		ve.Add("build.source_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.PublicDir) == "" {
		ve.Add("build.public_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Add("build.index_path", "must not be empty")
	}

	if tag := strings.TrimSpace(c.Feeds.FullContentTag); tag != "" {
		if tag != strings.ToLower(tag) || strings.ContainsAny(tag, " /") {
			ve.Add("feeds.full_content_tag", "must be a lowercase tag slug")
		}
	}
	if u := strings.TrimSpace(c.Feeds.SyndicatedFeedURL); u != "" && !isValidAbsURL(u) {
		ve.Add("feeds.syndicated_feed_url", "must be a valid absolute URL")
	}
	if p := strings.TrimSpace(c.Feeds.SearchDocsPath); strings.HasPrefix(p, "/") {
		ve.Add("feeds.search_docs_path", "must be relative to the public dir")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// 直接 Unmarshal 到 cfg 上：文件中写到的字段覆盖默认值，其他字段保留 Default
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
