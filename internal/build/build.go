package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"
	"hmblog/internal/feed"
	"hmblog/internal/index"
	"hmblog/internal/ingest"
	"hmblog/internal/render"
	"hmblog/internal/syndicate"

	"github.com/rs/zerolog/log"
)

// Builder runs the whole pipeline: ingest the source tree, rebuild the
// index, then produce every static output. The output targets are
// independent — each reads the same immutable post snapshot and writes
// its own file, so they run concurrently and one failing never stops
// a sibling.
type Builder struct {
	Cfg       config.Config
	IndexPath string

	// Force skips the fingerprint short-circuit, e.g. after the public
	// dir was wiped.
	Force bool
}

type Result struct {
	Posts    int
	Warnings []ingest.Warning
	Skipped  bool
}

func (b *Builder) Run(ctx context.Context) (*Result, error) {
	posts, warns, err := ingest.Ingest(b.Cfg.Build.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("ingest failed: %w", err)
	}
	for _, w := range warns {
		log.Warn().Str("path", w.Path).Msg(w.Msg)
	}
	log.Info().Int("posts", len(posts)).Msg("ingested content")

	st, err := index.Open(index.OpenOptions{Path: b.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	defer st.Close()

	fp := fingerprint(posts, b.Cfg)
	if !b.Force {
		if prev, err := st.Fingerprint(); err == nil && prev != "" && prev == fp {
			log.Info().Msg("content unchanged, skipping build")
			return &Result{Posts: len(posts), Warnings: warns, Skipped: true}, nil
		}
	}

	if err := st.Rebuild(posts, index.RebuildOptions{
		IncludeDraft: b.Cfg.Build.IncludeDraft,
	}); err != nil {
		return nil, fmt.Errorf("failed to rebuild index: %w", err)
	}

	outDir := b.Cfg.Build.PublicDir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir public: %w", err)
	}

	gen := feed.NewGenerator(b.Cfg, render.NewMarkdownRenderer())
	tagCounts := index.TagCounts(posts)
	authorCounts := index.AuthorCounts(posts)

	targets := []struct {
		name string
		run  func(context.Context) error
	}{
		{"feeds", func(context.Context) error {
			return b.writeSummaryFeeds(st, gen, tagCounts, outDir)
		}},
		{"full-content-feed", func(context.Context) error {
			return b.writeFullContentFeed(gen, posts, outDir)
		}},
		{"sitemap", func(context.Context) error {
			return b.writeSitemap(st, tagCounts, authorCounts, outDir)
		}},
		{"search-index", func(context.Context) error {
			return b.writeSearchDocs(posts, outDir)
		}},
		{"counts", func(context.Context) error {
			return b.writeCounts(tagCounts, authorCounts, outDir)
		}},
		{"series", func(context.Context) error {
			return b.writeSeriesData(posts, outDir)
		}},
		{"syndicated", func(tctx context.Context) error {
			return b.writeSyndicated(tctx, outDir)
		}},
	}

	// 不用 errgroup：一个目标挂了不应该连累别的目标
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []error
	)
	for _, t := range targets {
		wg.Add(1)
		go func(name string, run func(context.Context) error) {
			defer wg.Done()
			if err := run(ctx); err != nil {
				log.Error().Err(err).Str("target", name).Msg("output target failed")
				mu.Lock()
				failed = append(failed, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
		}(t.name, t.run)
	}
	wg.Wait()

	res := &Result{Posts: len(posts), Warnings: warns}
	if len(failed) > 0 {
		// 指纹不落盘，下一次 run 重做全部输出
		return res, errors.Join(failed...)
	}
	if err := st.SetFingerprint(fp); err != nil {
		log.Warn().Err(err).Msg("failed to store build fingerprint")
	}
	log.Info().Msg("build complete")
	return res, nil
}

// writeSummaryFeeds emits the site-wide feed plus one summary feed per
// tag. The configured full-content tag is owned by its own target and
// skipped here.
func (b *Builder) writeSummaryFeeds(st *index.Store, gen *feed.Generator, tagCounts map[string]int, outDir string) error {
	metas, err := st.List(index.ListOptions{Sort: b.Cfg.Site.SortMode})
	if err != nil {
		return err
	}
	if err := writeFile(outDir, "feed.xml", []byte(gen.SummaryFeed(metas, "/feed.xml"))); err != nil {
		return err
	}

	for _, tag := range sortedKeys(tagCounts) {
		if tag == "" || tag == b.Cfg.Feeds.FullContentTag {
			continue
		}
		tagMetas, err := st.ListByTag(tag, index.ListOptions{Sort: b.Cfg.Site.SortMode})
		if err != nil {
			return err
		}
		if len(tagMetas) == 0 {
			continue
		}
		selfPath := "/tags/" + tag + "/feed.xml"
		out := filepath.Join("tags", tag, "feed.xml")
		if err := writeFile(outDir, out, []byte(gen.SummaryFeed(tagMetas, selfPath))); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) writeFullContentFeed(gen *feed.Generator, posts []content.Post, outDir string) error {
	tag := b.Cfg.Feeds.FullContentTag
	if tag == "" {
		return nil
	}
	xml, ok := gen.FullContentFeed(posts, tag)
	if !ok {
		// 没有匹配文章不是错误：不写文件
		log.Info().Str("tag", tag).Msg("no matching posts, skipping full-content feed")
		return nil
	}
	return writeFile(outDir, filepath.Join("tags", tag, "feed.xml"), []byte(xml))
}

func (b *Builder) writeSitemap(st *index.Store, tagCounts, authorCounts map[string]int, outDir string) error {
	routes, err := siteRoutes(b.Cfg, st, tagCounts, authorCounts)
	if err != nil {
		return err
	}
	return writeFile(outDir, "sitemap.xml", []byte(sitemapXML(b.Cfg.Site.SiteURL, routes)))
}

func (b *Builder) writeSearchDocs(posts []content.Post, outDir string) error {
	path := b.Cfg.Feeds.SearchDocsPath
	if path == "" {
		return nil
	}
	data, err := json.Marshal(searchDocs(posts))
	if err != nil {
		return err
	}
	return writeFile(outDir, filepath.FromSlash(path), data)
}

func (b *Builder) writeCounts(tagCounts, authorCounts map[string]int, outDir string) error {
	tagData, err := json.Marshal(tagCounts)
	if err != nil {
		return err
	}
	if err := writeFile(outDir, "tag-data.json", tagData); err != nil {
		return err
	}
	authorData, err := json.Marshal(authorCounts)
	if err != nil {
		return err
	}
	return writeFile(outDir, "author-data.json", authorData)
}

func (b *Builder) writeSeriesData(posts []content.Post, outDir string) error {
	data, err := json.Marshal(seriesData(posts))
	if err != nil {
		return err
	}
	return writeFile(outDir, "series-data.json", data)
}

// writeSyndicated snapshots the external feed for the sidebar. Best
// effort: any fetch problem degrades to an empty item list.
func (b *Builder) writeSyndicated(ctx context.Context, outDir string) error {
	feedURL := b.Cfg.Feeds.SyndicatedFeedURL
	if feedURL == "" {
		return nil
	}
	items, err := syndicate.NewClient().Fetch(ctx, feedURL)
	if err != nil {
		log.Warn().Err(err).Str("url", feedURL).Msg("syndicated feed unavailable, writing empty snapshot")
		items = nil
	}
	if items == nil {
		items = []syndicate.Item{}
	}
	data, err := json.Marshal(map[string][]syndicate.Item{"items": items})
	if err != nil {
		return err
	}
	return writeFile(outDir, "syndicated.json", data)
}

func writeFile(root, rel string, data []byte) error {
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}
