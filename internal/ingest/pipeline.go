package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"runtime"
	"strings"
	"sync"

	"hmblog/internal/domain/content"
)

type Warning struct {
	Path string
	Msg  string
}

type Result struct {
	Post  content.Post
	Warns []Warning
	Skip  bool
	Err   error
}

// Ingest walks the source tree and parses every post in parallel.
// Per-file problems become warnings, not errors; only I/O failures on
// the tree itself abort the run.
func Ingest(sourceDir string) ([]content.Post, []Warning, error) {
	files, err := DiscoverSource(sourceDir)
	if err != nil {
		return nil, nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan Result)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				results <- parseOne(sf)
			}
		}()
	}

	go func() {
		for _, f := range files {
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// 出错也要把 results 读完，不然 worker 和投喂 goroutine 会卡死
	var out []content.Post
	var warns []Warning
	var firstErr error
	for r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		if len(r.Warns) > 0 {
			warns = append(warns, r.Warns...)
		}
		if r.Skip {
			continue
		}
		out = append(out, r.Post)
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}

	// slug 在非草稿集合里必须唯一，冲突的后来者丢掉
	seen := make(map[string]struct{}, len(out))
	filtered := make([]content.Post, 0, len(out))
	for _, p := range out {
		if _, ok := seen[p.Meta.Slug]; ok {
			warns = append(warns, Warning{
				Path: p.Body.SourcePath,
				Msg:  "duplicate slug, skipped: " + p.Meta.Slug,
			})
			continue
		}
		seen[p.Meta.Slug] = struct{}{}
		filtered = append(filtered, p)
	}
	return filtered, warns, nil
}

func parseOne(sf SourceFile) Result {
	st, statErr := os.Stat(sf.Path)
	if statErr != nil {
		return Result{Err: statErr}
	}
	raw, readErr := os.ReadFile(sf.Path)
	if readErr != nil {
		return Result{Err: readErr}
	}

	var warns []Warning

	fm, body, fmErr := ParseSource(raw)
	if fmErr != nil {
		warns = append(warns, Warning{
			Path: sf.Path,
			Msg:  "failed to parse front matter: " + fmErr.Error(),
		})
		return Result{Warns: warns, Skip: true}
	}

	slug := ResolveSlug(fm, sf.Rel)
	if slug == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "empty slug"})
		return Result{Warns: warns, Skip: true}
	}

	meta := content.PostMeta{
		Title:   fm.Title,
		Slug:    slug,
		Tags:    fm.Tags,
		Authors: fm.Authors,
		Draft:   fm.Draft,
		Summary: fm.Summary,
		Path:    sf.Rel,
	}
	meta.Date = ParseTime(fm.Date)
	meta.Updated = ParseTime(fm.LastMod)
	if meta.Date.IsZero() {
		meta.Date = st.ModTime().UTC()
		warns = append(warns, Warning{
			Path: sf.Path,
			Msg:  "using file modification time for date",
		})
	}
	if meta.Updated.IsZero() {
		meta.Updated = meta.Date
	}
	if strings.TrimSpace(meta.Title) == "" {
		warns = append(warns, Warning{Path: sf.Path, Msg: "title is empty"})
	}
	meta.Normalize()

	return Result{
		Post: content.Post{
			Meta: meta,
			Body: content.BodyRef{
				SourcePath:  sf.Path,
				ContentHash: HashBytes(raw),
				Raw:         body,
			},
		},
		Warns: warns,
	}
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
