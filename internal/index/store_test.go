package index

import (
	"path/filepath"
	"testing"
	"time"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "index.db")})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func storePost(slug string, date time.Time, draft bool, tags, authors []string) content.Post {
	return content.Post{
		Meta: content.PostMeta{
			Title:   "Title " + slug,
			Slug:    slug,
			Date:    date,
			Updated: date,
			Tags:    tags,
			Authors: authors,
			Draft:   draft,
			Path:    "blog/" + slug,
		},
	}
}

func TestRebuildAndList(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := []content.Post{
		storePost("old", base, false, []string{"R"}, []string{"Jane Doe"}),
		storePost("new", base.AddDate(0, 0, 2), false, []string{"Go"}, nil),
		storePost("hidden", base.AddDate(0, 0, 1), true, []string{"R"}, nil),
	}
	if err := st.Rebuild(posts, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	metas, err := st.List(ListOptions{Sort: config.SortCreated})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("got %d metas, want 2 (draft excluded)", len(metas))
	}
	if metas[0].Slug != "new" || metas[1].Slug != "old" {
		t.Fatalf("wrong order: %s, %s", metas[0].Slug, metas[1].Slug)
	}
}

func TestListByTagUsesNormalizedSlug(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	posts := []content.Post{
		storePost("a", base, false, []string{"Data Science"}, nil),
		storePost("b", base.AddDate(0, 0, 1), false, []string{"data science"}, nil),
	}
	if err := st.Rebuild(posts, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	metas, err := st.ListByTag("data-science", ListOptions{})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("got %d metas, want 2", len(metas))
	}
}

func TestListByTagHonorsUpdatedSort(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := storePost("older", base, false, []string{"Go"}, nil)
	// 创建更早，但改动最新
	older.Meta.Updated = base.AddDate(0, 0, 10)
	newer := storePost("newer", base.AddDate(0, 0, 2), false, []string{"Go"}, nil)

	if err := st.Rebuild([]content.Post{older, newer}, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	metas, err := st.ListByTag("go", ListOptions{Sort: config.SortUpdated})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(metas) != 2 || metas[0].Slug != "older" || metas[1].Slug != "newer" {
		t.Fatalf("updated sort ignored: %+v", metas)
	}

	// Limit 截断要在排序之后
	metas, err = st.ListByTag("go", ListOptions{Sort: config.SortUpdated, Limit: 1})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(metas) != 1 || metas[0].Slug != "older" {
		t.Fatalf("limit applied before updated sort: %+v", metas)
	}
}

func TestListByAuthor(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	posts := []content.Post{
		storePost("a", base, false, nil, []string{"Jane Doe"}),
		storePost("b", base.AddDate(0, 0, 1), false, nil, []string{"John Roe"}),
	}
	if err := st.Rebuild(posts, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	metas, err := st.ListByAuthor("jane-doe", ListOptions{})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(metas) != 1 || metas[0].Slug != "a" {
		t.Fatalf("unexpected result: %+v", metas)
	}
}

func TestGetMeta(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := st.Rebuild([]content.Post{
		storePost("a", base, false, []string{"R"}, nil),
	}, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	m, err := st.GetMeta("a")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if m.Title != "Title a" {
		t.Fatalf("title = %q", m.Title)
	}
	if _, err := st.GetMeta("nope"); err != ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFingerprintRoundtrip(t *testing.T) {
	st := openTestStore(t)

	fp, err := st.Fingerprint()
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if fp != "" {
		t.Fatalf("fresh store fingerprint = %q, want empty", fp)
	}
	if err := st.SetFingerprint("abc123"); err != nil {
		t.Fatalf("set fingerprint: %v", err)
	}
	fp, err = st.Fingerprint()
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	if fp != "abc123" {
		t.Fatalf("fingerprint = %q, want abc123", fp)
	}
}

func TestRebuildReplacesPreviousSnapshot(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := st.Rebuild([]content.Post{
		storePost("gone", base, false, []string{"R"}, nil),
	}, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if err := st.Rebuild([]content.Post{
		storePost("kept", base, false, nil, nil),
	}, RebuildOptions{}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if _, err := st.GetMeta("gone"); err != ErrNotFound {
		t.Fatalf("stale meta survived rebuild: %v", err)
	}
	if metas, _ := st.ListByTag("r", ListOptions{}); len(metas) != 0 {
		t.Fatalf("stale tag index survived rebuild: %+v", metas)
	}
}
