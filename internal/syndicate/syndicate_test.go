package syndicate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleFeed = `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>External Blog</title>
    <link>https://external.example.com</link>
    <item>
      <title><![CDATA[First & Foremost]]></title>
      <link>https://external.example.com/first</link>
    </item>
    <item>
      <title>Plain Title</title>
      <link>https://external.example.com/second</link>
    </item>
    <item>
      <title>No Link Here</title>
    </item>
  </channel>
</rss>`

func TestParseItems(t *testing.T) {
	items := ParseItems(sampleFeed)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2: %+v", len(items), items)
	}
	if items[0].Title != "First & Foremost" || items[0].Link != "https://external.example.com/first" {
		t.Fatalf("first item: %+v", items[0])
	}
	if items[1].Title != "Plain Title" {
		t.Fatalf("second item: %+v", items[1])
	}
}

func TestParseItemsEmptyInput(t *testing.T) {
	if items := ParseItems(""); len(items) != 0 {
		t.Fatalf("got %+v", items)
	}
	if items := ParseItems("<html>not a feed</html>"); len(items) != 0 {
		t.Fatalf("got %+v", items)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("user agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	items, err := NewClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	items, err := NewClient().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	if len(items) != 0 {
		t.Fatalf("got items with an error: %+v", items)
	}
}
