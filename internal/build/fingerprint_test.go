package build

import (
	"testing"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"
)

func fpPost(src, hash string) content.Post {
	return content.Post{
		Body: content.BodyRef{SourcePath: src, ContentHash: hash},
	}
}

func TestFingerprintStableAcrossIngestOrder(t *testing.T) {
	cfg := config.Default()
	a := fingerprint([]content.Post{fpPost("a.md", "h1"), fpPost("b.md", "h2")}, cfg)
	b := fingerprint([]content.Post{fpPost("b.md", "h2"), fpPost("a.md", "h1")}, cfg)
	if a != b {
		t.Fatalf("order changed the fingerprint: %s vs %s", a, b)
	}
}

func TestFingerprintTracksContentAndConfig(t *testing.T) {
	cfg := config.Default()
	base := fingerprint([]content.Post{fpPost("a.md", "h1")}, cfg)

	if got := fingerprint([]content.Post{fpPost("a.md", "changed")}, cfg); got == base {
		t.Fatal("content change did not change the fingerprint")
	}

	cfg.Site.Title = "renamed"
	if got := fingerprint([]content.Post{fpPost("a.md", "h1")}, cfg); got == base {
		t.Fatal("config change did not change the fingerprint")
	}
}

func TestFingerprintFoldsBothHashes(t *testing.T) {
	fp := Fingerprint{ContentHash: "c", ConfigHash: "k"}
	fp.ComputeRenderHash()
	onlyContent := Fingerprint{ContentHash: "c"}
	onlyContent.ComputeRenderHash()
	if fp.RenderHash == onlyContent.RenderHash {
		t.Fatal("config hash not folded into the render hash")
	}
}
