package build

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"

	"gopkg.in/yaml.v3"
)

type Fingerprint struct {
	ContentHash string
	ConfigHash  string
	RenderHash  string
}

func (f *Fingerprint) ComputeRenderHash() {
	h := sha256.New()
	h.Write([]byte(f.ContentHash))
	h.Write([]byte(f.ConfigHash))
	f.RenderHash = hex.EncodeToString(h.Sum(nil))
}

// fingerprint hashes the post snapshot and the config separately and
// folds both; an unchanged value means every output would be
// byte-identical and the run can be skipped.
func fingerprint(posts []content.Post, cfg config.Config) string {
	// ingest 的并发顺序不稳定，按源路径排序再算
	pairs := make([]string, 0, len(posts))
	for _, p := range posts {
		pairs = append(pairs, p.Body.SourcePath+"\x00"+p.Body.ContentHash)
	}
	sort.Strings(pairs)

	h := sha256.New()
	for _, pair := range pairs {
		h.Write([]byte(pair))
		h.Write([]byte{0})
	}

	fp := Fingerprint{ContentHash: hex.EncodeToString(h.Sum(nil))}

	// Build.Now 带 yaml:"-"，不会进 hash
	if cfgBytes, err := yaml.Marshal(cfg); err == nil {
		sum := sha256.Sum256(cfgBytes)
		fp.ConfigHash = hex.EncodeToString(sum[:])
	}

	fp.ComputeRenderHash()
	return fp.RenderHash
}
