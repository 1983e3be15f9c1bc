package index

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"hmblog/internal/domain/config"
	"hmblog/internal/domain/content"

	bolt "go.etcd.io/bbolt"
)

var ErrNotFound = errors.New("not found")

type ListOptions struct {
	Sort         config.SortMode
	Limit        int
	IncludeDraft bool
}

func (s *Store) GetMeta(slug string) (content.PostMeta, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return content.PostMeta{}, ErrNotFound
	}
	var m content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(slug))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &m)
	})
	return m, err
}

const maxListLimit = 1000

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return maxListLimit
	}
	return limit
}

// List returns metas newest first, by created or updated time.
func (s *Store) List(opt ListOptions) ([]content.PostMeta, error) {
	opt.Limit = normalizeLimit(opt.Limit)

	var idxBucketName []byte
	switch opt.Sort {
	case config.SortUpdated:
		idxBucketName = bIdxUpdated
	default:
		idxBucketName = bIdxCreated
	}
	var out []content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(idxBucketName)
		metaB := tx.Bucket(bMeta)
		if idx == nil || metaB == nil {
			return nil
		}
		return collect(idx.Cursor(), metaB, opt, &out)
	})
	return out, err
}

// ListByTag lists posts carrying the tag, newest first. The argument is
// the canonical tag slug, not the display text.
func (s *Store) ListByTag(tagSlug string, opt ListOptions) ([]content.PostMeta, error) {
	return s.listBySub(bIdxTag, tagSlug, opt)
}

// ListByAuthor lists posts whose authors include the given author slug.
func (s *Store) ListByAuthor(authorSlug string, opt ListOptions) ([]content.PostMeta, error) {
	return s.listBySub(bIdxAuthor, authorSlug, opt)
}

// 子桶只按创建时间建键；updated 排序读出后再做，截断放到排序之后，
// 免得先掐掉了按 updated 本该排前面的文章。
func (s *Store) listBySub(parentName []byte, key string, opt ListOptions) ([]content.PostMeta, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	limit := normalizeLimit(opt.Limit)

	gather := opt
	gather.Limit = limit
	if opt.Sort == config.SortUpdated && gather.Limit < maxListLimit {
		gather.Limit = maxListLimit
	}

	var out []content.PostMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		parent := tx.Bucket(parentName)
		metaB := tx.Bucket(bMeta)
		if parent == nil || metaB == nil {
			return nil
		}
		sb := parent.Bucket([]byte(key))
		if sb == nil {
			return nil
		}
		return collect(sb.Cursor(), metaB, gather, &out)
	})
	if err != nil {
		return nil, err
	}

	if opt.Sort == config.SortUpdated {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Updated.After(out[j].Updated)
		})
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out, nil
}

func collect(cur *bolt.Cursor, metaB *bolt.Bucket, opt ListOptions, out *[]content.PostMeta) error {
	for k, _ := cur.First(); k != nil; k, _ = cur.Next() {
		slug := slugFromTimeSlugKey(k)
		if slug == "" {
			continue
		}
		v := metaB.Get([]byte(slug))
		if v == nil {
			continue
		}
		var m content.PostMeta
		if err := json.Unmarshal(v, &m); err != nil {
			continue
		}
		if m.Draft && !opt.IncludeDraft {
			continue
		}
		*out = append(*out, m)
		if len(*out) >= opt.Limit {
			return nil
		}
	}
	return nil
}
