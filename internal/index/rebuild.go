package index

import (
	"encoding/json"
	"strings"

	"hmblog/internal/domain/content"
	"hmblog/internal/slug"

	bolt "go.etcd.io/bbolt"
)

type RebuildOptions struct {
	IncludeDraft bool
}

// Rebuild drops and repopulates every bucket from the post snapshot.
// tag/author 子桶的键是规范化后的 slug，两个不同写法的 tag 归并到同一桶。
func (s *Store) Rebuild(posts []content.Post, opt RebuildOptions) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bMeta)
		_ = tx.DeleteBucket(bIdxTag)
		_ = tx.DeleteBucket(bIdxAuthor)
		_ = tx.DeleteBucket(bIdxUpdated)
		_ = tx.DeleteBucket(bIdxCreated)

		metaB, _ := tx.CreateBucket(bMeta)
		idxTagB, _ := tx.CreateBucket(bIdxTag)
		idxAuthorB, _ := tx.CreateBucket(bIdxAuthor)
		idxUpdatedB, _ := tx.CreateBucket(bIdxUpdated)
		idxCreatedB, _ := tx.CreateBucket(bIdxCreated)

		for _, p := range posts {
			m := p.Meta
			if m.Draft && !opt.IncludeDraft {
				continue
			}
			if strings.TrimSpace(m.Slug) == "" {
				continue
			}
			mb, err := json.Marshal(m)
			if err != nil {
				return err
			}
			if err := metaB.Put([]byte(m.Slug), mb); err != nil {
				return err
			}

			uKey := makeTimeSlugKey(m.Updated.UnixNano(), m.Slug)
			if err := idxUpdatedB.Put(uKey, []byte{1}); err != nil {
				return err
			}

			cKey := makeTimeSlugKey(m.Date.UnixNano(), m.Slug)
			if err := idxCreatedB.Put(cKey, []byte{1}); err != nil {
				return err
			}

			for _, tag := range m.Tags {
				ts := slug.Slug(tag)
				if ts == "" {
					continue
				}
				sb, err := idxTagB.CreateBucketIfNotExists([]byte(ts))
				if err != nil {
					return err
				}
				if err := sb.Put(cKey, []byte{1}); err != nil {
					return err
				}
			}

			for _, author := range m.Authors {
				as := slug.Slug(author)
				if as == "" {
					continue
				}
				sb, err := idxAuthorB.CreateBucketIfNotExists([]byte(as))
				if err != nil {
					return err
				}
				if err := sb.Put(cKey, []byte{1}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Fingerprint returns the stored build fingerprint, "" when absent.
func (s *Store) Fingerprint() (string, error) {
	var fp string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuild)
		if b == nil {
			return nil
		}
		if v := b.Get(kFingerprint); v != nil {
			fp = string(v)
		}
		return nil
	})
	return fp, err
}

func (s *Store) SetFingerprint(fp string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bBuild)
		if err != nil {
			return err
		}
		return b.Put(kFingerprint, []byte(fp))
	})
}
