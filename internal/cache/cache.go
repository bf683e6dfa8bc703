// Package cache is a content-addressed store for converted TEI documents.
//
// Keys are BLAKE3 hashes over the raw PAGE input plus a fingerprint of the
// edition metadata, so a cached document is reused only when both the
// source bytes and every header field are identical. Cache failures are
// never fatal: a miss, a corrupt entry, or an unwritable directory all
// degrade to reconversion.
package cache

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/PageTEI/core/metadata"
	"github.com/FocuswithJustin/PageTEI/internal/logging"
)

// Store is a directory-backed conversion cache.
type Store struct {
	root string
}

// Open creates (if needed) and opens a cache directory.
func Open(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Key derives the cache key for one conversion: BLAKE3 over the input
// bytes followed by the metadata fingerprint.
func Key(input []byte, meta metadata.Metadata) string {
	h := blake3.New()
	h.Write(input)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint(meta)))
	return hex.EncodeToString(h.Sum(nil))
}

// HashInput returns the BLAKE3 hash of the raw input alone, recorded in
// the run journal.
func HashInput(input []byte) string {
	sum := blake3.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached document for key, or ok=false on any miss.
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Put stores a converted document under key. Failures are logged and
// swallowed; the conversion result is already in hand.
func (s *Store) Put(key string, data []byte) {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logging.Warn("cache write skipped", "key", key, "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		logging.Warn("cache write skipped", "key", key, "error", err)
	}
}

// path shards entries by the first two hex digits, like a blob store.
func (s *Store) path(key string) string {
	return filepath.Join(s.root, key[:2], key+".tei.xml")
}

// fingerprint flattens the metadata fields that shape the output document
// into a stable string.
func fingerprint(m metadata.Metadata) string {
	return fmt.Sprintf("%q", []string{
		m.Title, m.Author, m.EditionEditor, m.Translator, m.Resp, m.RespName,
		m.Publisher, m.PubDate, m.Country, m.Region, m.Settlement, m.District,
		m.GeogName, m.Institution, m.Repository, m.Collection, m.IdnoOld,
		m.IdnoNew, m.IdnoSiglum, m.OrigPlace, m.OrigNotBefore, m.OrigNotAfter,
		m.OrigLabel, m.PageN, m.PageSide, m.EditionType, m.Language,
	})
}
