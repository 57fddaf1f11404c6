// Package store loads resource content by canonical identity. It talks to
// the filesystem through afs, so file://, mem:// and http(s):// references
// all work the same way; mem:// keeps the resolver tests hermetic.
package store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"graft/internal/source"
)

// DefaultExt is appended to references written without an extension.
const DefaultExt = ".gs"

// Store canonicalizes references and fetches their bytes.
type Store struct {
	fs  afs.Service
	ext string
}

// New returns a store over the default afs service.
func New() *Store {
	return &Store{fs: afs.New(), ext: DefaultExt}
}

// Canonical derives the identity of a reference as seen from the resource
// that contains it. Canonicalization is what makes deduplication work: every
// spelling of the same target must collapse to one identity.
//
// Правила: пустая ссылка остаётся пустой; абсолютные URL нормализуются как
// есть; относительные - против каталога владельца.
func (s *Store) Canonical(owner source.ResourceID, ref string) source.ResourceID {
	r := strings.TrimSpace(ref)
	if r == "" {
		return ""
	}
	if path.Ext(r) == "" {
		r += s.ext
	}
	if strings.Contains(r, "://") {
		return source.ResourceID(url.Normalize(r, file.Scheme))
	}
	parent, _ := url.Split(string(owner), file.Scheme)
	return source.ResourceID(url.Normalize(url.Join(parent, r), file.Scheme))
}

// CanonicalRoot derives the identity of the merge entry point from a raw
// command-line argument.
func (s *Store) CanonicalRoot(arg string) source.ResourceID {
	return source.ResourceID(url.Normalize(arg, file.Scheme))
}

// Load fetches the raw bytes of a resource.
func (s *Store) Load(ctx context.Context, id source.ResourceID) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return data, nil
}

// Upload writes resource content. Mostly useful for mem:// fixtures.
func (s *Store) Upload(ctx context.Context, id source.ResourceID, data []byte) error {
	return s.fs.Upload(ctx, string(id), 0644, bytes.NewReader(data))
}

// Exists reports whether a resource is present without fetching it.
func (s *Store) Exists(ctx context.Context, id source.ResourceID) bool {
	ok, err := s.fs.Exists(ctx, string(id))
	return err == nil && ok
}
