package store

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// BlobStore is the digest-keyed container of finalized blob bytes.
//
// It is backed by [xsync.MapOf] rather than a single sync.RWMutex: blobs and
// uploads are the write-heaviest containers during a push (every chunk PATCH
// touches the upload map; every finalize touches the blob map), and xsync's
// striped locking avoids serializing unrelated blob/upload keys behind one
// lock the way a bare sync.RWMutex would.
type BlobStore struct {
	blobs *xsync.MapOf[string, []byte]
}

// NewBlobStore returns an empty BlobStore.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: xsync.NewMapOf[string, []byte]()}
}

// Put inserts or replaces the bytes stored under digest. No verification
// that digest actually matches the content is performed; see spec note on
// digest verification.
func (s *BlobStore) Put(digest string, content []byte) {
	// store a private copy so the caller can reuse or mutate its buffer
	// after Put returns, and so later reads never alias caller state.
	s.blobs.Store(digest, append([]byte(nil), content...))
}

// Get returns the bytes stored under digest, or false if absent. The
// returned slice is the store's own immutable copy: Put already cloned it
// once on the way in, so handing it out here is an O(1) handle copy rather
// than another allocation, and callers must not mutate it.
func (s *BlobStore) Get(digest string) ([]byte, bool) {
	return s.blobs.Load(digest)
}

// Exists reports whether digest is present.
func (s *BlobStore) Exists(digest string) bool {
	_, ok := s.blobs.Load(digest)
	return ok
}
