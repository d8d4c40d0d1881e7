package store

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// UploadStore is the upload-id-keyed container of in-progress chunked
// uploads.
type UploadStore struct {
	uploads *xsync.MapOf[string, []byte]
}

// NewUploadStore returns an empty UploadStore.
func NewUploadStore() *UploadStore {
	return &UploadStore{uploads: xsync.NewMapOf[string, []byte]()}
}

// AppendResult is the outcome of [UploadStore.Append].
type AppendResult int

// The two outcomes [UploadStore.Append] can report.
const (
	// Accepted means the chunk was appended (or the upload created).
	Accepted AppendResult = iota
	// RangeNotSatisfiable means start did not match the current length; no
	// mutation occurred.
	RangeNotSatisfiable
)

// Create inserts the first chunk of a new upload.
func (s *UploadStore) Create(id string, content []byte) {
	s.uploads.Store(id, append([]byte(nil), content...))
}

// Append appends content to the upload identified by id iff start equals the
// upload's current length (or, for an upload that doesn't exist yet, iff
// start is 0, in which case the upload is created). Any other start leaves
// the upload unchanged and returns RangeNotSatisfiable.
func (s *UploadStore) Append(id string, start int, content []byte) AppendResult {
	result := Accepted
	s.uploads.Compute(id, func(existing []byte, loaded bool) ([]byte, bool) {
		if !loaded {
			if start != 0 {
				result = RangeNotSatisfiable
				return nil, true // delete is a no-op: nothing was loaded
			}
			return append([]byte(nil), content...), false
		}
		if start != len(existing) {
			result = RangeNotSatisfiable
			return existing, false
		}
		merged := make([]byte, 0, len(existing)+len(content))
		merged = append(merged, existing...)
		merged = append(merged, content...)
		return merged, false
	})
	return result
}

// Take atomically reads and removes the upload buffer for id.
func (s *UploadStore) Take(id string) ([]byte, bool) {
	return s.uploads.LoadAndDelete(id)
}

// Len returns the current length of the upload for id, or (0, false) if
// absent.
func (s *UploadStore) Len(id string) (int, bool) {
	b, ok := s.uploads.Load(id)
	if !ok {
		return 0, false
	}
	return len(b), true
}
