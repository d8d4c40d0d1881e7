// Package store implements the registry's three concurrent keyed
// containers — blobs, in-progress uploads, and manifests — each guarded
// independently so the write-mostly push path never serializes on an
// unrelated container's lock.
package store

// Store bundles the three artifact containers a registry request handler
// needs. Blobs, Uploads, and Manifests are independent maps with no lock
// shared across them, so handlers are free to touch more than one in any
// order (the blob-finalize path in package server takes Uploads then
// Blobs).
type Store struct {
	Blobs     *BlobStore
	Uploads   *UploadStore
	Manifests *ManifestStore
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		Blobs:     NewBlobStore(),
		Uploads:   NewUploadStore(),
		Manifests: NewManifestStore(),
	}
}
