package server

// Options configures a [Server] beyond what spec.md fixes as defaults.
type Options struct {
	// EventBufferSize overrides the per-subscriber event buffer capacity.
	// 0 selects the spec default of 10.
	EventBufferSize int

	// MaxManifestBytes caps how many bytes a manifest PUT body may contain.
	// 0 selects a 4 MiB default. This is an ambient safety limit the
	// distilled spec is silent on; a body over the limit fails the same
	// way any other unreadable/undecodable manifest body does.
	MaxManifestBytes int64

	// MaxUploadChunkBytes caps a single chunk PATCH body. 0 selects a 64
	// MiB default.
	MaxUploadChunkBytes int64
}

const (
	defaultMaxManifestBytes    = 4 << 20  // 4 MiB
	defaultMaxUploadChunkBytes = 64 << 20 // 64 MiB
)

func (o Options) withDefaults() Options {
	if o.MaxManifestBytes <= 0 {
		o.MaxManifestBytes = defaultMaxManifestBytes
	}
	if o.MaxUploadChunkBytes <= 0 {
		o.MaxUploadChunkBytes = defaultMaxUploadChunkBytes
	}
	return o
}
