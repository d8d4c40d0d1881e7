package manifest

import (
	"encoding/json"
	"fmt"

	"github.com/wuxler/ruasec/pkg/registry/mediatype"
)

// DependencyKind identifies what kind of artifact a [Dependency] points at.
type DependencyKind string

// The two dependency kinds a manifest or index can reference.
const (
	DependencyBlob     DependencyKind = "Blob"
	DependencyManifest DependencyKind = "Manifest"
)

// Dependency is one descriptor extracted from a manifest or index body,
// reduced to what the event fabric needs to express a Ref.
type Dependency struct {
	Kind   DependencyKind
	Digest string
}

// decoder is registered per supported content type, mirroring the
// registry-of-decoders pattern used for the client-facing manifest schemas,
// but closed over exactly the two shapes this registry accepts.
type decoder func(body []byte) ([]Dependency, error)

var decoders = map[mediatype.MediaType]decoder{
	mediatype.OCIImageIndex:         decodeIndex,
	mediatype.DockerManifestList:    decodeIndex,
	mediatype.OCIManifestSchema1:    decodeImage,
	mediatype.DockerManifestSchema1: decodeImage,
	mediatype.DockerManifestSchema2: decodeImage,
}

// ParseDependencies decodes body according to contentType and returns the
// ordered list of artifacts it depends on.
//
// An index's dependencies are its manifest descriptors (DependencyManifest);
// an image manifest's dependencies are its layer descriptors followed by its
// config descriptor (DependencyBlob). An unknown content type or a body that
// fails to decode against the matched shape is reported as an error: the
// caller must treat this as an unrecoverable failure for the request, per
// spec, not attempt a partial store.
func ParseDependencies(contentType string, body []byte) ([]Dependency, error) {
	mt, err := mediatype.Parse(contentType)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	decode, ok := decoders[mt]
	if !ok {
		return nil, fmt.Errorf("manifest: unsupported content type %q", contentType)
	}
	deps, err := decode(body)
	if err != nil {
		return nil, fmt.Errorf("manifest: cannot decode %q: %w", contentType, err)
	}
	return deps, nil
}

func decodeIndex(body []byte) ([]Dependency, error) {
	var idx IndexManifest
	if err := json.Unmarshal(body, &idx); err != nil {
		return nil, err
	}
	deps := make([]Dependency, 0, len(idx.Manifests))
	for _, d := range idx.Manifests {
		deps = append(deps, Dependency{Kind: DependencyManifest, Digest: d.Digest})
	}
	return deps, nil
}

func decodeImage(body []byte) ([]Dependency, error) {
	var m Manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	deps := make([]Dependency, 0, len(m.Layers)+1)
	for _, l := range m.Layers {
		deps = append(deps, Dependency{Kind: DependencyBlob, Digest: l.Digest})
	}
	deps = append(deps, Dependency{Kind: DependencyBlob, Digest: m.Config.Digest})
	return deps, nil
}
