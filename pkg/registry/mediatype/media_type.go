// Package mediatype implements the closed enumeration of OCI and Docker
// content media types recognized by the in-memory registry, along with the
// IsImage, IsIndex and IsDistributable predicates over it.
package mediatype

import "fmt"

// MediaType is a closed variant over the 17 OCI/Docker media types this
// registry understands. The zero value is not a valid MediaType.
type MediaType string

// The full enumeration. Unknown strings fail [Parse].
const (
	OCIContentDescriptor           MediaType = "application/vnd.oci.descriptor.v1+json"
	OCIImageIndex                  MediaType = "application/vnd.oci.image.index.v1+json"
	OCIManifestSchema1             MediaType = "application/vnd.oci.image.manifest.v1+json"
	OCIConfigJSON                  MediaType = "application/vnd.oci.image.config.v1+json"
	OCILayer                       MediaType = "application/vnd.oci.image.layer.v1.tar+gzip"
	OCIRestrictedLayer             MediaType = "application/vnd.oci.image.layer.nondistributable.v1.tar+gzip"
	OCIUncompressedLayer           MediaType = "application/vnd.oci.image.layer.v1.tar"
	OCIUncompressedRestrictedLayer MediaType = "application/vnd.oci.image.layer.nondistributable.v1.tar"
	DockerManifestSchema1          MediaType = "application/vnd.docker.distribution.manifest.v1+json"
	DockerManifestSchema1Signed    MediaType = "application/vnd.docker.distribution.manifest.v1+prettyjws"
	DockerManifestSchema2          MediaType = "application/vnd.docker.distribution.manifest.v2+json"
	DockerManifestList             MediaType = "application/vnd.docker.distribution.manifest.list.v2+json"
	DockerLayer                    MediaType = "application/vnd.docker.image.rootfs.diff.tar.gzip"
	DockerConfigJSON               MediaType = "application/vnd.docker.container.image.v1+json"
	DockerPluginConfig             MediaType = "application/vnd.docker.plugin.v1+json"
	DockerForeignLayer             MediaType = "application/vnd.docker.image.rootfs.foreign.diff.tar.gzip"
	DockerUncompressedLayer        MediaType = "application/vnd.docker.image.rootfs.diff.tar"
)

var known = map[MediaType]struct{}{
	OCIContentDescriptor:           {},
	OCIImageIndex:                  {},
	OCIManifestSchema1:             {},
	OCIConfigJSON:                  {},
	OCILayer:                       {},
	OCIRestrictedLayer:             {},
	OCIUncompressedLayer:           {},
	OCIUncompressedRestrictedLayer: {},
	DockerManifestSchema1:          {},
	DockerManifestSchema1Signed:    {},
	DockerManifestSchema2:          {},
	DockerManifestList:             {},
	DockerLayer:                    {},
	DockerConfigJSON:               {},
	DockerPluginConfig:             {},
	DockerForeignLayer:             {},
	DockerUncompressedLayer:        {},
}

// Parse validates s against the closed enumeration.
func Parse(s string) (MediaType, error) {
	mt := MediaType(s)
	if _, ok := known[mt]; !ok {
		return "", fmt.Errorf("mediatype: unknown media type %q", s)
	}
	return mt, nil
}

// IsImage reports whether mt is a single-image manifest media type.
func (mt MediaType) IsImage() bool {
	switch mt {
	case DockerManifestSchema1, DockerManifestSchema2:
		return true
	default:
		return false
	}
}

// IsIndex reports whether mt is a multi-platform manifest-list/index media type.
func (mt MediaType) IsIndex() bool {
	switch mt {
	case OCIImageIndex, DockerManifestList:
		return true
	default:
		return false
	}
}

// IsDistributable reports whether mt is one of the three
// non-distributable/foreign layer types (OCI restricted layers, the
// uncompressed variant, and the Docker foreign layer). The name mirrors the
// predicate the original implementation exposes: it flags membership in the
// non-distributable set rather than the inverse, so callers test
// mt.IsDistributable() to recognize a restricted layer before deciding
// whether to mirror it.
func (mt MediaType) IsDistributable() bool {
	switch mt {
	case OCIRestrictedLayer, OCIUncompressedRestrictedLayer, DockerForeignLayer:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (mt MediaType) String() string {
	return string(mt)
}
