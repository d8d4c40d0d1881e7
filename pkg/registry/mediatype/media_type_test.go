package mediatype_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruasec/pkg/registry/mediatype"
)

func TestParseKnown(t *testing.T) {
	mt, err := mediatype.Parse("application/vnd.oci.image.manifest.v1+json")
	require.NoError(t, err)
	assert.Equal(t, mediatype.OCIManifestSchema1, mt)
}

func TestParseUnknown(t *testing.T) {
	_, err := mediatype.Parse("application/x-not-a-real-type")
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, mediatype.DockerManifestSchema2.IsImage())
	assert.True(t, mediatype.DockerManifestSchema1.IsImage())
	assert.False(t, mediatype.OCIImageIndex.IsImage())
}

func TestIsIndex(t *testing.T) {
	assert.True(t, mediatype.OCIImageIndex.IsIndex())
	assert.True(t, mediatype.DockerManifestList.IsIndex())
	assert.False(t, mediatype.DockerManifestSchema2.IsIndex())
}

func TestIsDistributable(t *testing.T) {
	assert.True(t, mediatype.OCIRestrictedLayer.IsDistributable())
	assert.True(t, mediatype.OCIUncompressedRestrictedLayer.IsDistributable())
	assert.True(t, mediatype.DockerForeignLayer.IsDistributable())
	assert.False(t, mediatype.OCILayer.IsDistributable())
}
