package digest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wuxler/ruasec/pkg/registry/digest"
)

func TestParse(t *testing.T) {
	d, err := digest.Parse("sha256:abcdef")
	require.NoError(t, err)
	assert.Equal(t, "sha256", d.Algorithm())
	assert.Equal(t, "abcdef", d.Hex())
	assert.Equal(t, "sha256:abcdef", d.String())
}

func TestParseUnknownAlgorithmAccepted(t *testing.T) {
	d, err := digest.Parse("md5:0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "md5", d.Algorithm())
}

func TestParseMalformed(t *testing.T) {
	for _, s := range []string{"", "noseparator", "sha256:", ":hex"} {
		_, err := digest.Parse(s)
		assert.Error(t, err, s)
	}
}

func TestFromBytesRoundTrip(t *testing.T) {
	d := digest.FromBytes([]byte("hello"))
	assert.Equal(t, "sha256", d.Algorithm())
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", d.Hex())

	reparsed, err := digest.Parse(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, reparsed)
}

func TestEqualityByBothFields(t *testing.T) {
	a := digest.New("sha256", "abc")
	b := digest.New("sha256", "abc")
	c := digest.New("sha512", "abc")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
