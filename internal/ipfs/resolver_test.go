package ipfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRawCid(t *testing.T) {
	r := NewResolver([]string{"ipfs.io"})

	url, err := r.Resolve("QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG")
	require.NoError(t, err)
	assert.Equal(t, "https://ipfs.io/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", url)
}

func TestResolveStripsSchemes(t *testing.T) {
	r := NewResolver([]string{"ipfs.io"})

	for _, cid := range []string{
		"ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
		"/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG",
	} {
		url, err := r.Resolve(cid)
		require.NoError(t, err)
		assert.Equal(t, "https://ipfs.io/ipfs/QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", url)
	}
}

func TestResolvePassesThroughHttpUrls(t *testing.T) {
	r := NewResolver([]string{"ipfs.io"})

	url, err := r.Resolve("https://example.com/image.png")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/image.png", url)
}

func TestResolveRotatesGateways(t *testing.T) {
	r := NewResolver([]string{"ipfs.io", "cloudflare-ipfs.com"})

	first, err := r.Resolve("Qm1")
	require.NoError(t, err)
	second, err := r.Resolve("Qm1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestResolveErrors(t *testing.T) {
	_, err := NewResolver([]string{"ipfs.io"}).Resolve("  ")
	assert.Error(t, err)

	_, err = NewResolver(nil).Resolve("Qm1")
	assert.Error(t, err)
}
