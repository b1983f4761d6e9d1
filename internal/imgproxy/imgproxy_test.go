package imgproxy

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildURL_EncodesSource(t *testing.T) {
	t.Parallel()

	src := "https://cdn.example.com/img.png?size=big&v=2#frag"
	out := BuildURL(src)
	require.True(t, strings.HasPrefix(out, "https://images.weserv.nl/?"))

	u, err := url.Parse(out)
	require.NoError(t, err)
	q := u.Query()
	require.Equal(t, src, q.Get("url"))
	require.Equal(t, "1200", q.Get("w"))
	require.Equal(t, "630", q.Get("h"))
	require.Equal(t, "cover", q.Get("fit"))
	require.Equal(t, "jpg", q.Get("output"))
}

func TestBuildURL_MetacharactersPercentEncoded(t *testing.T) {
	t.Parallel()

	out := BuildURL("https://x/y.jpg?a=1&b=2")
	// The raw ampersand must not survive inside the url parameter.
	require.NotContains(t, out, "url=https://x/y.jpg?a=1&b=2")
	require.Contains(t, out, "%26")
}

func TestBuildURL_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", BuildURL(""))
}

func TestBuildURL_Deterministic(t *testing.T) {
	t.Parallel()

	src := "https://x/y.jpg"
	require.Equal(t, BuildURL(src), BuildURL(src))
}
