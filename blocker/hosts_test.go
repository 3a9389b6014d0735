package blocker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseHosts = `127.0.0.1 localhost
::1 localhost
# comment line
`

func newHosts(t *testing.T, content string) *Hosts {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hosts")

	err := os.WriteFile(path, []byte(content), 0o644)
	require.NoError(t, err)

	return &Hosts{
		Path:       path,
		RedirectIP: "127.0.0.1",
	}
}

func readHosts(t *testing.T, h *Hosts) string {
	t.Helper()

	b, err := os.ReadFile(h.Path)
	require.NoError(t, err)

	return string(b)
}

func TestBlockAddsBothVariants(t *testing.T) {
	h := newHosts(t, baseHosts)

	added, err := h.Block([]string{"example.com", "https://www.Reddit.com/r/golang"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, added)

	want := baseHosts + `127.0.0.1 example.com
127.0.0.1 www.example.com
127.0.0.1 reddit.com
127.0.0.1 www.reddit.com
`
	assert.Equal(t, want, readHosts(t, h))
}

func TestBlockWhitelistSuppresses(t *testing.T) {
	h := newHosts(t, baseHosts)

	added, err := h.Block([]string{"example.com"}, []string{"example.com"})
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, baseHosts, readHosts(t, h))

	added, err = h.Block([]string{"www.example.com"}, []string{"https://example.com"})
	require.NoError(t, err)
	assert.Zero(t, added, "whitelist comparison must ignore scheme and www")
}

func TestBlockIsIdempotent(t *testing.T) {
	h := newHosts(t, baseHosts)

	added, err := h.Block([]string{"example.com"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	first := readHosts(t, h)

	added, err = h.Block([]string{"example.com", "EXAMPLE.com"}, nil)
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Equal(t, first, readHosts(t, h))
}

func TestBlockWithoutTrailingNewline(t *testing.T) {
	h := newHosts(t, "127.0.0.1 localhost")

	_, err := h.Block([]string{"example.com"}, nil)
	require.NoError(t, err)

	assert.Equal(t, `127.0.0.1 localhost
127.0.0.1 example.com
127.0.0.1 www.example.com
`, readHosts(t, h))
}

func TestUnblockRemovesOnlyRedirects(t *testing.T) {
	h := newHosts(t, baseHosts+`10.0.0.5 example.com
127.0.0.1 example.com
127.0.0.1 www.example.com
127.0.0.1 news.com
`)

	err := h.Unblock([]string{"example.com"})
	require.NoError(t, err)

	assert.Equal(t, baseHosts+`10.0.0.5 example.com
127.0.0.1 news.com
`, readHosts(t, h))
}

func TestBlockThenUnblockRestores(t *testing.T) {
	h := newHosts(t, baseHosts)

	_, err := h.Block([]string{"a.com", "b.com"}, nil)
	require.NoError(t, err)

	require.NoError(t, h.Unblock([]string{"a.com", "b.com"}))
	assert.Equal(t, baseHosts, readHosts(t, h))
}

func TestMissingHostsFile(t *testing.T) {
	h := &Hosts{
		Path:       filepath.Join(t.TempDir(), "missing"),
		RedirectIP: "127.0.0.1",
	}

	_, err := h.Block([]string{"example.com"}, nil)
	assert.ErrorIs(t, err, ErrIO)
}

func TestNormalizeSite(t *testing.T) {
	cases := map[string]string{
		"example.com":                 "example.com",
		" WWW.Example.com ":           "example.com",
		"http://news.ycombinator.com": "news.ycombinator.com",
		"https://youtube.com/watch?v": "youtube.com",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeSite(in), in)
	}
}
