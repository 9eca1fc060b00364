package scrape

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, rawURL, html string) *Context {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	c := &Context{Doc: doc, Sources: make(map[Field]string)}
	if rawURL != "" {
		c.URL, err = url.Parse(rawURL)
		require.NoError(t, err)
	}
	return c
}
