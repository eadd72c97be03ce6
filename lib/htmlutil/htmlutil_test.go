package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  JPMorgan Chase\n", expected: "JPMorgan Chase"},
		{in: "Bank of\n\tAmerica", expected: "Bank of America"},
		{in: "Industrial and   Commercial Bank", expected: "Industrial and Commercial Bank"},
		{in: "432.92\n", expected: "432.92"},
		{in: "", expected: ""},
		{in: "Mitsubishi\u200bUFJ", expected: "MitsubishiUFJ"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.in), test.in)
	}
}

func TestGetAnchors(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<td>
			<span class="flagicon"><a href="/wiki/United_States" title="United States"><img src="flag.png"></a></span>
			<a href="/wiki/JPMorgan_Chase" title="JPMorgan Chase">JPMorgan
			Chase</a>
		</td>`))
	require.NoError(t, err)

	anchors := GetAnchors(context.Background(), doc.Find("a"))
	diff := cmp.Diff([]Anchor{
		{Name: "", Href: "/wiki/United_States"},
		{Name: "JPMorgan Chase", Href: "/wiki/JPMorgan_Chase"},
	}, anchors)
	require.Empty(t, diff)
}

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<p>Hello <b>bank</b>s</p><p> again</p>`))
	require.NoError(t, err)
	require.Equal(t, "Hello banks again", SelectionText(doc.Find("p")))
}
