package vplan

import (
	"context"
	"leonardo-backend/lib/scrapers/vplan/vplantest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePage(t *testing.T) {
	markup := vplantest.Page{
		Token: "window.location='subst_002.htm'",
		Day:   "Montag 02.09.2024",
		Info:  "Die 6. Stunde entfällt.",
		Rows: [][]string{
			{"10A", "1", "Mathe", "R101", "Mü", "Vertretung", "&nbsp;"},
			{"&nbsp;", "&nbsp;", "Physik", "R102", "Sch", "Entfall", "Mathe &amp; Physik"},
		},
	}.Render()

	page, err := ParsePage(context.Background(), markup)
	require.NoError(t, err)
	require.Equal(t, "window.location='subst_002.htm'", page.Token)
	require.Equal(t, "Montag 02.09.2024", page.Day)
	require.True(t, page.HasInfo)
	require.Equal(t, "Die 6. Stunde entfällt.", page.Info)
	require.Equal(t, [][]string{
		{"10A", "1", "Mathe", "R101", "Mü", "Vertretung", "&nbsp;"},
		{"&nbsp;", "&nbsp;", "Physik", "R102", "Sch", "Entfall", "Mathe &amp; Physik"},
	}, page.Rows)
}

func TestParsePageKeepsQuotes(t *testing.T) {
	page, err := ParsePage(context.Background(), vplantest.Page{
		Token: "next()",
		Day:   `Montag "A" 02.09.2024`,
		Info:  `<b>Bitte "pünktlich"</b> sein, it's early`,
		Rows: [][]string{
			{"10A", "1", "Mathe", "R101", "Mü", "Vertretung", `geht's "heute"`},
		},
	}.Render())
	require.NoError(t, err)
	require.Equal(t, `Montag "A" 02.09.2024`, page.Day)
	require.Equal(t, `<b>Bitte "pünktlich"</b> sein, it's early`, page.Info)
	require.Equal(t, `geht's "heute"`, page.Rows[0][6])
}

func TestParsePageWithoutInfo(t *testing.T) {
	page, err := ParsePage(context.Background(), vplantest.Page{
		Token: "next()",
		Day:   "Dienstag 03.09.2024",
	}.Render())
	require.NoError(t, err)
	require.False(t, page.HasInfo)
	require.Empty(t, page.Info)
	require.Empty(t, page.Rows)
}

func TestParsePageStructuralErrors(t *testing.T) {
	testCases := []struct {
		name    string
		markup  string
		element string
	}{
		{
			name:    "missing navigation",
			markup:  vplantest.Page{Day: "Montag 02.09.2024", OmitNavigation: true}.Render(),
			element: "navigation bar",
		},
		{
			name:    "missing onclick",
			markup:  `<html><body><a class="nav-right-button">next</a><h1>Montag 02.09.2024</h1></body></html>`,
			element: "onclick attribute",
		},
		{
			name:    "missing day",
			markup:  vplantest.Page{Token: "next()"}.Render(),
			element: "day element",
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParsePage(context.Background(), test.markup)
			var structural *StructuralExtractionError
			require.ErrorAs(t, err, &structural)
			require.Equal(t, test.element, structural.Element)
		})
	}
}
