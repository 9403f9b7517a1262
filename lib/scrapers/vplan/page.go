package vplan

import (
	"context"
	"leonardo-backend/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Page is everything read from one page of the timetable.
type Page struct {
	// Token is the onclick target of the page's "next" button, the
	// pagination is finished once a token comes up a second time.
	Token string
	Day   string
	// Info is the announcement block of the page, only meaningful when
	// HasInfo is set.
	Info    string
	HasInfo bool
	// Rows holds the rendered cells of every table body row in column order,
	// placeholder cells are not resolved yet.
	Rows [][]string
}

const (
	navigationSelector = ".nav-right-button"
	daySelector        = "h1"
	infoSelector       = ".callout"
	rowSelector        = "tbody tr"
	cellSelector       = "td"
)

func renderElement(sel *goquery.Selection) (string, error) {
	inner, err := htmlutil.InnerHtml(sel)
	if err != nil {
		return "", err
	}
	return htmlutil.TrimNewlines(inner), nil
}

// ParsePage extracts a Page from the markup of one timetable page.
func ParsePage(ctx context.Context, markup string) (Page, error) {
	ctx, span := tracer.Start(ctx, "ParsePage")
	defer span.End()

	fail := func(err error) (Page, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Page{}, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return fail(err)
	}

	nav := doc.Find(navigationSelector).First()
	if nav.Length() == 0 {
		return fail(&StructuralExtractionError{Element: "navigation bar"})
	}
	token, ok := nav.Attr("onclick")
	if !ok {
		return fail(&StructuralExtractionError{Element: "onclick attribute"})
	}

	heading := doc.Find(daySelector).First()
	if heading.Length() == 0 {
		return fail(&StructuralExtractionError{Element: "day element"})
	}
	day, err := renderElement(heading)
	if err != nil {
		return fail(err)
	}

	page := Page{
		Token: token,
		Day:   day,
	}

	callout := doc.Find(infoSelector).First()
	if callout.Length() > 0 {
		page.Info, err = renderElement(callout)
		if err != nil {
			return fail(err)
		}
		page.HasInfo = true
	}

	var renderErr error
	doc.Find(rowSelector).EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		var cells []string
		tr.ChildrenFiltered(cellSelector).EachWithBreak(func(_ int, td *goquery.Selection) bool {
			cell, err := renderElement(td)
			if err != nil {
				renderErr = err
				return false
			}
			cells = append(cells, cell)
			return true
		})
		page.Rows = append(page.Rows, cells)
		return renderErr == nil
	})
	if renderErr != nil {
		return fail(renderErr)
	}

	span.SetAttributes(
		attribute.String("day", page.Day),
		attribute.String("token", page.Token),
		attribute.Int("rows", len(page.Rows)),
		attribute.Bool("has_info", page.HasInfo),
	)
	return page, nil
}
