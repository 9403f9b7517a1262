package vplan

import (
	"context"
	"fmt"
	"leonardo-backend/lib/restyutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// PagePlaceholder is replaced by the decimal page index.
	PagePlaceholder = "{page}"
	// PaddedPagePlaceholder is replaced by the page index padded to 3 digits,
	// the usual file naming of exported substitution plans (subst_001.htm).
	PaddedPagePlaceholder = "{page3}"
)

const defaultTimeout = time.Second * 30

// DefaultMaxPages bounds a single build when nothing else is configured,
// a site that never repeats its navigation token would otherwise be
// followed forever.
const DefaultMaxPages = 50

type ClientOptions struct {
	// PageUrl is the url of a page with one of the page placeholders in it.
	PageUrl  string
	Username string
	Password string
	// defaults to 30 seconds
	Timeout time.Duration
}

// Client retrieves pages of the timetable, it does not hold any state
// besides the credentials and can be used for a single build only or shared.
type Client struct {
	http    *resty.Client
	pageUrl string
}

func NewClient(opts ClientOptions) (*Client, error) {
	if !strings.Contains(opts.PageUrl, PagePlaceholder) &&
		!strings.Contains(opts.PageUrl, PaddedPagePlaceholder) {
		return nil, fmt.Errorf(
			"page url '%s' must contain %s or %s",
			opts.PageUrl, PagePlaceholder, PaddedPagePlaceholder,
		)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New()
	client.SetBasicAuth(opts.Username, opts.Password)
	client.SetTimeout(timeout)
	client.SetHeader("user-agent", "leonardo-backend (+timetable snapshot)")
	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:    client,
		pageUrl: opts.PageUrl,
	}, nil
}

// PageUrl resolves the url of the page with the given 1-based index.
func (c *Client) PageUrl(page int) string {
	link := strings.ReplaceAll(c.pageUrl, PaddedPagePlaceholder, fmt.Sprintf("%03d", page))
	return strings.ReplaceAll(link, PagePlaceholder, strconv.Itoa(page))
}

// FetchPage performs one authenticated request for the page and returns its
// body, it never retries.
func (c *Client) FetchPage(ctx context.Context, page int) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchPage")
	defer span.End()

	if page < 1 {
		err := fmt.Errorf("page index must be >= 1, got %d", page)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	link := c.PageUrl(page)
	span.SetAttributes(
		attribute.Int("page", page),
		attribute.String("url", link),
	)

	res, err := c.http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", &TransportError{Page: page, Err: err}
	}
	if res.StatusCode() < http.StatusOK || res.StatusCode() >= http.StatusMultipleChoices {
		err := &TransportError{Page: page, Status: res.StatusCode()}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	pagesFetched.Add(ctx, 1)
	return res.String(), nil
}
