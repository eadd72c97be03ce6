package banks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"banks-etl/lib/frame"
	"banks-etl/lib/htmlutil"
	"banks-etl/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	ErrTableNotFound    = errors.New("no table body found")
	ErrUnexpectedRow    = errors.New("unexpected table row")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrColumns          = errors.New("expected a name column and a market cap column")
)

const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ExtractorOptions struct {
	Timeout          time.Duration
	UserAgent        string
	CloudflareBypass bool
	// if set, every request/response pair is written to it while debug
	// logging is enabled
	Output restyutil.InstrumentOutput
}

type Extractor struct {
	http *resty.Client
}

func NewExtractor(opts ExtractorOptions) *Extractor {
	client := resty.New()
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &Extractor{http: client}
}

// Extract fetches `url` and parses its first table body into a frame with
// `columns`. There are no retries.
func (e *Extractor) Extract(ctx context.Context, url string, columns []string) (*frame.Frame, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := e.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, fmt.Errorf("fetch %s: %w: %s", url, ErrUnexpectedStatus, res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	f, err := ParseTable(ctx, doc, columns)
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse table")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", f.Len()))
	return f, nil
}

// ParseTable reads every data row of the first table body in `doc`. The
// second cell holds the bank name and the third its market cap in billions
// of USD.
func ParseTable(ctx context.Context, doc *goquery.Document, columns []string) (*frame.Frame, error) {
	if len(columns) != 2 {
		return nil, fmt.Errorf("%w, got %v", ErrColumns, columns)
	}
	f, err := frame.New(columns...)
	if err != nil {
		return nil, err
	}

	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, ErrTableNotFound
	}

	var rowErr error
	tbody.ChildrenFiltered("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return true
		}
		if cells.Length() < 3 {
			rowErr = fmt.Errorf("%w: row %d has %d cells", ErrUnexpectedRow, i, cells.Length())
			return false
		}

		name := parseName(ctx, cells.Eq(1))
		if name == "" {
			rowErr = fmt.Errorf("%w: row %d has no bank name", ErrUnexpectedRow, i)
			return false
		}
		marketCap, err := parseMarketCap(cells.Eq(2))
		if err != nil {
			rowErr = fmt.Errorf("%w: row %d (%s): %w", ErrUnexpectedRow, i, name, err)
			return false
		}

		rowErr = f.Append(name, marketCap)
		return rowErr == nil
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return f, nil
}

// the name cell starts with a flag icon link, the bank's own link follows it.
func parseName(ctx context.Context, cell *goquery.Selection) string {
	anchors := htmlutil.GetAnchors(ctx, cell.Find("a"))
	if len(anchors) >= 2 && anchors[1].Name != "" {
		return anchors[1].Name
	}
	for i := len(anchors) - 1; i >= 0; i-- {
		if anchors[i].Name != "" {
			return anchors[i].Name
		}
	}
	return htmlutil.SelectionText(cell)
}

// only the cell's first child is read so trailing footnote markers are
// ignored.
func parseMarketCap(cell *goquery.Selection) (float64, error) {
	if len(cell.Nodes) == 0 || cell.Nodes[0].FirstChild == nil {
		return 0, fmt.Errorf("empty market cap cell")
	}
	text := htmlutil.GetText(cell.Nodes[0].FirstChild)
	text = strings.ReplaceAll(text, "\n", "")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", "")
	return strconv.ParseFloat(text, 64)
}
