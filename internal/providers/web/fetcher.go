package web

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/logger"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultMaxBodySize    = 10 * 1024 * 1024
)

// ErrEmptyResponse is returned when a fetch finished without a response
var ErrEmptyResponse = errors.New("empty response")

// Config controls the collector behavior
type Config struct {
	UserAgent      string
	RequestTimeout time.Duration
	MaxBodySize    int
}

// Page is the fetched form of a single URL
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	// Markdown is nil when the body is not HTML or converts to nothing
	Markdown *string
}

// Fetcher renders pages into links and markdown
//
//go:generate mockgen -source=fetcher.go -destination=../../mocks/web_fetcher.go -package=mocks -mock_names=Fetcher=MockWebFetcher
type Fetcher interface {
	// ListLinks returns the absolute outbound links of a page in document order
	ListLinks(ctx context.Context, url string) ([]string, error)

	// Scrape fetches a page and converts its HTML body to markdown
	Scrape(ctx context.Context, url string) (*Page, error)
}

type collyFetcher struct {
	cfg       Config
	base      *colly.Collector
	converter *converter.Converter
}

// NewFetcher creates a colly backed fetcher
func NewFetcher(cfg Config) Fetcher {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = defaultMaxBodySize
	}

	options := []colly.CollectorOption{
		colly.Async(false),
		colly.AllowURLRevisit(),
		colly.MaxBodySize(cfg.MaxBodySize),
	}
	if cfg.UserAgent != "" {
		options = append(options, colly.UserAgent(cfg.UserAgent))
	}

	return &collyFetcher{
		cfg:  cfg,
		base: colly.NewCollector(options...),
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (f *collyFetcher) collector() *colly.Collector {
	c := f.base.Clone()
	c.SetRequestTimeout(f.cfg.RequestTimeout)
	return c
}

// visit runs a blocking collector visit and honours ctx cancellation
func (f *collyFetcher) visit(ctx context.Context, c *colly.Collector, url string, fetchErr *error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("fetch canceled: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Visit(url)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to visit %s: %w", url, err)
		}
		if *fetchErr != nil {
			return fmt.Errorf("failed to fetch %s: %w", url, *fetchErr)
		}
		return nil
	}
}

func (f *collyFetcher) ListLinks(ctx context.Context, url string) ([]string, error) {
	c := f.collector()

	var (
		links    []string
		fetchErr error
	)
	c.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link != "" {
			links = append(links, link)
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
	})

	if err := f.visit(ctx, c, url, &fetchErr); err != nil {
		return nil, err
	}

	logger.DebugCtx(ctx, "Listed links", zap.String("url", url), zap.Int("count", len(links)))
	return links, nil
}

func (f *collyFetcher) Scrape(ctx context.Context, url string) (*Page, error) {
	c := f.collector()

	var (
		page     *Page
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		page = &Page{
			URL:         r.Request.URL.String(),
			StatusCode:  r.StatusCode,
			ContentType: r.Headers.Get("Content-Type"),
		}

		mtype := mimetype.Detect(r.Body)
		if !isHTML(mtype) {
			logger.DebugCtx(ctx, "Skipping markdown for non-HTML body",
				zap.String("url", url),
				zap.String("mimeType", mtype.String()))
			return
		}

		markdown, err := f.converter.ConvertString(string(r.Body), converter.WithDomain(page.URL))
		if err != nil {
			logger.WarnCtx(ctx, "Failed to convert HTML to markdown", zap.String("url", url), zap.Error(err))
			return
		}
		if markdown = strings.TrimSpace(markdown); markdown != "" {
			page.Markdown = &markdown
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = err
		if r != nil && r.StatusCode != 0 {
			fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
	})

	if err := f.visit(ctx, c, url, &fetchErr); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, ErrEmptyResponse)
	}
	return page, nil
}

func isHTML(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/html") || m.Is("application/xhtml+xml") {
			return true
		}
	}
	return false
}
