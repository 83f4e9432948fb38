package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MenuMate/models"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// PageFetcher retrieves one hall's menu page for a date.
type PageFetcher interface {
	Fetch(ctx context.Context, hall models.DiningHall, date string) ([]byte, error)
}

// MenuURL builds <base>/<slug>/?menuDate=<date>.
func MenuURL(baseURL string, hall models.DiningHall, date string) string {
	base := strings.TrimSuffix(baseURL, "/")
	return fmt.Sprintf("%s/%s/?menuDate=%s", base, hall.Slug, url.QueryEscape(date))
}

type HTTPFetcher struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	limiter *rate.Limiter
}

// NewHTTPFetcher paces requests to perSecond (burst 1). A zero rate
// disables pacing.
func NewHTTPFetcher(baseURL string, timeout time.Duration, perSecond float64) *HTTPFetcher {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return &HTTPFetcher{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
		limiter: limiter,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, hall models.DiningHall, date string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &FetchError{Hall: hall.Name, Date: date, Err: err}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, MenuURL(f.baseURL, hall, date), nil)
	if err != nil {
		return nil, &FetchError{Hall: hall.Name, Date: date, Err: err}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Hall: hall.Name, Date: date, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Hall: hall.Name, Date: date, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Hall: hall.Name, Date: date, Err: err}
	}
	return body, nil
}

// ChromeFetcher renders the page in headless Chrome before reading it.
type ChromeFetcher struct {
	baseURL string
	timeout time.Duration
}

func NewChromeFetcher(baseURL string, timeout time.Duration) *ChromeFetcher {
	return &ChromeFetcher{baseURL: baseURL, timeout: timeout}
}

func (f *ChromeFetcher) Fetch(ctx context.Context, hall models.DiningHall, date string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	var pageHTML string
	err := chromedp.Run(ctx,
		chromedp.Navigate(MenuURL(f.baseURL, hall, date)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &pageHTML, chromedp.ByQuery),
	)
	if err != nil {
		return nil, &FetchError{Hall: hall.Name, Date: date, Err: err}
	}
	return []byte(pageHTML), nil
}

// FetchService fetches a page and persists it in the page cache.
type FetchService struct {
	fetcher PageFetcher
	pages   *PageCache
	logger  *zap.Logger
}

func NewFetchService(fetcher PageFetcher, pages *PageCache, logger *zap.Logger) *FetchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FetchService{fetcher: fetcher, pages: pages, logger: logger}
}

// FetchAndSave writes nothing when the fetch fails.
func (s *FetchService) FetchAndSave(ctx context.Context, hall models.DiningHall, date string) ([]byte, error) {
	body, err := s.fetcher.Fetch(ctx, hall, date)
	if err != nil {
		pageFetchTotal.WithLabelValues(hall.Name, "error").Inc()
		return nil, err
	}
	pageFetchTotal.WithLabelValues(hall.Name, "ok").Inc()

	if err := s.pages.Write(date, hall, body); err != nil {
		return nil, err
	}
	s.logger.Debug("page saved",
		zap.String("hall", hall.Name),
		zap.String("date", date),
		zap.String("path", s.pages.PagePath(date, hall)),
	)
	return body, nil
}
