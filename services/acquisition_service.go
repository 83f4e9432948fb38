package services

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"MenuMate/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AcquisitionService turns a date into stored menus: gate, fetch, parse,
// merge, load.
type AcquisitionService struct {
	gate        *CacheGate
	fetch       *FetchService
	pages       *PageCache
	parser      *MenuParser
	store       *MenuStore
	concurrency int
	logger      *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

type AcquisitionOptions struct {
	// Concurrency caps simultaneous hall fetches. Zero means one.
	Concurrency int
	Logger      *zap.Logger
}

func NewAcquisitionService(fetch *FetchService, pages *PageCache, parser *MenuParser, store *MenuStore, opts AcquisitionOptions) *AcquisitionService {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &AcquisitionService{
		gate:        NewCacheGate(pages, store),
		fetch:       fetch,
		pages:       pages,
		parser:      parser,
		store:       store,
		concurrency: opts.Concurrency,
		logger:      opts.Logger,
		locks:       map[string]*sync.Mutex{},
	}
}

func (s *AcquisitionService) dateLock(date string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[date]
	if !ok {
		l = &sync.Mutex{}
		s.locks[date] = l
	}
	return l
}

// GetDiningHallInfo returns the menus for date, acquiring them first when
// the date has never been fetched or force is set. Halls that fail to
// fetch or parse are left out. A cancelled ctx stores nothing.
func (s *AcquisitionService) GetDiningHallInfo(ctx context.Context, date string, force bool) ([]models.DailyMenu, error) {
	lock := s.dateLock(date)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	switch {
	case s.gate.ShouldFetch(date, force):
		s.logger.Info("fetching menus", zap.String("date", date), zap.Bool("force", force))
		menus := s.collect(ctx, date, s.fetchHall)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.store.Merge(date, menus); err != nil {
			return nil, err
		}
		acquisitionDuration.WithLabelValues("network").Observe(time.Since(start).Seconds())

	case !s.store.Has(date):
		// Pages are on disk but were never stored.
		s.logger.Info("rebuilding menus from cached pages", zap.String("date", date))
		menus := s.collect(ctx, date, s.readCachedHall)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.store.Merge(date, menus); err != nil {
			return nil, err
		}
		acquisitionDuration.WithLabelValues("page_cache").Observe(time.Since(start).Seconds())

	default:
		s.logger.Debug("menus up to date", zap.String("date", date))
	}

	return s.store.Load(date)
}

type pageSource func(ctx context.Context, hall models.DiningHall, date string) ([]byte, error)

func (s *AcquisitionService) fetchHall(ctx context.Context, hall models.DiningHall, date string) ([]byte, error) {
	return s.fetch.FetchAndSave(ctx, hall, date)
}

func (s *AcquisitionService) readCachedHall(_ context.Context, hall models.DiningHall, date string) ([]byte, error) {
	return s.pages.Read(date, hall)
}

// collect fetches and parses every hall concurrently and returns the
// successes in natural hall order.
func (s *AcquisitionService) collect(ctx context.Context, date string, source pageSource) []models.DailyMenu {
	halls := models.DiningHalls()
	results := make([]*models.DailyMenu, len(halls))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, hall := range halls {
		g.Go(func() error {
			results[i] = s.acquireHall(ctx, hall, date, source)
			return nil
		})
	}
	_ = g.Wait()

	menus := make([]models.DailyMenu, 0, len(halls))
	for _, m := range results {
		if m != nil {
			menus = append(menus, *m)
		}
	}
	return menus
}

func (s *AcquisitionService) acquireHall(ctx context.Context, hall models.DiningHall, date string, source pageSource) *models.DailyMenu {
	log := s.logger.With(zap.String("hall", hall.Name), zap.String("date", date))

	raw, err := source(ctx, hall, date)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("no cached page")
		} else {
			log.Warn("menu page unavailable", zap.Error(err))
		}
		return nil
	}

	menu, err := s.parser.Parse(raw, date)
	if err != nil {
		menuParseFailures.WithLabelValues(hall.Name).Inc()
		log.Warn("menu page could not be parsed", zap.Error(err))
		return nil
	}
	return menu
}
