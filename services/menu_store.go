package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"MenuMate/models"

	"github.com/patrickmn/go-cache"
)

const storeFileName = "dining_hall_info.json"

// MenuStore persists parsed menus in one JSON document keyed by date.
//
// Merges are serialized within the process and the file is replaced with
// a rename, but nothing coordinates separate processes: running more than
// one acquisition worker against the same output root needs a file lock.
// Dates are never pruned.
type MenuStore struct {
	path string
	mu   sync.Mutex
	memo *cache.Cache
}

func NewMenuStore(outputRoot string) *MenuStore {
	return &MenuStore{
		path: filepath.Join(outputRoot, storeFileName),
		memo: cache.New(24*time.Hour, 48*time.Hour),
	}
}

func (s *MenuStore) Path() string {
	return s.path
}

// readAll returns the document with each date left undecoded. A missing
// file is an empty store.
func (s *MenuStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, &StoreError{Path: s.path, Err: err}
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StoreError{Path: s.path, Err: err}
	}
	if doc == nil {
		return nil, &StoreError{Path: s.path, Err: errors.New("store document is not an object")}
	}
	return doc, nil
}

// Load returns the menus stored for date, or ErrDateNotFound.
func (s *MenuStore) Load(date string) ([]models.DailyMenu, error) {
	if cached, ok := s.memo.Get(date); ok {
		return cloneMenus(cached.([]models.DailyMenu)), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readAll()
	if err != nil {
		return nil, err
	}
	raw, ok := doc[date]
	if !ok {
		return nil, ErrDateNotFound
	}

	var menus []models.DailyMenu
	if err := json.Unmarshal(raw, &menus); err != nil {
		return nil, &StoreError{Path: s.path, Err: fmt.Errorf("date %s: %w", date, err)}
	}
	s.memo.SetDefault(date, menus)
	return cloneMenus(menus), nil
}

func (s *MenuStore) Has(date string) bool {
	if _, ok := s.memo.Get(date); ok {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readAll()
	if err != nil {
		return false
	}
	_, ok := doc[date]
	return ok
}

// Dates lists the stored dates in ascending order.
func (s *MenuStore) Dates() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readAll()
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(doc))
	for d := range doc {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

// Merge writes the entry for date and leaves every other date untouched.
func (s *MenuStore) Merge(date string, menus []models.DailyMenu) error {
	if menus == nil {
		menus = []models.DailyMenu{}
	}
	encoded, err := json.Marshal(menus)
	if err != nil {
		return fmt.Errorf("failed to encode menus for %s: %w", date, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readAll()
	if err != nil {
		return err
	}
	doc[date] = encoded

	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode menu store: %w", err)
	}
	if err := writeFileAtomic(s.path, out); err != nil {
		return &StoreError{Path: s.path, Err: err}
	}

	s.memo.SetDefault(date, cloneMenus(menus))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".dining_hall_info-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// cloneMenus deep-copies menus so callers can filter them freely.
func cloneMenus(in []models.DailyMenu) []models.DailyMenu {
	out := make([]models.DailyMenu, len(in))
	for i, m := range in {
		c := m
		if m.Distance != nil {
			d := *m.Distance
			c.Distance = &d
		}
		c.Menus = make(map[models.MealPeriod]models.StationList, len(m.Menus))
		for period, stations := range m.Menus {
			copied := make(models.StationList, len(stations))
			for j, st := range stations {
				items := make([]models.MenuItem, len(st.Items))
				copy(items, st.Items)
				copied[j] = models.Station{Name: st.Name, Items: items}
			}
			c.Menus[period] = copied
		}
		out[i] = c
	}
	return out
}
