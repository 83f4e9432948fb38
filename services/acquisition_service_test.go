package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"MenuMate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeFetcher serves a minimal menu page per hall and records calls.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	failFor map[string]bool
	garbage map[string]bool
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: map[string]int{}, failFor: map[string]bool{}, garbage: map[string]bool{}}
}

func (f *fakeFetcher) Fetch(_ context.Context, hall models.DiningHall, date string) ([]byte, error) {
	f.mu.Lock()
	f.calls[hall.Name]++
	fail, garbage := f.failFor[hall.Name], f.garbage[hall.Name]
	f.mu.Unlock()

	if fail {
		return nil, &FetchError{Hall: hall.Name, Date: date, StatusCode: 503}
	}
	if garbage {
		return []byte("<html><body>maintenance</body></html>"), nil
	}
	return []byte(menuPage(hall.Name, "Grill", "Fries", "")), nil
}

func (f *fakeFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func menuPage(hall, station, item, allergen string) string {
	var allergens string
	if allergen != "" {
		allergens = fmt.Sprintf(`<div class="allergens"><ul><li>%s</li></ul></div>`, allergen)
	}
	return fmt.Sprintf(`<html><head><title>%s | Michigan Dining</title></head><body>
<div id="mdining-items"><h3>Lunch</h3><h4>%s</h4><ul class="items"><li>
<div class="item-name">%s</div><div class="nutrition-wrapper">%s<table><tr><td>Calories 100</td></tr></table></div>
</li></ul></div></body></html>`, hall, station, item, allergens)
}

type acquisitionFixture struct {
	svc     *AcquisitionService
	fetcher *fakeFetcher
	pages   *PageCache
	store   *MenuStore
}

func newAcquisitionFixture(t *testing.T) *acquisitionFixture {
	t.Helper()
	root := t.TempDir()
	logger := zaptest.NewLogger(t)
	fetcher := newFakeFetcher()
	pages := NewPageCache(root)
	store := NewMenuStore(root)
	svc := NewAcquisitionService(
		NewFetchService(fetcher, pages, logger),
		pages,
		NewMenuParser(),
		store,
		AcquisitionOptions{Concurrency: 3, Logger: logger},
	)
	return &acquisitionFixture{svc: svc, fetcher: fetcher, pages: pages, store: store}
}

func hallNames(menus []models.DailyMenu) []string {
	names := make([]string, 0, len(menus))
	for _, m := range menus {
		names = append(names, m.DiningHall)
	}
	return names
}

func allHallNames() []string {
	var names []string
	for _, h := range models.DiningHalls() {
		names = append(names, h.Name)
	}
	return names
}

func TestAcquisitionFetchesOnce(t *testing.T) {
	f := newAcquisitionFixture(t)
	ctx := context.Background()

	menus, err := f.svc.GetDiningHallInfo(ctx, testDate, false)
	require.NoError(t, err)
	assert.Equal(t, allHallNames(), hallNames(menus))
	assert.Equal(t, 6, f.fetcher.total())
	assert.True(t, f.pages.Exists(testDate))

	again, err := f.svc.GetDiningHallInfo(ctx, testDate, false)
	require.NoError(t, err)
	assert.Equal(t, menus, again)
	assert.Equal(t, 6, f.fetcher.total())
}

func TestAcquisitionForceRefetches(t *testing.T) {
	f := newAcquisitionFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetDiningHallInfo(ctx, testDate, false)
	require.NoError(t, err)
	_, err = f.svc.GetDiningHallInfo(ctx, testDate, true)
	require.NoError(t, err)

	assert.Equal(t, 12, f.fetcher.total())
	for _, name := range allHallNames() {
		assert.Equal(t, 2, f.fetcher.calls[name], name)
	}
}

func TestAcquisitionStoredDateNeedsNoFetch(t *testing.T) {
	f := newAcquisitionFixture(t)
	require.NoError(t, f.store.Merge(testDate, []models.DailyMenu{sampleMenu("Bursley", testDate)}))

	menus, err := f.svc.GetDiningHallInfo(context.Background(), testDate, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bursley"}, hallNames(menus))
	assert.Zero(t, f.fetcher.total())
}

func TestAcquisitionOmitsFailedHalls(t *testing.T) {
	f := newAcquisitionFixture(t)
	f.fetcher.failFor["Markley"] = true
	f.fetcher.garbage["North Quad"] = true

	menus, err := f.svc.GetDiningHallInfo(context.Background(), testDate, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bursley", "East Quad", "Mosher-Jordan", "South Quad"}, hallNames(menus))

	markley, _ := models.LookupHall("Markley")
	_, err = f.pages.Read(testDate, markley)
	assert.Error(t, err)
}

func TestAcquisitionRebuildsFromCachedPages(t *testing.T) {
	f := newAcquisitionFixture(t)
	bursley, _ := models.LookupHall("Bursley")
	southQuad, _ := models.LookupHall("South Quad")
	require.NoError(t, f.pages.Write(testDate, southQuad, []byte(menuPage("South Quad", "Pizza", "Slice", ""))))
	require.NoError(t, f.pages.Write(testDate, bursley, loadFixture(t)))

	menus, err := f.svc.GetDiningHallInfo(context.Background(), testDate, false)
	require.NoError(t, err)
	assert.Zero(t, f.fetcher.total())
	assert.Equal(t, []string{"Bursley", "South Quad"}, hallNames(menus))
	assert.True(t, f.store.Has(testDate))
}

func TestAcquisitionConcurrentCallersShareOneFetch(t *testing.T) {
	f := newAcquisitionFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.GetDiningHallInfo(context.Background(), testDate, false)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 6, f.fetcher.total())
}

func TestAcquisitionParsedContent(t *testing.T) {
	f := newAcquisitionFixture(t)
	menus, err := f.svc.GetDiningHallInfo(context.Background(), testDate, false)
	require.NoError(t, err)
	require.NotEmpty(t, menus)

	lunch := menus[0].Menus[models.Lunch]
	require.Len(t, lunch, 1)
	assert.Equal(t, "Grill", lunch[0].Name)
	assert.Equal(t, "Fries", lunch[0].Items[0].ItemName)
	assert.True(t, strings.HasPrefix(menus[0].LastUpdated, "2024-11"))
}

func TestAcquisitionCancelledStoresNothing(t *testing.T) {
	f := newAcquisitionFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.GetDiningHallInfo(ctx, testDate, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, f.store.Has(testDate))
}

func TestAcquisitionCancelledForceKeepsStoredDay(t *testing.T) {
	f := newAcquisitionFixture(t)
	require.NoError(t, f.store.Merge(testDate, []models.DailyMenu{sampleMenu("Bursley", testDate)}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.svc.GetDiningHallInfo(ctx, testDate, true)
	assert.ErrorIs(t, err, context.Canceled)

	menus, err := f.store.Load(testDate)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bursley"}, hallNames(menus))
}
