package services

// CacheGate decides whether a date's pages must be fetched.
type CacheGate struct {
	pages *PageCache
	store *MenuStore
}

func NewCacheGate(pages *PageCache, store *MenuStore) *CacheGate {
	return &CacheGate{pages: pages, store: store}
}

// NeedsFetch is true when neither a page directory nor a stored entry
// exists for date.
func (g *CacheGate) NeedsFetch(date string) bool {
	if g.pages.Exists(date) {
		return false
	}
	return !g.store.Has(date)
}

func (g *CacheGate) ShouldFetch(date string, force bool) bool {
	return force || g.NeedsFetch(date)
}
