package services

import (
	"fmt"
	"os"
	"path/filepath"

	"MenuMate/models"
)

// PageCache stores raw menu pages as <root>/menu_htmls/<date>/<slug>.html.
type PageCache struct {
	root string
}

func NewPageCache(dataRoot string) *PageCache {
	return &PageCache{root: filepath.Join(dataRoot, "menu_htmls")}
}

func (p *PageCache) DayDir(date string) string {
	return filepath.Join(p.root, date)
}

func (p *PageCache) PagePath(date string, hall models.DiningHall) string {
	return filepath.Join(p.DayDir(date), hall.Slug+".html")
}

// Exists reports whether a cache directory was created for date.
func (p *PageCache) Exists(date string) bool {
	info, err := os.Stat(p.DayDir(date))
	return err == nil && info.IsDir()
}

func (p *PageCache) Write(date string, hall models.DiningHall, body []byte) error {
	if err := os.MkdirAll(p.DayDir(date), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p.PagePath(date, hall), body, 0o644); err != nil {
		return fmt.Errorf("failed to write cached page: %w", err)
	}
	return nil
}

// Read returns the cached page, or os.ErrNotExist when the hall has none.
func (p *PageCache) Read(date string, hall models.DiningHall) ([]byte, error) {
	return os.ReadFile(p.PagePath(date, hall))
}
