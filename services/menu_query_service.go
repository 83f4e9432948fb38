package services

import (
	"context"
	"sort"
	"time"

	"MenuMate/models"
)

// MenuQueryService shapes stored menus for a caller: allergen filtering,
// distance ordering and serving status.
type MenuQueryService struct {
	acquisition *AcquisitionService
	schedule    *ScheduleEvaluator
	now         func() time.Time
}

func NewMenuQueryService(acquisition *AcquisitionService, schedule *ScheduleEvaluator) *MenuQueryService {
	return &MenuQueryService{acquisition: acquisition, schedule: schedule, now: time.Now}
}

// Today is the current date in the schedule's time zone.
func (s *MenuQueryService) Today() string {
	return s.now().In(s.schedule.Location()).Format(time.DateOnly)
}

// GetMenu returns every hall's menu for date, unfiltered and unsorted.
func (s *MenuQueryService) GetMenu(ctx context.Context, date string) ([]models.HallMenuView, error) {
	return s.GetUserMenu(ctx, nil, nil, date)
}

// GetUserMenu filters out items carrying a disallowed allergen and, when
// loc is set, orders halls by distance. Without preferences the menus are
// returned unfiltered with no distance.
func (s *MenuQueryService) GetUserMenu(ctx context.Context, prefs *models.Preferences, loc *models.GeoLocation, date string) ([]models.HallMenuView, error) {
	menus, err := s.acquisition.GetDiningHallInfo(ctx, date, false)
	if err != nil {
		return nil, err
	}
	statuses := s.schedule.CurrentStatus(s.now())

	if prefs == nil {
		loc = nil
	}
	disallowed := prefs.DisallowedAllergens()

	views := make([]models.HallMenuView, 0, len(menus))
	for _, m := range menus {
		view := models.HallMenuView{
			DiningHall:  m.DiningHall,
			LastUpdated: m.LastUpdated,
			Status:      StatusClosed,
			Menus:       filterMenus(m.Menus, disallowed),
		}
		if status, ok := statuses[m.DiningHall]; ok {
			view.Status = status
		}
		if loc != nil {
			if hall, ok := models.LookupHall(m.DiningHall); ok {
				d := DistanceMiles(*loc, hallLocation(hall))
				view.Distance = &d
			}
		}
		views = append(views, view)
	}

	if loc != nil {
		sortByDistance(views)
	}
	return views, nil
}

// filterMenus keeps every station, dropping only the items that carry a
// disallowed allergen.
func filterMenus(menus map[models.MealPeriod]models.StationList, disallowed map[string]struct{}) map[models.MealPeriod][]models.Station {
	out := make(map[models.MealPeriod][]models.Station, len(menus))
	for period, stations := range menus {
		filtered := make([]models.Station, 0, len(stations))
		for _, st := range stations {
			items := make([]models.MenuItem, 0, len(st.Items))
			for _, item := range st.Items {
				if len(disallowed) > 0 && item.HasAllergen(disallowed) {
					continue
				}
				items = append(items, item)
			}
			filtered = append(filtered, models.Station{Name: st.Name, Items: items})
		}
		out[period] = filtered
	}
	return out
}

// sortByDistance is stable; halls without a distance go last.
func sortByDistance(views []models.HallMenuView) {
	sort.SliceStable(views, func(i, j int) bool {
		di, dj := views[i].Distance, views[j].Distance
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return *di < *dj
		}
	})
}
