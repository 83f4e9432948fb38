package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

type MealPeriod string

const (
	Breakfast MealPeriod = "Breakfast"
	Brunch    MealPeriod = "Brunch"
	Lunch     MealPeriod = "Lunch"
	Dinner    MealPeriod = "Dinner"
)

// MealPeriods lists every meal period a parsed menu carries.
var MealPeriods = []MealPeriod{Breakfast, Lunch, Brunch, Dinner}

// ParseMealPeriod maps heading text onto a known meal period.
func ParseMealPeriod(s string) (MealPeriod, bool) {
	for _, p := range MealPeriods {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

type MenuItem struct {
	ItemName  string            `json:"item_name"`
	Traits    []string          `json:"traits"`
	Allergens []string          `json:"allergens"`
	Nutrition map[string]string `json:"nutrition"`
}

// HasAllergen reports whether any of the item's allergens is in the set.
func (m MenuItem) HasAllergen(set map[string]struct{}) bool {
	for _, a := range m.Allergens {
		if _, ok := set[a]; ok {
			return true
		}
	}
	return false
}

type Station struct {
	Name  string     `json:"station_name"`
	Items []MenuItem `json:"items"`
}

// StationList keeps stations in page order. It encodes as a JSON object
// keyed by station name, with keys in slice order.
type StationList []Station

// Reset returns the list with the named station present and emptied. An
// existing station keeps its position.
func (l StationList) Reset(name string) StationList {
	for i := range l {
		if l[i].Name == name {
			l[i].Items = []MenuItem{}
			return l
		}
	}
	return append(l, Station{Name: name, Items: []MenuItem{}})
}

// Append adds an item to the named station, which must already exist.
func (l StationList) Append(name string, item MenuItem) {
	for i := range l {
		if l[i].Name == name {
			l[i].Items = append(l[i].Items, item)
			return
		}
	}
}

func (l StationList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		items := s.Items
		if items == nil {
			items = []MenuItem{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (l *StationList) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("invalid station list")
	}
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return fmt.Errorf("station list must be an object, got %s", res.Type)
	}
	out := StationList{}
	var decodeErr error
	res.ForEach(func(key, value gjson.Result) bool {
		var items []MenuItem
		if err := json.Unmarshal([]byte(value.Raw), &items); err != nil {
			decodeErr = fmt.Errorf("station %q: %w", key.String(), err)
			return false
		}
		if items == nil {
			items = []MenuItem{}
		}
		out = append(out, Station{Name: key.String(), Items: items})
		return true
	})
	if decodeErr != nil {
		return decodeErr
	}
	*l = out
	return nil
}

// DailyMenu is one hall's parsed menu for one date.
type DailyMenu struct {
	DiningHall  string                     `json:"dining_hall"`
	LastUpdated string                     `json:"last_updated"`
	Menus       map[MealPeriod]StationList `json:"menus"`
	Distance    *float64                   `json:"distance"`
}

// NewDailyMenu returns a menu with every meal period present and empty.
func NewDailyMenu(hall, date string) *DailyMenu {
	menus := make(map[MealPeriod]StationList, len(MealPeriods))
	for _, p := range MealPeriods {
		menus[p] = StationList{}
	}
	return &DailyMenu{DiningHall: hall, LastUpdated: date, Menus: menus}
}

// HallMenuView is the shape handed to the route layer.
type HallMenuView struct {
	DiningHall  string                   `json:"dining_hall"`
	LastUpdated string                   `json:"last_updated"`
	Distance    *float64                 `json:"distance"`
	Status      string                   `json:"status"`
	Menus       map[MealPeriod][]Station `json:"menus"`
}
