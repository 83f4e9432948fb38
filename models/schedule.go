package models

// MealHours is an inclusive [start, end] window in decimal hours.
type MealHours [2]float64

func (h MealHours) Contains(t float64) bool {
	return t >= h[0] && t <= h[1]
}

// DayRangeHours is one row of a hall's weekly table: a single day name or
// a "Day1 - Day2" range, and the meal windows served on those days.
type DayRangeHours struct {
	Key   string
	Meals map[MealPeriod]MealHours
}

// WeeklySchedule maps a hall name to its rows in table order.
type WeeklySchedule map[string][]DayRangeHours
