package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"MenuMate/models"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const StatusClosed = "closed"

// statusPriority is the order meal windows are tested in.
var statusPriority = []models.MealPeriod{models.Breakfast, models.Lunch, models.Brunch, models.Dinner}

var weekdays = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

// LoadSchedule reads the weekly hours table from path.
func LoadSchedule(path string) (models.WeeklySchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule: %w", err)
	}
	return ParseSchedule(data)
}

// ParseSchedule decodes hall -> day range -> meal -> [start, end],
// keeping day ranges in document order.
func ParseSchedule(data []byte) (models.WeeklySchedule, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("schedule is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("schedule must be an object keyed by hall")
	}

	schedule := models.WeeklySchedule{}
	var parseErr error
	root.ForEach(func(hall, days gjson.Result) bool {
		if !days.IsObject() {
			parseErr = fmt.Errorf("%s: want an object of day ranges", hall.String())
			return false
		}
		var rows []models.DayRangeHours
		days.ForEach(func(dayKey, meals gjson.Result) bool {
			if !meals.IsObject() {
				parseErr = fmt.Errorf("%s %s: want an object of meal windows", hall.String(), dayKey.String())
				return false
			}
			row := models.DayRangeHours{Key: dayKey.String(), Meals: map[models.MealPeriod]models.MealHours{}}
			meals.ForEach(func(meal, window gjson.Result) bool {
				bounds := window.Array()
				if !window.IsArray() || len(bounds) != 2 || bounds[0].Type != gjson.Number || bounds[1].Type != gjson.Number {
					parseErr = fmt.Errorf("%s %s %s: want [start, end]", hall.String(), dayKey.String(), meal.String())
					return false
				}
				row.Meals[models.MealPeriod(meal.String())] = models.MealHours{bounds[0].Float(), bounds[1].Float()}
				return true
			})
			if parseErr != nil {
				return false
			}
			rows = append(rows, row)
			return true
		})
		schedule[hall.String()] = rows
		return parseErr == nil
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return schedule, nil
}

// ServingStatus is one hall's evaluated state.
type ServingStatus struct {
	Hall   string
	Meal   models.MealPeriod
	Window models.MealHours
}

func (s ServingStatus) Open() bool {
	return s.Meal != ""
}

// Label is "serving <meal>" or "closed".
func (s ServingStatus) Label() string {
	if !s.Open() {
		return StatusClosed
	}
	return "serving " + strings.ToLower(string(s.Meal))
}

// ScheduleEvaluator reports what each hall is serving at a given time.
type ScheduleEvaluator struct {
	schedule models.WeeklySchedule
	location *time.Location
	logger   *zap.Logger
}

func NewScheduleEvaluator(schedule models.WeeklySchedule, loc *time.Location, logger *zap.Logger) *ScheduleEvaluator {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleEvaluator{schedule: schedule, location: loc, logger: logger}
}

func (e *ScheduleEvaluator) Location() *time.Location {
	return e.location
}

// Evaluate returns the status of every hall, in natural hall order.
func (e *ScheduleEvaluator) Evaluate(now time.Time) []ServingStatus {
	now = now.In(e.location)
	today := int(now.Weekday())
	hour := float64(now.Hour()) + float64(now.Minute())/60

	halls := models.DiningHalls()
	out := make([]ServingStatus, 0, len(halls))
	for _, hall := range halls {
		out = append(out, e.evaluateHall(hall.Name, today, hour))
	}
	return out
}

func (e *ScheduleEvaluator) evaluateHall(hall string, today int, hour float64) ServingStatus {
	status := ServingStatus{Hall: hall}

	row := e.matchDay(hall, today)
	if row == nil {
		return status
	}
	for _, meal := range statusPriority {
		window, ok := row.Meals[meal]
		if ok && window.Contains(hour) {
			status.Meal = meal
			status.Window = window
			return status
		}
	}
	return status
}

// matchDay returns the first row whose day range holds today. Ranges are
// compared as plain integers, so "Saturday - Sunday" matches nothing.
func (e *ScheduleEvaluator) matchDay(hall string, today int) *models.DayRangeHours {
	rows := e.schedule[hall]
	for i := range rows {
		begin, end, err := parseDayRange(rows[i].Key)
		if err != nil {
			e.logger.Warn("skipping schedule row", zap.String("hall", hall), zap.Error(err))
			continue
		}
		if begin <= today && today <= end {
			return &rows[i]
		}
	}
	return nil
}

func parseDayRange(key string) (int, int, error) {
	parts := strings.SplitN(key, "-", 2)
	begin, ok := weekdays[strings.TrimSpace(parts[0])]
	if !ok {
		return 0, 0, fmt.Errorf("unknown day %q in %q", strings.TrimSpace(parts[0]), key)
	}
	if len(parts) == 1 {
		return begin, begin, nil
	}
	end, ok := weekdays[strings.TrimSpace(parts[1])]
	if !ok {
		return 0, 0, fmt.Errorf("unknown day %q in %q", strings.TrimSpace(parts[1]), key)
	}
	return begin, end, nil
}

// CurrentStatus maps hall name to its status label.
func (e *ScheduleEvaluator) CurrentStatus(now time.Time) map[string]string {
	out := map[string]string{}
	for _, s := range e.Evaluate(now) {
		out[s.Hall] = s.Label()
	}
	return out
}

// Report renders the statuses as text for inclusion in prompt context.
func (e *ScheduleEvaluator) Report(now time.Time) string {
	var b strings.Builder
	b.WriteString("Dining hall serving statuses: \n\n")
	for _, s := range e.Evaluate(now) {
		if !s.Open() {
			fmt.Fprintf(&b, "%s is currently closed.\n", s.Hall)
			continue
		}
		fmt.Fprintf(&b, "%s is currently serving %s: [%s, %s]\n",
			s.Hall, strings.ToLower(string(s.Meal)), formatHour(s.Window[0]), formatHour(s.Window[1]))
	}
	return b.String()
}

func formatHour(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
