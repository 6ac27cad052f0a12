package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// DayHours is the opening window for one day. "Closed" marks a day off.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WorkSchedule maps an English weekday name to its opening hours.
type WorkSchedule map[string]DayHours

const Closed = "Closed"

// Weekdays in calendar order, Monday first.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var defaultHours = [7]DayHours{
	{Open: "09:00", Close: "17:00"},
	{Open: "09:00", Close: "17:00"},
	{Open: "09:00", Close: "17:00"},
	{Open: "09:00", Close: "17:00"},
	{Open: "09:00", Close: "17:00"},
	{Open: "10:00", Close: "15:00"},
	{Open: Closed, Close: Closed},
}

// DefaultWorkSchedule returns a fresh copy of the standard weekly hours.
func DefaultWorkSchedule() WorkSchedule {
	w := make(WorkSchedule, len(Weekdays))
	for i, day := range Weekdays {
		w[day] = defaultHours[i]
	}
	return w
}

func isWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Validate rejects empty schedules, unknown day names and blank hours.
func (w WorkSchedule) Validate() error {
	if len(w) == 0 {
		return errors.New("work time must list at least one day")
	}
	for day, h := range w {
		if !isWeekday(day) {
			return fmt.Errorf("%q is not a day of the week", day)
		}
		if h.Open == "" || h.Close == "" {
			return fmt.Errorf("%s needs both open and close", day)
		}
	}
	return nil
}

func (w WorkSchedule) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (w *WorkSchedule) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("work time: unsupported column type %T", value)
	}
	return json.Unmarshal(raw, w)
}

// UnmarshalParam lets gin bind the schedule from a multipart form value.
func (w *WorkSchedule) UnmarshalParam(param string) error {
	return json.Unmarshal([]byte(param), w)
}

func (WorkSchedule) GormDataType() string { return "json" }

func (WorkSchedule) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}
