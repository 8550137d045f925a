package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const ISODate = "2006-01-02"

// DateSet is a set of calendar dates, persisted as a JSONB array of ISO
// dates. Rule holiday lists are parsed into it once at load time instead of
// being re-parsed on every resolution.
type DateSet struct {
	dates map[string]struct{}
}

func NewDateSet(dates ...string) DateSet {
	s := DateSet{dates: make(map[string]struct{}, len(dates))}
	for _, d := range dates {
		s.dates[d] = struct{}{}
	}
	return s
}

func (s DateSet) Contains(t time.Time) bool {
	if len(s.dates) == 0 {
		return false
	}
	_, ok := s.dates[t.Format(ISODate)]
	return ok
}

func (s DateSet) Len() int { return len(s.dates) }

// Dates returns the member dates in sorted order.
func (s DateSet) Dates() []string {
	out := make([]string, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func (s DateSet) MarshalJSON() ([]byte, error) {
	out := make([]string, 0, len(s.dates))
	for d := range s.dates {
		out = append(out, d)
	}
	sort.Strings(out)
	return json.Marshal(out)
}

func (s *DateSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, d := range raw {
		if _, err := time.Parse(ISODate, d); err != nil {
			return fmt.Errorf("invalid holiday date %q: %w", d, err)
		}
	}
	*s = NewDateSet(raw...)
	return nil
}

func (s DateSet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *DateSet) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	case nil:
		*s = DateSet{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DateSet", src)
	}
}

// WeekdaySet is a set of ISO weekday numbers (Monday=1 .. Sunday=7),
// persisted as a JSONB array of ints.
type WeekdaySet struct {
	days map[int]struct{}
}

func NewWeekdaySet(days ...int) WeekdaySet {
	s := WeekdaySet{days: make(map[int]struct{}, len(days))}
	for _, d := range days {
		s.days[d] = struct{}{}
	}
	return s
}

// ISOWeekday maps Go's Sunday=0 convention to ISO Monday=1..Sunday=7.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func (s WeekdaySet) Contains(t time.Time) bool {
	_, ok := s.days[ISOWeekday(t)]
	return ok
}

func (s WeekdaySet) Len() int { return len(s.days) }

// Days returns the member weekdays in ascending order.
func (s WeekdaySet) Days() []int {
	out := make([]int, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	out := make([]int, 0, len(s.days))
	for d := range s.days {
		out = append(out, d)
	}
	sort.Ints(out)
	return json.Marshal(out)
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, d := range raw {
		if d < 1 || d > 7 {
			return fmt.Errorf("weekday out of range 1-7: %d", d)
		}
	}
	*s = NewWeekdaySet(raw...)
	return nil
}

func (s WeekdaySet) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *WeekdaySet) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return s.UnmarshalJSON(v)
	case string:
		return s.UnmarshalJSON([]byte(v))
	case nil:
		*s = WeekdaySet{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into WeekdaySet", src)
	}
}
