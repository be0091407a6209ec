package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod is a time of day stored in a Postgres TIME column.
type Tod struct{ time.Time }

func NewTod(hour, minute int) Tod {
	return Tod{Time: time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)}
}

// Parse builds a Tod from "HH:mm[:ss[.ffffff]]".
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

func (Tod) GormDataType() string { return "time" }

// Scan accepts time.Time or "HH:MM[:SS]".
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		t.Time = time.Date(0, 1, 1, x.Hour(), x.Minute(), x.Second(), 0, time.UTC)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05.999999", s)
	if err != nil {
		return fmt.Errorf("tod: %w", err)
	}
	t.Time = time.Date(0, 1, 1, tt.Hour(), tt.Minute(), tt.Second(), 0, time.UTC)
	return nil
}

func (t Tod) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t Tod) String() string {
	return t.Format("15:04:05")
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
