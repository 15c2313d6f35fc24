package model

import (
	"fmt"
	"time"
)

// DateTimeLayout is the fixed payload timestamp format: no zone, no fraction.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime wraps time.Time so every timestamp crossing the HTTP boundary
// is rendered and parsed with DateTimeLayout.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime { return DateTime{t} }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid datetime %s", s)
	}
	t, err := time.Parse(DateTimeLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}
