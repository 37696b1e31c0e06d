package core

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const DateLayout = "2006-01-02"

// Date is a calendar day (no time of day), exchanged as "YYYY-MM-DD" or null.
type Date struct {
	Time  time.Time
	Valid bool
}

// DateOf drops the time of day from t, keeping t's calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Valid: true}
}

// ParseDate accepts "YYYY-MM-DD" as well as full timestamps starting with one.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.Errorf("fecha no válida: %q", s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(DateLayout)
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

func (d Date) Equal(o Date) bool { return d.Valid == o.Valid && d.Time.Equal(o.Time) }

// YearsUntil returns the number of whole years between d and o (an age, if d is a birth date).
func (d Date) YearsUntil(o Date) int {
	years := o.Time.Year() - d.Time.Year()
	om, od := o.Time.Month(), o.Time.Day()
	dm, dd := d.Time.Month(), d.Time.Day()
	if om < dm || (om == dm && od < dd) {
		years--
	}
	return years
}

func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "decoding date")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(value interface{}) error {
	switch val := value.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(val)
	case []byte:
		return d.scanString(string(val))
	case string:
		return d.scanString(val)
	default:
		return fmt.Errorf("cannot scan %T into core.Date", value)
	}
	return nil
}

func (d *Date) scanString(s string) error {
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.String(), nil
}

// Amount is a money value decoded from either a JSON number or a numeric string.
// Anything else (null, "", "abc", true) decodes to an unset Amount instead of failing.
type Amount struct {
	Float64 float64
	Valid   bool
}

func NewAmount(f float64) Amount {
	return Amount{Float64: f, Valid: true}
}

// Or returns the amount, or def when it is unset.
func (a Amount) Or(def float64) float64 {
	if !a.Valid {
		return def
	}
	return a.Float64
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Float64)
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch val := raw.(type) {
	case float64:
		*a = NewAmount(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			*a = NewAmount(f)
		}
	}
	return nil
}

// Int is an integer decoded from either a JSON number or a numeric string, as HTML forms send them.
// Anything else (null, "", "abc", 1.5) decodes to an unset Int instead of failing.
type Int struct {
	Int64 int64
	Valid bool
}

func NewInt(i int64) Int {
	return Int{Int64: i, Valid: true}
}

// Or returns the integer, or def when it is unset.
func (i Int) Or(def int64) int64 {
	if !i.Valid {
		return def
	}
	return i.Int64
}

func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(i.Int64)
}

func (i *Int) UnmarshalJSON(data []byte) error {
	*i = Int{}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch val := raw.(type) {
	case float64:
		if val == math.Trunc(val) && math.Abs(val) <= math.MaxInt32 {
			*i = NewInt(int64(val))
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			*i = NewInt(n)
		}
	}
	return nil
}
