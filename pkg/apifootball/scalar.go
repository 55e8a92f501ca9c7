package apifootball

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// api-sports is loose about scalar types: counters come back as numbers on
// one endpoint and as strings on another, and missing values are either
// null or absent. Int, Float and String decode all of those shapes and
// record whether a usable value was present.

// Int is an integer leaf. Valid is false for null, absent and empty-string values.
type Int struct {
	Value int
	Valid bool
}

// Get returns the value, or 0 when it was not present.
func (i Int) Get() int {
	if !i.Valid {
		return 0
	}
	return i.Value
}

// UnmarshalJSON accepts a JSON number, a numeric string, "" or null.
// Fractional numbers are truncated toward zero; fractional strings are rejected.
func (i *Int) UnmarshalJSON(data []byte) error {
	text, quoted, ok, err := scalarText(data)
	if err != nil || !ok {
		*i = Int{}
		return err
	}

	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		*i = Int{Value: int(n), Valid: true}
		return nil
	}
	if quoted {
		return fmt.Errorf("apifootball: %q is not an integer", text)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("apifootball: %s is not an integer", text)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("apifootball: %s is out of integer range", text)
	}
	*i = Int{Value: int(math.Trunc(f)), Valid: true}
	return nil
}

// MarshalJSON writes null when the value is absent.
func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(i.Value)), nil
}

// Float is a floating-point leaf, e.g. the match rating "7.266667".
type Float struct {
	Value float64
	Valid bool
}

// Get returns the value, or 0.0 when it was not present.
func (f Float) Get() float64 {
	if !f.Valid {
		return 0
	}
	return f.Value
}

// UnmarshalJSON accepts a JSON number, a numeric string, "" or null.
func (f *Float) UnmarshalJSON(data []byte) error {
	text, _, ok, err := scalarText(data)
	if err != nil || !ok {
		*f = Float{}
		return err
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("apifootball: %q is not a number", text)
	}
	*f = Float{Value: v, Valid: true}
	return nil
}

// MarshalJSON writes null when the value is absent.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

// String is a text leaf. Numbers are kept in their literal form.
type String struct {
	Value string
	Valid bool
}

// Get returns the value, or "" when it was not present.
func (s String) Get() string {
	return s.Value
}

// UnmarshalJSON accepts a JSON string, a number or null.
func (s *String) UnmarshalJSON(data []byte) error {
	text, _, ok, err := scalarText(data)
	if err != nil || !ok {
		*s = String{}
		return err
	}
	*s = String{Value: text, Valid: true}
	return nil
}

// MarshalJSON writes null when the value is absent.
func (s String) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// scalarText extracts the literal text of a JSON scalar. ok is false for
// null and for strings that are empty after trimming.
func scalarText(data []byte) (text string, quoted, ok bool, err error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", false, false, nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", true, false, err
		}
		s = strings.TrimSpace(s)
		return s, true, s != "", nil
	case '{', '[', 't', 'f':
		return "", false, false, fmt.Errorf("apifootball: expected scalar, got %s", truncate(data, 32))
	default:
		return string(data), false, true, nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
