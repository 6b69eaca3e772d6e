package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// StringToUint64Value is a flag value for a map of string to uint64,
// in the form key=value,key=value.
type StringToUint64Value struct {
	value   *map[string]uint64
	changed bool
}

// NewStringToUint64Value writes parsed pairs into the map that p points to.
func NewStringToUint64Value(p *map[string]uint64) *StringToUint64Value {
	return &StringToUint64Value{value: p}
}

// Set expects value in the form key=value,key=value. Values from the first
// call replace the defaults, subsequent calls add to them. The map is never
// modified in place.
func (s *StringToUint64Value) Set(val string) error {
	parsed := map[string]uint64{}
	for _, pair := range strings.Split(val, ",") {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("%s must be formatted as key=value", pair)
		}
		amount, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", pair, err)
		}
		parsed[key] = amount
	}
	if s.changed {
		merged := maps.Clone(*s.value)
		if merged == nil {
			merged = map[string]uint64{}
		}
		maps.Copy(merged, parsed)
		parsed = merged
	}
	*s.value = parsed
	s.changed = true
	return nil
}

// Type returns the type of the value, used in usage messages.
func (s *StringToUint64Value) Type() string {
	return "stringToUint64"
}

func (s *StringToUint64Value) String() string {
	keys := slices.Sorted(maps.Keys(*s.value))
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+strconv.FormatUint((*s.value)[key], 10))
	}
	return "[" + strings.Join(pairs, ",") + "]"
}

// TimeValue is a flag value for a time in RFC3339 format.
type TimeValue struct {
	value *time.Time
}

// NewTimeValue writes parsed time into p.
func NewTimeValue(p *time.Time) *TimeValue {
	return &TimeValue{value: p}
}

// Set parses RFC3339 time.
func (t *TimeValue) Set(val string) error {
	parsed, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return err
	}
	*t.value = parsed
	return nil
}

// Type returns the type of the value, used in usage messages.
func (t *TimeValue) Type() string {
	return "time"
}

func (t *TimeValue) String() string {
	if t.value.IsZero() {
		return ""
	}
	return t.value.Format(time.RFC3339)
}
