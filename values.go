package profile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// FormatValue renders a value the way drivers store it
func FormatValue(value interface{}) string {
	if t, ok := value.(time.Time); ok {
		return t.Format(time.RFC3339)
	}

	str, err := cast.ToStringE(value)

	if err != nil {
		return fmt.Sprint(value)
	}

	return str
}

// GetString returns the stored string or def if the entry is absent
func GetString(p ReadOnlyProfile, section, entry string, def string) (string, error) {
	value, ok, err := p.GetValue(section, entry)

	if err != nil {
		return "", err
	} else if !ok {
		return def, nil
	}

	return value, nil
}

// GetInt returns the stored value as an int or def if the entry is
// absent. Values are read as decimal, so "010" is 10. A stored value
// that is not an integer yields 0.
func GetInt(p ReadOnlyProfile, section, entry string, def int) (int, error) {
	return get(p, section, entry, def, func(value interface{}) (int, error) {
		i, err := parseInt(value, strconv.IntSize)

		return int(i), err
	})
}

// GetInt64 is like GetInt for 64 bit values
func GetInt64(p ReadOnlyProfile, section, entry string, def int64) (int64, error) {
	return get(p, section, entry, def, func(value interface{}) (int64, error) {
		return parseInt(value, 64)
	})
}

// GetFloat returns the stored value as a float64 or def if the entry
// is absent. A stored value that is not a number yields 0.
func GetFloat(p ReadOnlyProfile, section, entry string, def float64) (float64, error) {
	return get(p, section, entry, def, cast.ToFloat64E)
}

// GetBool returns the stored value as a bool or def if the entry
// is absent. Only "true" and "false" are booleans, in any case.
// Anything else, "1" included, yields false.
func GetBool(p ReadOnlyProfile, section, entry string, def bool) (bool, error) {
	return get(p, section, entry, def, parseBool)
}

// GetTime returns the stored value as a time.Time or def if the entry
// is absent. A stored value that is not a time yields the zero time.
func GetTime(p ReadOnlyProfile, section, entry string, def time.Time) (time.Time, error) {
	return get(p, section, entry, def, cast.ToTimeE)
}

func get[T any](p ReadOnlyProfile, section, entry string, def T, convert func(interface{}) (T, error)) (T, error) {
	var zero T

	value, ok, err := p.GetValue(section, entry)

	if err != nil {
		return zero, err
	} else if !ok {
		return def, nil
	}

	result, err := convert(value)

	if err != nil {
		return zero, nil
	}

	return result, nil
}

var errNotBool = errors.New("not a boolean")

// parseInt reads a base 10 integer. A leading 0 or 0x does not
// select another base.
func parseInt(value interface{}, bitSize int) (int64, error) {
	str, err := cast.ToStringE(value)

	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(strings.TrimSpace(str), 10, bitSize)
}

func parseBool(value interface{}) (bool, error) {
	str, err := cast.ToStringE(value)

	if err != nil {
		return false, err
	}

	switch str = strings.TrimSpace(str); {
	case strings.EqualFold(str, "true"):
		return true, nil
	case strings.EqualFold(str, "false"):
		return false, nil
	}

	return false, errNotBool
}
