package dto

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
)

var ErrInvalidMinutes = errors.New("duration must be a whole number of minutes")

// Minutes reads a duration sent either as a JSON number or a numeric string.
func Minutes(n json.Number) (int, error) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, ErrInvalidMinutes
	}
	if i, err := json.Number(s).Int64(); err == nil {
		return int(i), nil
	}
	f, err := json.Number(s).Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, ErrInvalidMinutes
	}
	return int(f), nil
}
