package appointment

import (
	"strconv"
	"strings"
)

// ParseSlotLabel converts labels like "10:30 AM", "9:00" or "14:15" into
// minutes since midnight.
func ParseSlotLabel(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return 0, false
	}

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	hourPart, minutePart, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil {
		return 0, false
	}

	minute := 0
	if hasMinutes {
		if len(minutePart) != 2 {
			return 0, false
		}
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	} else if meridiem == "" {
		// a bare number is too ambiguous to order
		return 0, false
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return 0, false
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, false
		}
		hour %= 12
		if meridiem == "PM" {
			hour += 12
		}
	}

	return hour*60 + minute, true
}
