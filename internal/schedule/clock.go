package schedule

import (
	"fmt"
	"regexp"
	"strconv"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// ParseTime переводит "HH:mm" (или "H:mm") в минуты от полуночи
func ParseTime(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes, nil
}

// FormatTime переводит минуты от полуночи в "HH:mm"
func FormatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeTime приводит "8:00" к каноническому "08:00"
func NormalizeTime(s string) (string, error) {
	m, err := ParseTime(s)
	if err != nil {
		return "", err
	}
	return FormatTime(m), nil
}

// IsValidRange true если конец строго позже начала
func IsValidRange(start, end string) (bool, error) {
	s, err := ParseTime(start)
	if err != nil {
		return false, fmt.Errorf("start time: %w", err)
	}
	e, err := ParseTime(end)
	if err != nil {
		return false, fmt.Errorf("end time: %w", err)
	}
	return e > s, nil
}
