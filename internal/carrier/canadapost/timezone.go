package canadapost

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const hour = 60 * 60

// zoneOffsets maps the zone abbreviations the carrier emits to UTC offsets in
// seconds. The system tz database is never consulted.
var zoneOffsets = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"Z":    0,
	"NST":  -(3*hour + 30*60),
	"NDT":  -(2*hour + 30*60),
	"AST":  -4 * hour,
	"ADT":  -3 * hour,
	"EST":  -5 * hour,
	"EDT":  -4 * hour,
	"CST":  -6 * hour,
	"CDT":  -5 * hour,
	"MST":  -7 * hour,
	"MDT":  -6 * hour,
	"PST":  -8 * hour,
	"PDT":  -7 * hour,
	"AKST": -9 * hour,
	"AKDT": -8 * hour,
	"HST":  -10 * hour,
}

// zoneOffset resolves an abbreviation or a numeric offset (+hh:mm, -hhmm, +hh)
// into seconds east of UTC. A blank zone is UTC.
func zoneOffset(zone string) (int, error) {
	z := strings.ToUpper(strings.TrimSpace(zone))
	if z == "" {
		return 0, nil
	}
	if off, ok := zoneOffsets[z]; ok {
		return off, nil
	}
	if z[0] != '+' && z[0] != '-' {
		return 0, fmt.Errorf("unknown time zone %q", zone)
	}

	sign := 1
	if z[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(z[1:], ":", "")
	if len(digits) != 2 && len(digits) != 4 {
		return 0, fmt.Errorf("unknown time zone %q", zone)
	}
	hh, err := strconv.Atoi(digits[:2])
	if err != nil {
		return 0, fmt.Errorf("unknown time zone %q", zone)
	}
	mm := 0
	if len(digits) == 4 {
		if mm, err = strconv.Atoi(digits[2:]); err != nil {
			return 0, fmt.Errorf("unknown time zone %q", zone)
		}
	}
	if hh > 14 || mm > 59 {
		return 0, fmt.Errorf("time zone %q out of range", zone)
	}
	return sign * (hh*hour + mm*60), nil
}

// eventTime combines the event date, time and zone into a UTC instant.
func eventTime(date, clock, zone string) (time.Time, error) {
	off, err := zoneOffset(zone)
	if err != nil {
		return time.Time{}, err
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = "00:00:00"
	}
	layout := "2006-01-02 15:04:05"
	if strings.Count(clock, ":") == 1 {
		layout = "2006-01-02 15:04"
	}
	loc := time.FixedZone(strings.TrimSpace(zone), off)
	t, err := time.ParseInLocation(layout, strings.TrimSpace(date)+" "+clock, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
