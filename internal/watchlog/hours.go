// Package watchlog provides the pure helpers behind diary watch entries:
// counted-hours estimation and the degrees-minutes position codec.
package watchlog

import (
	"strconv"
	"strings"
)

// EstimateHours returns the duration of a watch in hours from HH:MM start
// and end times. A watch crossing midnight (end before start) rolls over
// into the next day. Returns 0 when either time is absent.
func EstimateHours(start, end string) float64 {
	if start == "" || end == "" {
		return 0
	}

	startMin := minutesSinceMidnight(start)
	endMin := minutesSinceMidnight(end)
	if endMin < startMin {
		endMin += 24 * 60
	}

	return float64(endMin-startMin) / 60
}

// minutesSinceMidnight parses HH:MM leniently, treating malformed
// components as zero the way the entry form does.
func minutesSinceMidnight(t string) int {
	parts := strings.SplitN(t, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m := 0
	if len(parts) == 2 {
		m, _ = strconv.Atoi(parts[1])
	}
	return h*60 + m
}
