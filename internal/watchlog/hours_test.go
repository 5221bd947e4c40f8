package watchlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "plain morning watch", start: "04:00", end: "08:00", want: 4.0},
		{name: "crosses midnight", start: "22:00", end: "02:00", want: 4.0},
		{name: "half hour", start: "08:00", end: "08:30", want: 0.5},
		{name: "full day rollover", start: "12:00", end: "12:00", want: 0},
		{name: "missing start", start: "", end: "08:00", want: 0},
		{name: "missing end", start: "08:00", end: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateHours(tt.start, tt.end), 1e-9)
		})
	}
}
