// Package beat converts absolute instants to and from Swatch Internet Time.
//
// Internet Time divides the mean solar day into 1000 beats of 86.4 seconds,
// counted from midnight in Biel Mean Time (BMT). BMT is fixed at UTC+1 and
// never observes daylight saving.
package beat

import (
	"fmt"
	"math"
	"time"
)

const (
	BeatsPerDay = 1000

	millisPerBeat   = 86_400
	millisPerDay    = 86_400_000
	bmtOffsetMillis = 3_600_000
)

// Location is the fixed BMT reference zone.
var Location = time.FixedZone("BMT", 3600)

// ToBeats returns the beat value of t, always in [0, 1000).
func ToBeats(t time.Time) float64 {
	ms := (t.UnixMilli() + bmtOffsetMillis) % millisPerDay
	if ms < 0 {
		ms += millisPerDay
	}
	return float64(ms) / millisPerBeat
}

// FromBeats returns the absolute instant at the given beat value on the
// BMT calendar day of date.
func FromBeats(date time.Time, beats float64) time.Time {
	d := date.In(Location)
	midnight := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, Location)
	return midnight.Add(time.Duration(beats * millisPerBeat * float64(time.Millisecond)))
}

// Format renders a beat value the canonical way: truncated to a whole beat
// and zero-padded to three digits, e.g. "@041".
func Format(beats float64) string {
	return fmt.Sprintf("@%03d", int(math.Trunc(beats))%BeatsPerDay)
}

// FormatCentibeats renders a beat value with two fractional digits,
// e.g. "@041.66". The fraction is truncated, not rounded, so the displayed
// value never runs ahead of the clock.
func FormatCentibeats(beats float64) string {
	truncated := math.Trunc(beats*100) / 100
	return fmt.Sprintf("@%06.2f", truncated)
}
