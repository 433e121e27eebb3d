package score

import "time"

// Max is the score of a level completed instantly.
const Max = 1000

// FromElapsed maps whole elapsed seconds to a score: max(0, Max - seconds).
func FromElapsed(seconds int) int {
	if seconds < 0 {
		seconds = 0
	}
	if seconds >= Max {
		return 0
	}
	return Max - seconds
}

// Elapsed truncates now-start to whole seconds.
func Elapsed(start, now time.Time) int {
	d := now.Sub(start)
	if d < 0 {
		return 0
	}
	return int(d / time.Second)
}
