package scheduling

import (
	"fmt"

	"agendo/utils"
)

// compactThreshold is the list length above which adjacent times are
// collapsed into ranges for chat display.
const compactThreshold = 5

// FormatTimes renders valid starts as "HH:mm" strings. Lists longer
// than five entries are compacted: runs of times exactly one slot width
// apart collapse into a single "das HH:mm às HH:mm" range, which reads
// far better in a chat message than a wall of timestamps.
func FormatTimes(starts []int, slotSizeMinutes int) []string {
	if len(starts) == 0 {
		return nil
	}
	if len(starts) <= compactThreshold {
		times := make([]string, 0, len(starts))
		for _, s := range starts {
			times = append(times, utils.MinutesToClock(s))
		}
		return times
	}

	var out []string
	runStart := starts[0]
	prev := starts[0]
	flush := func() {
		if runStart == prev {
			out = append(out, utils.MinutesToClock(runStart))
			return
		}
		out = append(out, fmt.Sprintf("das %s às %s",
			utils.MinutesToClock(runStart), utils.MinutesToClock(prev)))
	}
	for _, s := range starts[1:] {
		if s == prev+slotSizeMinutes {
			prev = s
			continue
		}
		flush()
		runStart, prev = s, s
	}
	flush()
	return out
}
