package game

import "time"

const day = 24 * time.Hour

// StartOfDay returns UTC midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	return t.UTC().Truncate(day)
}

// CurrentStreak counts consecutive won days ending today. Without a win today the
// streak is zero, whatever happened before.
func CurrentStreak(today time.Time, wins []time.Time) int {
	won := make(map[time.Time]struct{}, len(wins))
	for _, w := range wins {
		won[StartOfDay(w)] = struct{}{}
	}

	streak := 0
	for d := StartOfDay(today); ; d = d.Add(-day) {
		if _, ok := won[d]; !ok {
			return streak
		}
		streak++
	}
}
