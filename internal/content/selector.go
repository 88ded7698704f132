package content

import (
	"fmt"
	"time"

	"gamelog_daily/internal/model"
)

const secondsPerDay = 24 * 60 * 60

// DayIndex is the number of whole UTC days since the Unix epoch, floored for earlier dates.
func DayIndex(t time.Time) int64 {
	secs := t.UTC().Unix()
	idx := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		idx--
	}
	return idx
}

func pick(dayIndex int64, n int) int {
	i := dayIndex % int64(n)
	if i < 0 {
		i += int64(n)
	}
	return int(i)
}

// Select returns the content for mode on the given date. The result depends only on
// the date, so every replica agrees on it without coordination.
func (c *Catalog) Select(date time.Time, mode model.Mode) (model.Content, error) {
	idx := DayIndex(date)

	switch mode {
	case model.ModeWord:
		w := c.words.Entries[pick(idx, len(c.words.Entries))]
		return model.Content{Word: &w}, nil
	case model.ModeMemory:
		d := c.decks.Entries[pick(idx, len(c.decks.Entries))]
		d.Cards = append([]string(nil), d.Cards...)
		return model.Content{Memory: &d}, nil
	case model.ModeReaction:
		r := c.reactions.Entries[pick(idx, len(c.reactions.Entries))]
		return model.Content{Reaction: &r}, nil
	default:
		return model.Content{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}
