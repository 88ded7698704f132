package game

import (
	"sort"

	"gamelog_daily/internal/model"
)

const LeaderboardSize = 10

type Standing struct {
	UserID         int64
	Value          int64
	Wins           int
	Attempts       int
	BestDurationMs *int64
}

// RankStandings buckets attempts by user and orders them by the mode's metric:
// word sums winning scores, memory keeps the best score, reaction keeps the
// fastest recorded duration. Ties keep the order users were first seen in.
func RankStandings(mode model.Mode, attempts []*model.LeaderboardAttempt) []Standing {
	var order []int64
	buckets := make(map[int64]*Standing)

	for _, a := range attempts {
		if a == nil {
			continue
		}
		s, ok := buckets[a.UserID]
		if !ok {
			s = &Standing{UserID: a.UserID}
			buckets[a.UserID] = s
			order = append(order, a.UserID)
		}

		switch mode {
		case model.ModeWord:
			if a.Won {
				s.Value += int64(a.Score)
				s.Wins++
			}
			s.Attempts++
		case model.ModeMemory:
			if s.Attempts == 0 || int64(a.Score) > s.Value {
				s.Value = int64(a.Score)
			}
			s.Attempts++
			s.BestDurationMs = minDuration(s.BestDurationMs, a.DurationMs)
		case model.ModeReaction:
			if a.DurationMs == nil || *a.DurationMs <= 0 {
				continue
			}
			s.Attempts++
			s.BestDurationMs = minDuration(s.BestDurationMs, a.DurationMs)
			s.Value = *s.BestDurationMs
		}
	}

	standings := make([]Standing, 0, len(order))
	for _, id := range order {
		s := buckets[id]
		if included(mode, s) {
			standings = append(standings, *s)
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if mode == model.ModeReaction {
			return standings[i].Value < standings[j].Value
		}
		return standings[i].Value > standings[j].Value
	})

	if len(standings) > LeaderboardSize {
		standings = standings[:LeaderboardSize]
	}

	return standings
}

func included(mode model.Mode, s *Standing) bool {
	switch mode {
	case model.ModeWord:
		return s.Wins > 0
	case model.ModeMemory:
		return s.Attempts > 0
	case model.ModeReaction:
		return s.BestDurationMs != nil
	default:
		return false
	}
}

func minDuration(best, candidate *int64) *int64 {
	if candidate == nil || *candidate <= 0 {
		return best
	}
	if best == nil || *candidate < *best {
		v := *candidate
		return &v
	}
	return best
}
