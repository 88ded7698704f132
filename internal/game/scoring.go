package game

import "gamelog_daily/internal/model"

const (
	MaxWordAttempts     = 5
	MaxMemoryAttempts   = 1
	MaxReactionAttempts = 1
)

func MaxAttempts(mode model.Mode) int {
	switch mode {
	case model.ModeWord:
		return MaxWordAttempts
	case model.ModeMemory:
		return MaxMemoryAttempts
	case model.ModeReaction:
		return MaxReactionAttempts
	default:
		return 0
	}
}

// WordScore rewards earlier solves: 70 for the first guess, 10 less per extra guess, floor 10.
func WordScore(attemptNumber int, won bool) int {
	if !won {
		return 0
	}
	return max(10, 70-(attemptNumber-1)*10)
}

func MemoryScore(moves, mistakes int, durationMs int64) int {
	score := 1500 - int64(moves)*8 - int64(mistakes)*12 - durationMs/40
	return int(max(100, score))
}

func ReactionScore(durationMs int64) int {
	return int(max(0, 5000-durationMs))
}
