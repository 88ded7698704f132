package model

import "time"

type SubmissionResult struct {
	Mode              Mode
	Attempt           *Attempt
	Feedback          []LetterState
	AttemptsUsed      int
	AttemptsRemaining int
	Resolved          bool
	Solution          *string
	Streak            int
}

type DailySummary struct {
	Date       time.Time
	Challenges []*ChallengeSummary
}

type ChallengeSummary struct {
	ChallengeID       string
	Mode              Mode
	MaxAttempts       int
	Word              *PublicWordContent
	Memory            *MemoryContent
	Reaction          *ReactionContent
	Attempts          []*Attempt
	AttemptsUsed      int
	AttemptsRemaining int
	Completed         bool
	Resolved          bool
	Solution          *string
	BestScore         *int
	Streak            int
}

// PublicWordContent is the word challenge without its solution.
type PublicWordContent struct {
	Hint   string
	Theme  string
	Length int
}
