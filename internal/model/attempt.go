package model

import (
	"time"

	"github.com/google/uuid"
)

type LetterState string

const (
	LetterCorrect LetterState = "correct"
	LetterPresent LetterState = "present"
	LetterMiss    LetterState = "miss"
)

type Attempt struct {
	ID            uuid.UUID
	ChallengeID   uuid.UUID
	UserID        int64
	AttemptNumber int
	Won           bool
	Score         int
	DurationMs    *int64
	Payload       AttemptPayload
	CreatedAt     time.Time
}

// AttemptPayload is keyed by mode like Content.
type AttemptPayload struct {
	Word     *WordPayload     `json:"word,omitempty"`
	Memory   *MemoryPayload   `json:"memory,omitempty"`
	Reaction *ReactionPayload `json:"reaction,omitempty"`
}

type WordPayload struct {
	Guess    string        `json:"guess"`
	Feedback []LetterState `json:"feedback"`
}

type MemoryPayload struct {
	Moves    int `json:"moves"`
	Mistakes int `json:"mistakes"`
}

type ReactionPayload struct{}

// LeaderboardAttempt is the slice of an attempt row needed for ranking.
type LeaderboardAttempt struct {
	UserID     int64
	Won        bool
	Score      int
	DurationMs *int64
	CreatedAt  time.Time
}
