package model

import (
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeWord     Mode = "word"
	ModeMemory   Mode = "memory"
	ModeReaction Mode = "reaction"
)

// Modes lists the supported modes in presentation order.
var Modes = []Mode{ModeWord, ModeMemory, ModeReaction}

func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

type Challenge struct {
	ID             uuid.UUID
	Date           time.Time
	Mode           Mode
	Content        Content
	ContentVersion int
	CreatedAt      time.Time
}

// Content is keyed by mode: exactly one of the pointers is set.
type Content struct {
	Word     *WordContent     `json:"word,omitempty"`
	Memory   *MemoryContent   `json:"memory,omitempty"`
	Reaction *ReactionContent `json:"reaction,omitempty"`
}

type WordContent struct {
	Solution string `json:"solution"`
	Hint     string `json:"hint"`
	Theme    string `json:"theme"`
	Length   int    `json:"length"`
}

type MemoryContent struct {
	DeckID string   `json:"deckId"`
	Title  string   `json:"title"`
	Cards  []string `json:"cards"`
}

type ReactionContent struct {
	MinDelayMs int `json:"minDelayMs"`
	MaxDelayMs int `json:"maxDelayMs"`
}
