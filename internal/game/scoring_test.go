package game

import (
	"testing"

	"gamelog_daily/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestWordScore(t *testing.T) {
	assert.Equal(t, 70, WordScore(1, true))
	assert.Equal(t, 60, WordScore(2, true))
	assert.Equal(t, 30, WordScore(5, true))
	assert.Equal(t, 10, WordScore(9, true))
	assert.Equal(t, 0, WordScore(1, false))
}

func TestMemoryScore(t *testing.T) {
	assert.Equal(t, 1296, MemoryScore(10, 2, 4000))
	assert.Equal(t, 1500, MemoryScore(0, 0, 0))
	assert.Equal(t, 1499, MemoryScore(0, 0, 79))
	assert.Equal(t, 100, MemoryScore(200, 50, 120000))
}

func TestReactionScore(t *testing.T) {
	assert.Equal(t, 4750, ReactionScore(250))
	assert.Equal(t, 0, ReactionScore(5000))
	assert.Equal(t, 0, ReactionScore(9000))
}

func TestMaxAttempts(t *testing.T) {
	assert.Equal(t, 5, MaxAttempts(model.ModeWord))
	assert.Equal(t, 1, MaxAttempts(model.ModeMemory))
	assert.Equal(t, 1, MaxAttempts(model.ModeReaction))
	assert.Equal(t, 0, MaxAttempts(model.Mode("chess")))
}
