package game

import (
	"errors"
	"fmt"
	"strings"

	"gamelog_daily/internal/model"
)

var ErrInvalidGuess = errors.New("invalid guess")

// NormalizeGuess upper-cases the guess and checks it is exactly length A-Z letters.
func NormalizeGuess(guess string, length int) (string, error) {
	g := []byte(strings.TrimSpace(guess))
	if len(g) != length {
		return "", fmt.Errorf("%w: expected %d letters", ErrInvalidGuess, length)
	}

	// ASCII letters only, folded byte by byte
	for i, c := range g {
		switch {
		case c >= 'a' && c <= 'z':
			g[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
		default:
			return "", fmt.Errorf("%w: only letters are allowed", ErrInvalidGuess)
		}
	}

	return string(g), nil
}

// EvaluateGuess tags each position of guess against solution. Exact matches are
// resolved first so a repeated letter is never marked present more times than it
// is left unmatched in the solution.
func EvaluateGuess(solution, guess string) ([]model.LetterState, error) {
	if len(guess) != len(solution) {
		return nil, fmt.Errorf("%w: expected %d letters, got %d", ErrInvalidGuess, len(solution), len(guess))
	}

	feedback := make([]model.LetterState, len(solution))
	remaining := make(map[byte]int, len(solution))

	for i := 0; i < len(solution); i++ {
		if guess[i] == solution[i] {
			feedback[i] = model.LetterCorrect
			continue
		}
		remaining[solution[i]]++
	}

	for i := 0; i < len(guess); i++ {
		if feedback[i] == model.LetterCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			feedback[i] = model.LetterPresent
			remaining[guess[i]]--
		} else {
			feedback[i] = model.LetterMiss
		}
	}

	return feedback, nil
}

func IsSolved(solution, guess string) bool {
	return guess == solution
}
