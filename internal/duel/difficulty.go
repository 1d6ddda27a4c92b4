package duel

import "fmt"

// Difficulty selects both the deck-shape adjustment and the bot strategy
// tier for an AI participant.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// String returns the wire name of the difficulty.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a wire name back to a difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "expert":
		return Expert, nil
	default:
		return 0, fmt.Errorf("unknown difficulty: %q", s)
	}
}

// Difficulties lists all tiers in ascending order of sophistication.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard, Expert}
}
