package rating

import (
	"errors"
	"fmt"
)

// Scale bounds for the self-assessment manikin rows
const (
	MinScore = 1
	MaxScore = 9
)

// Dimension is one affective axis being rated
type Dimension int

const (
	Valence Dimension = iota
	Arousal
	Dominance
)

// Dimensions lists every dimension in keyboard order
var Dimensions = []Dimension{Valence, Arousal, Dominance}

var (
	ErrUnknownDimension = errors.New("unknown rating dimension")
	ErrScoreOutOfRange  = fmt.Errorf("rating must be between %d and %d", MinScore, MaxScore)
)

func (d Dimension) String() string {
	switch d {
	case Valence:
		return "valence"
	case Arousal:
		return "arousal"
	case Dominance:
		return "dominance"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Valid reports whether d is one of the three known dimensions
func (d Dimension) Valid() bool {
	return d >= Valence && d <= Dominance
}

// ParseDimension resolves a dimension by name
func ParseDimension(name string) (Dimension, error) {
	for _, d := range Dimensions {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, name)
}

// Vector holds one score per dimension. Zero means unset.
type Vector [3]int

// Get returns the score for d and whether it has been set
func (v Vector) Get(d Dimension) (int, bool) {
	if !d.Valid() {
		return 0, false
	}
	return v[d], v[d] != 0
}

// Complete reports whether every dimension holds a score
func (v Vector) Complete() bool {
	for _, d := range Dimensions {
		if _, ok := v.Get(d); !ok {
			return false
		}
	}
	return true
}

// ValidScore reports whether score is on the 1..9 scale
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
