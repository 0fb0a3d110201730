package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_SubmitGating(t *testing.T) {
	tests := []struct {
		name   string
		scores map[Dimension]int
		ready  bool
	}{
		{name: "nothing rated", scores: map[Dimension]int{}, ready: false},
		{name: "valence only", scores: map[Dimension]int{Valence: 5}, ready: false},
		{name: "missing dominance", scores: map[Dimension]int{Valence: 1, Arousal: 9}, ready: false},
		{name: "missing valence", scores: map[Dimension]int{Arousal: 2, Dominance: 3}, ready: false},
		{name: "all rated", scores: map[Dimension]int{Valence: 1, Arousal: 5, Dominance: 9}, ready: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			for d, v := range tt.scores {
				require.NoError(t, c.SelectRating(d, v))
			}
			assert.Equal(t, tt.ready, c.Ready())
			assert.Equal(t, tt.ready, c.View().Ready)
		})
	}
}

func TestController_SelectRatingRejectsInvalidInput(t *testing.T) {
	c := NewController()

	assert.ErrorIs(t, c.SelectRating(Valence, 0), ErrScoreOutOfRange)
	assert.ErrorIs(t, c.SelectRating(Valence, 10), ErrScoreOutOfRange)
	assert.ErrorIs(t, c.SelectRating(Dimension(7), 3), ErrUnknownDimension)
	assert.Equal(t, Vector{}, c.Vector())
}

func TestController_SelectRatingReplacesSelection(t *testing.T) {
	c := NewController()
	require.NoError(t, c.SelectRating(Arousal, 3))
	require.NoError(t, c.SelectRating(Arousal, 7))

	row := c.View().Rows[Arousal]
	assert.Equal(t, 7, row.Selected)
}

func TestController_AdvanceActiveDimension(t *testing.T) {
	t.Run("valence then dominance lands on arousal", func(t *testing.T) {
		c := NewController()
		require.NoError(t, c.RateActive(4))
		assert.Equal(t, Arousal, c.Active())

		require.NoError(t, c.SetActiveDimension(Dominance))
		require.NoError(t, c.RateActive(6))
		assert.Equal(t, Arousal, c.Active())
	})

	t.Run("stays put when all rated", func(t *testing.T) {
		c := NewController()
		require.NoError(t, c.SelectRating(Valence, 1))
		require.NoError(t, c.SelectRating(Arousal, 2))
		require.NoError(t, c.SelectRating(Dominance, 3))
		require.NoError(t, c.SetActiveDimension(Arousal))

		c.AdvanceActiveDimension()
		assert.Equal(t, Arousal, c.Active())
	})

	t.Run("stays put when only the active one is unset", func(t *testing.T) {
		c := NewController()
		require.NoError(t, c.SelectRating(Valence, 1))
		require.NoError(t, c.SelectRating(Dominance, 3))
		require.NoError(t, c.SetActiveDimension(Arousal))

		c.AdvanceActiveDimension()
		assert.Equal(t, Arousal, c.Active())
	})

	t.Run("every rating order ends on an unset dimension while one exists", func(t *testing.T) {
		orders := [][]Dimension{
			{Valence, Arousal, Dominance},
			{Valence, Dominance, Arousal},
			{Arousal, Valence, Dominance},
			{Arousal, Dominance, Valence},
			{Dominance, Valence, Arousal},
			{Dominance, Arousal, Valence},
		}
		for _, order := range orders {
			c := NewController()
			for i, d := range order {
				require.NoError(t, c.SetActiveDimension(d))
				require.NoError(t, c.RateActive(i+1))
				if i < len(order)-1 {
					_, set := c.Vector().Get(c.Active())
					assert.False(t, set, "order %v step %d landed on a rated dimension", order, i)
				}
			}
			assert.Equal(t, order[len(order)-1], c.Active())
		}
	})
}

func TestController_CycleActiveDimension(t *testing.T) {
	c := NewController()
	require.NoError(t, c.SelectRating(Arousal, 5))

	var visited []Dimension
	for i := 0; i < 5; i++ {
		c.CycleActiveDimension()
		visited = append(visited, c.Active())
	}
	assert.Equal(t, []Dimension{Arousal, Dominance, Valence, Arousal, Dominance}, visited)
}

func TestController_Reset(t *testing.T) {
	c := NewController()
	require.NoError(t, c.SelectRating(Valence, 2))
	require.NoError(t, c.SelectRating(Arousal, 2))
	require.NoError(t, c.SetActiveDimension(Dominance))

	c.Reset()

	view := c.View()
	assert.False(t, view.Ready)
	assert.Equal(t, Valence, c.Active())
	for _, row := range view.Rows {
		assert.Zero(t, row.Selected)
		assert.Equal(t, row.Dimension == Valence, row.Active)
	}
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("dominance")
	require.NoError(t, err)
	assert.Equal(t, Dominance, d)

	_, err = ParseDimension("pleasure")
	assert.ErrorIs(t, err, ErrUnknownDimension)
}
