package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/vad-annotator/internal/rating"
	"github.com/killallgit/vad-annotator/internal/session"
)

func TestParseCommandLogin(t *testing.T) {
	ev, err := ParseCommand("  ann1 ", session.ScreenLogin)
	require.NoError(t, err)
	assert.Equal(t, session.LoginEvent{AnnotatorID: "ann1"}, ev)

	ev, err = ParseCommand("   ", session.ScreenLogin)
	require.NoError(t, err)
	assert.Nil(t, ev)

	// Command words are annotator ids on the login screen
	ev, err = ParseCommand("q", session.ScreenLogin)
	require.NoError(t, err)
	assert.Equal(t, session.LoginEvent{AnnotatorID: "q"}, ev)
}

func TestParseCommandAnnotation(t *testing.T) {
	tests := []struct {
		line string
		want session.Event
	}{
		{" ", session.KeyEvent{Key: session.KeySpace}},
		{"space", session.KeyEvent{Key: session.KeySpace}},
		{"play", session.KeyEvent{Key: session.KeySpace}},
		{"p", session.ToggleEvent{}},
		{"Toggle", session.ToggleEvent{}},
		{"enter", session.KeyEvent{Key: session.KeyEnter}},
		{"submit", session.KeyEvent{Key: session.KeyEnter}},
		{"tab", session.KeyEvent{Key: session.KeyTab}},
		{"\t", session.KeyEvent{Key: session.KeyTab}},
		{"7", session.KeyEvent{Key: session.Key('7')}},
		{"s 0.5", session.SeekEvent{Ratio: 0.5}},
		{"seek 25%", session.SeekEvent{Ratio: 0.25}},
		{"f d", session.SetActiveDimensionEvent{Dimension: rating.Dominance}},
		{"focus arousal", session.SetActiveDimensionEvent{Dimension: rating.Arousal}},
		{"valence 3", session.SelectRatingEvent{Dimension: rating.Valence, Value: 3}},
		{"a 12", session.SelectRatingEvent{Dimension: rating.Arousal, Value: 12}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ev, err := ParseCommand(tt.line, session.ScreenAnnotation)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ev)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []string{"0", "s", "s abc", "f x", "valence x", "dance", "jump 1 2"}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			_, err := ParseCommand(line, session.ScreenAnnotation)
			assert.ErrorIs(t, err, ErrUnknownCommand)
		})
	}
}

func TestParseCommandQuitAndHelp(t *testing.T) {
	for _, screen := range []session.Screen{session.ScreenAnnotation, session.ScreenDone} {
		_, err := ParseCommand("quit", screen)
		assert.ErrorIs(t, err, ErrQuit)
		_, err = ParseCommand("?", screen)
		assert.ErrorIs(t, err, ErrHelp)
	}
}

func TestParseCommandDoneScreenIgnoresActions(t *testing.T) {
	ev, err := ParseCommand("play", session.ScreenDone)
	require.NoError(t, err)
	assert.Nil(t, ev)
}
