package ratings

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/vad-annotator/internal/models"
)

func TestWriteCSV(t *testing.T) {
	rows := []models.Rating{
		{ClipNumber: 2, Filename: "b.wav", Valence: 3, Arousal: 5, Dominance: 7, AnnotatorID: "ann1",
			RatedAt: time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)},
		{ClipNumber: 0, Filename: "x, y.wav", Valence: 1, Arousal: 2, Dominance: 9, AnnotatorID: "ann1",
			RawTimestamp: "sometime"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	want := "clip_id,filename,valence,arousal,dominance,annotator,timestamp\n" +
		"002,b.wav,3,5,7,ann1,2024-05-01T12:30:45\n" +
		"000,\"x, y.wav\",1,2,9,ann1,sometime\n"
	assert.Equal(t, want, buf.String())
}

func TestReadCSVCurrentLayout(t *testing.T) {
	in := "clip_id,filename,valence,arousal,dominance,annotator,timestamp\n" +
		"002,b.wav,3,5,7,ann1,2024-05-01T12:30:45\n"

	rows, skipped, err := ReadCSV(strings.NewReader(in), "file")
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	require.Len(t, rows, 1)
	r := rows[0]
	assert.Equal(t, 2, r.ClipNumber)
	assert.Equal(t, "b.wav", r.Filename)
	assert.Equal(t, "ann1", r.AnnotatorKey)
	assert.Equal(t, "2024-05-01T12:30:45", r.Timestamp())
}

func TestReadCSVLegacyLayouts(t *testing.T) {
	in := "\ufefffilename,annotator_id,valence,arousal,dominance,timestamp,clip_id\n" +
		"a.wav,old-1,1,2,3,2024-05-01 08:00:00.123456,x\n" +
		",old-1,1,2,3,,001\n" +
		"c.wav,,4,5,6,not a date,-3\n" +
		"d.wav,old-1,4,,6,,4\n" +
		"e.wav,old-1,4,5,6,2024-05-01T09:10:11+02:00,5\n"

	rows, skipped, err := ReadCSV(strings.NewReader(in), "legacy")
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, rows, 3)

	assert.Equal(t, "a.wav", rows[0].Filename)
	assert.Equal(t, "old-1", rows[0].AnnotatorID)
	assert.Equal(t, "000", rows[0].ClipID())
	assert.Equal(t, "2024-05-01T08:00:00", rows[0].Timestamp())

	// Annotator falls back to the file name; bad timestamps are kept as-is
	assert.Equal(t, "legacy", rows[1].AnnotatorKey)
	assert.Equal(t, "not a date", rows[1].Timestamp())
	assert.Equal(t, "000", rows[1].ClipID())

	// Zoned timestamps are rendered in UTC
	assert.Equal(t, "2024-05-01T07:10:11", rows[2].Timestamp())
	assert.Equal(t, "005", rows[2].ClipID())
}

func TestReadCSVEmpty(t *testing.T) {
	rows, skipped, err := ReadCSV(strings.NewReader(""), "x")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0, skipped)
}

func TestServiceImpl_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewService(NewRepository(db), testClips, nil)

	_, err := service.Submit(ctx, SubmitRequest{AnnotatorID: "ann1", Filename: "b.wav", Valence: 3, Arousal: 5, Dominance: 7})
	require.NoError(t, err)
	_, err = service.Submit(ctx, SubmitRequest{AnnotatorID: "ann2", Filename: "a.wav", Valence: 9, Arousal: 9, Dominance: 9})
	require.NoError(t, err)

	dir := t.TempDir()
	results, err := service.Export(ctx, dir, "")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "ann1", results[0].Annotator)
	assert.Equal(t, 1, results[0].Rows)

	content, err := os.ReadFile(filepath.Join(dir, "ann1.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "clip_id,filename,valence,arousal,dominance,annotator,timestamp\n002,b.wav,3,5,7,ann1,"))

	only, err := service.Export(ctx, t.TempDir(), "ann2")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "ann2", only[0].Annotator)

	// Import into a fresh database
	fresh := NewService(NewRepository(setupTestDB(t)), testClips, nil)
	imported, err := fresh.Import(ctx, filepath.Join(dir, "ann1.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Imported)
	assert.Equal(t, 0, imported.Skipped)

	progress, err := fresh.GetProgress(ctx, "ann1")
	require.NoError(t, err)
	assert.Equal(t, Progress{Total: 3, Completed: 1, NextIndex: 0}, *progress)
}

func TestServiceImpl_ImportMissingFile(t *testing.T) {
	service := NewService(new(MockRepository), testClips, nil)
	_, err := service.Import(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
