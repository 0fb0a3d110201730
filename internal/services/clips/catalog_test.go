package clips

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/vad-annotator/internal/services/cache"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

var testExtensions = []string{".wav", ".mp3", ".ogg", ".flac", "m4a"}

func touch(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
}

func TestCatalog_List(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.wav", "a.MP3", "c.m4a", "notes.txt", "d.flac", "e.ogg"} {
		touch(t, dir, name, []byte("x"))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.wav"), 0755))

	catalog := NewCatalog(Config{Dir: dir, Extensions: testExtensions})
	clips, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.MP3", "b.wav", "c.m4a", "d.flac", "e.ogg"}, clips)
}

func TestCatalog_ListMissingDir(t *testing.T) {
	catalog := NewCatalog(Config{Dir: filepath.Join(t.TempDir(), "nope"), Extensions: testExtensions})
	clips, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, clips)
	assert.Empty(t, clips)
}

func TestCatalog_ListCached(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	touch(t, dir, "a.wav", []byte("x"))

	mc := cache.NewMemoryCache(10, 0)
	catalog := NewCatalog(Config{Dir: dir, Extensions: testExtensions, Cache: mc, CacheTTL: time.Hour})

	first, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav"}, first)

	// New files stay hidden until the cache is invalidated
	touch(t, dir, "b.wav", []byte("x"))
	cached, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav"}, cached)

	catalog.Invalidate(ctx)
	fresh, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.wav", "b.wav"}, fresh)
}

func TestCatalog_Position(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	touch(t, dir, "a.wav", []byte("x"))
	touch(t, dir, "b.wav", []byte("x"))
	catalog := NewCatalog(Config{Dir: dir, Extensions: testExtensions})

	pos, err := catalog.Position(ctx, "b.wav")
	require.NoError(t, err)
	assert.Equal(t, 2, pos)

	pos, err = catalog.Position(ctx, "zzz.wav")
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
}

func TestCatalog_Resolve(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wav", []byte("x"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))
	touch(t, filepath.Join(dir, "nested"), "b.wav", []byte("x"))
	outside := filepath.Join(filepath.Dir(dir), "secret.wav")
	_ = os.WriteFile(outside, []byte("x"), 0644)
	t.Cleanup(func() { _ = os.Remove(outside) })

	catalog := NewCatalog(Config{Dir: dir, Extensions: testExtensions})

	path, err := catalog.Resolve("a.wav")
	require.NoError(t, err)
	assert.Equal(t, "a.wav", filepath.Base(path))

	path, err = catalog.Resolve("/nested/b.wav")
	require.NoError(t, err)
	assert.Equal(t, "b.wav", filepath.Base(path))

	for _, bad := range []string{"", "/", "nested", "missing.wav", "../secret.wav", "nested/../../secret.wav", "..\\secret.wav"} {
		t.Run(bad, func(t *testing.T) {
			_, err := catalog.Resolve(bad)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound), "expected not found for %q, got %v", bad, err)
		})
	}
}

func TestContentType(t *testing.T) {
	dir := t.TempDir()

	wav := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 32)...)
	touch(t, dir, "clip.bin", wav)
	assert.Equal(t, "audio/x-wav", ContentType(filepath.Join(dir, "clip.bin")))

	mp3 := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 32)...)
	touch(t, dir, "clip.mp3", mp3)
	assert.Equal(t, "audio/mpeg", ContentType(filepath.Join(dir, "clip.mp3")))

	touch(t, dir, "clip.zzz", []byte("plain"))
	assert.Equal(t, "application/octet-stream", ContentType(filepath.Join(dir, "clip.zzz")))
}
