package clips

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/internal/services/cache"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

const listCacheKey = "clips:list"

// Catalog lists and resolves the audio clips in one directory
type Catalog struct {
	dir        string
	extensions map[string]bool
	cache      cache.Cache
	ttl        time.Duration
	log        logrus.FieldLogger
}

// Config holds configuration for a clip catalog
type Config struct {
	Dir        string
	Extensions []string
	Cache      cache.Cache // optional
	CacheTTL   time.Duration
	Logger     logrus.FieldLogger
}

// NewCatalog creates a catalog over cfg.Dir. Extensions are matched
// case-insensitively and may be given with or without the leading dot.
func NewCatalog(cfg Config) *Catalog {
	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = true
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Catalog{
		dir:        cfg.Dir,
		extensions: exts,
		cache:      cfg.Cache,
		ttl:        cfg.CacheTTL,
		log:        cfg.Logger.WithField("component", "clips"),
	}
}

// Dir returns the directory the catalog serves
func (c *Catalog) Dir() string {
	return c.dir
}

// List returns clip filenames sorted by name. A missing directory is an
// empty catalog.
func (c *Catalog) List(ctx context.Context) ([]string, error) {
	if c.cache != nil {
		if raw, ok := c.cache.Get(ctx, listCacheKey); ok {
			var cached []string
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	clips, err := c.scan()
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if raw, err := json.Marshal(clips); err == nil {
			_ = c.cache.Set(ctx, listCacheKey, raw, c.ttl)
		}
	}
	return clips, nil
}

func (c *Catalog) scan() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.WithField("dir", c.dir).Warn("clip directory does not exist")
			return []string{}, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "listing clip directory")
	}

	clips := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if c.extensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			clips = append(clips, entry.Name())
		}
	}
	sort.Strings(clips)

	c.log.WithField("count", len(clips)).Debug("scanned clip directory")
	return clips, nil
}

// Invalidate drops the cached listing
func (c *Catalog) Invalidate(ctx context.Context) {
	if c.cache != nil {
		_ = c.cache.Delete(ctx, listCacheKey)
	}
}

// Position returns the 1-based position of filename in the catalog, or 0
// when it is not listed
func (c *Catalog) Position(ctx context.Context, filename string) (int, error) {
	clips, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	for i, name := range clips {
		if name == filename {
			return i + 1, nil
		}
	}
	return 0, nil
}

// Resolve maps a requested filename to a regular file inside the clip
// directory. Anything that would escape the directory is reported as not
// found.
func (c *Catalog) Resolve(filename string) (string, error) {
	name := strings.TrimPrefix(filename, "/")
	if name == "" || strings.Contains(name, "\\") {
		return "", apperrors.NotFound("clip", filename)
	}

	base, err := filepath.Abs(c.dir)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "resolving clip directory")
	}
	full := filepath.Join(base, filepath.FromSlash(name))
	rel, err := filepath.Rel(base, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", apperrors.NotFound("clip", filename)
	}

	info, err := os.Stat(full)
	if err != nil || !info.Mode().IsRegular() {
		return "", apperrors.NotFound("clip", filename)
	}
	return full, nil
}
