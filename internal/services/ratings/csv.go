package ratings

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/internal/models"
	"github.com/killallgit/vad-annotator/internal/rating"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

// CSVFields is the column layout of exported rating files
var CSVFields = []string{"clip_id", "filename", "valence", "arousal", "dominance", "annotator", "timestamp"}

// timestampLayouts are the timestamp forms accepted on import
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	models.TimestampLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Export writes one CSV per annotator into dir, or only annotatorID's
// file when it is set
func (s *ServiceImpl) Export(ctx context.Context, dir, annotatorID string) ([]ExportResult, error) {
	var keys []string
	if annotatorID != "" {
		key, err := annotatorKey(annotatorID)
		if err != nil {
			return nil, err
		}
		keys = []string{key}
	} else {
		all, err := s.repository.ListAnnotatorKeys(ctx)
		if err != nil {
			return nil, apperrors.DatabaseError("list annotators", err)
		}
		keys = all
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "creating export directory")
	}

	results := make([]ExportResult, 0, len(keys))
	for _, key := range keys {
		rows, err := s.repository.GetRatingsByAnnotator(ctx, key)
		if err != nil {
			return nil, apperrors.DatabaseError("load ratings", err)
		}

		path := filepath.Join(dir, key+".csv")
		if err := writeCSVFile(path, rows); err != nil {
			return nil, err
		}
		results = append(results, ExportResult{Annotator: key, Path: path, Rows: len(rows)})
		s.log.WithFields(logrus.Fields{"annotator": key, "path": path, "rows": len(rows)}).Info("ratings exported")
	}
	return results, nil
}

func writeCSVFile(path string, rows []models.Rating) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "creating export file")
	}
	defer f.Close()

	if err := WriteCSV(f, rows); err != nil {
		return err
	}
	return f.Close()
}

// WriteCSV writes rows with the export header
func WriteCSV(w io.Writer, rows []models.Rating) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVFields); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "writing csv header")
	}
	for _, r := range rows {
		record := []string{
			r.ClipID(),
			r.Filename,
			strconv.Itoa(r.Valence),
			strconv.Itoa(r.Arousal),
			strconv.Itoa(r.Dominance),
			r.AnnotatorID,
			r.Timestamp(),
		}
		if err := cw.Write(record); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeInternal, "writing csv row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "writing csv")
	}
	return nil
}

// Import loads a rating CSV of any column layout. The file name (without
// extension) names the annotator for rows that do not carry one.
func (s *ServiceImpl) Import(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, fmt.Sprintf("opening %s", path))
	}
	defer f.Close()

	fallback := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rows, skipped, err := ReadCSV(f, fallback)
	if err != nil {
		return nil, err
	}

	if err := s.repository.CreateRatings(ctx, rows); err != nil {
		return nil, apperrors.DatabaseError("import ratings", err)
	}

	s.log.WithFields(logrus.Fields{"path": path, "imported": len(rows), "skipped": skipped}).Info("ratings imported")
	return &ImportResult{Path: path, Imported: len(rows), Skipped: skipped}, nil
}

// ReadCSV parses rating rows from r, normalizing legacy layouts. Rows with
// no filename or with scores outside 1..9 are counted as skipped.
func ReadCSV(r io.Reader, fallbackAnnotator string) ([]models.Rating, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading csv header")
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	get := func(record []string, name string) string {
		if i, ok := columns[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	var rows []models.Rating
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading csv row")
		}

		row, ok := normalizeRow(
			get(record, "clip_id"),
			get(record, "filename"),
			[3]string{get(record, "valence"), get(record, "arousal"), get(record, "dominance")},
			firstNonEmpty(get(record, "annotator"), get(record, "annotator_id"), fallbackAnnotator),
			get(record, "timestamp"),
		)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func normalizeRow(clipID, filename string, scores [3]string, annotator, timestamp string) (models.Rating, bool) {
	if filename == "" {
		return models.Rating{}, false
	}
	key := models.SanitizeAnnotatorID(annotator)
	if key == "" {
		return models.Rating{}, false
	}

	var values [3]int
	for i, raw := range scores {
		v, err := strconv.Atoi(raw)
		if err != nil || !rating.ValidScore(v) {
			return models.Rating{}, false
		}
		values[i] = v
	}

	clipNumber, err := strconv.Atoi(clipID)
	if err != nil || clipNumber < 0 {
		clipNumber = 0
	}

	row := models.Rating{
		AnnotatorKey: key,
		AnnotatorID:  annotator,
		Filename:     filename,
		ClipNumber:   clipNumber,
		Valence:      values[0],
		Arousal:      values[1],
		Dominance:    values[2],
	}
	if timestamp != "" {
		if at, ok := parseTimestamp(timestamp); ok {
			row.RatedAt = at
		} else {
			row.RawTimestamp = timestamp
		}
	}
	return row, true
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
