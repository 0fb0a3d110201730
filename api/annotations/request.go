package annotations

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/killallgit/vad-annotator/internal/services/ratings"
	apperrors "github.com/killallgit/vad-annotator/pkg/errors"
)

// Messages returned to clients verbatim
const (
	MsgNotJSONObject = "Request body must be a JSON object"
)

// requiredFields are checked in this order; the first absent one is reported
var requiredFields = []string{"annotator_id", "filename", "valence", "arousal", "dominance"}

// ParseAnnotateRequest decodes and checks an annotate body. The body must be
// exactly one JSON object. Scores may be JSON integers (3 or 3.0) or strings
// holding an integer; fractional scores are rejected, not truncated.
func ParseAnnotateRequest(body []byte) (ratings.SubmitRequest, error) {
	var req ratings.SubmitRequest

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return req, apperrors.New(apperrors.ErrCodeInvalidInput, MsgNotJSONObject)
	}

	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			return req, apperrors.MissingFieldError(name)
		}
	}

	var scores [3]int
	for i, name := range []string{"valence", "arousal", "dominance"} {
		v, ok := parseScore(fields[name])
		if !ok {
			return req, apperrors.ValidationError(name, ratings.MsgRatingsOutOfRange)
		}
		scores[i] = v
	}

	annotator, err := stringField(fields, "annotator_id")
	if err != nil {
		return req, err
	}
	filename, err := stringField(fields, "filename")
	if err != nil {
		return req, err
	}

	req.AnnotatorID = annotator
	req.Filename = filename
	req.Valence, req.Arousal, req.Dominance = scores[0], scores[1], scores[2]
	return req, nil
}

// parseScore accepts a JSON number with no fractional part or a string
// holding a base-10 integer
func parseScore(raw json.RawMessage) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
			return int(f), true
		}
		return 0, false
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	var s string
	if err := json.Unmarshal(fields[name], &s); err != nil {
		return "", apperrors.ValidationError(name, "Field "+name+" must be a string")
	}
	return s, nil
}
