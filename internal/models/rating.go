package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimestampLayout is how rating times are written to CSV: ISO-8601 to the
// second, no zone
const TimestampLayout = "2006-01-02T15:04:05"

// Rating is one saved valence/arousal/dominance vector for one clip
type Rating struct {
	gorm.Model
	UUID         string `json:"uuid" gorm:"uniqueIndex"`
	AnnotatorKey string `json:"annotator_key" gorm:"not null;index"` // sanitized id, groups rows per annotator
	AnnotatorID  string `json:"annotator" gorm:"not null"`           // id as submitted
	Filename     string `json:"filename" gorm:"not null;index"`
	ClipNumber   int    `json:"clip_number"` // 1-based catalog position, 0 when unknown
	Valence      int    `json:"valence" gorm:"not null"`
	Arousal      int    `json:"arousal" gorm:"not null"`
	Dominance    int    `json:"dominance" gorm:"not null"`

	RatedAt time.Time `json:"rated_at" gorm:"not null"`
	// RawTimestamp keeps an imported timestamp that could not be parsed
	RawTimestamp string `json:"raw_timestamp,omitempty"`
}

// BeforeCreate generates a UUID and rating time before insert
func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.UUID == "" {
		r.UUID = uuid.New().String()
	}
	if r.RatedAt.IsZero() && r.RawTimestamp == "" {
		r.RatedAt = time.Now().UTC()
	}
	return nil
}

// TableName returns the table name for the Rating model
func (Rating) TableName() string {
	return "ratings"
}

// ClipID renders the clip number the way exports show it: three digits,
// "000" when unknown
func (r *Rating) ClipID() string {
	if r.ClipNumber <= 0 {
		return "000"
	}
	return fmt.Sprintf("%03d", r.ClipNumber)
}

// Timestamp renders the rating time for export
func (r *Rating) Timestamp() string {
	if r.RawTimestamp != "" {
		return r.RawTimestamp
	}
	if r.RatedAt.IsZero() {
		return ""
	}
	return r.RatedAt.UTC().Format(TimestampLayout)
}

// SanitizeAnnotatorID keeps letters, digits, '-' and '_'
func SanitizeAnnotatorID(id string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, id)
}

// All lists every model managed by migrations
func All() []any {
	return []any{&Rating{}}
}
