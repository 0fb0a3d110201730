package ffmpeg

// AudioMetadata is what ffprobe reports about a clip
type AudioMetadata struct {
	Duration   float64 `json:"duration"`    // seconds
	SampleRate int     `json:"sample_rate"` // Hz
	Channels   int     `json:"channels"`
	Format     string  `json:"format"` // container, e.g. "wav", "mp3"
	Codec      string  `json:"codec"`
}
