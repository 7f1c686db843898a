// Package transcript defines the segment record shared by the enrichment,
// export and archive stages.
package transcript

// Sentiment labels assigned by enrichment
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Segment is one time-bounded span of transcript text. Start and End are
// seconds from the beginning of the media file, End >= Start. Sentiment is
// empty until enrichment ran (and stays empty when the scorer failed for
// this segment). Tones holds at most two tags in priority order.
type Segment struct {
	Start     float64  `json:"start"`
	End       float64  `json:"end"`
	Text      string   `json:"text"`
	Sentiment string   `json:"sentiment,omitempty"`
	Tones     []string `json:"tones,omitempty"`
}
