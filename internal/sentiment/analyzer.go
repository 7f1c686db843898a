package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/msto63/mTA/internal/transcript"
)

// Result is the annotation attached to one segment's text
type Result struct {
	// Label is one of transcript.SentimentPositive/Negative/Neutral
	Label string

	// Tones holds at most two tone tags in priority order
	Tones []string
}

// Scorer scores one piece of text. Deterministic for identical text.
type Scorer interface {
	Score(ctx context.Context, text string) (Result, error)
}

// Analyzer is a CPU-only lexicon scorer: word valences with negation
// handling for polarity, plus a prioritized pattern table for tones.
// No model download, no external process.
type Analyzer struct {
	tones []toneMatcher
}

// NewAnalyzer creates an analyzer with the built-in tone table
func NewAnalyzer() *Analyzer {
	a, _ := NewAnalyzerWithTones(DefaultToneRules())
	return a
}

// NewAnalyzerWithTones creates an analyzer with a custom tone table,
// keeping the declared rule order as match priority
func NewAnalyzerWithTones(rules []ToneRule) (*Analyzer, error) {
	matchers, err := compileToneRules(rules)
	if err != nil {
		return nil, err
	}
	return &Analyzer{tones: matchers}, nil
}

// Score labels the text with a polarity and up to two tone tags
func (a *Analyzer) Score(ctx context.Context, text string) (Result, error) {
	compound := polarity(text)

	label := transcript.SentimentNeutral
	if compound >= 0.3 {
		label = transcript.SentimentPositive
	} else if compound <= -0.3 {
		label = transcript.SentimentNegative
	}

	return Result{
		Label: label,
		Tones: a.toneTags(text),
	}, nil
}

// polarity returns a normalized score in (-1, 1) from the valence lexicon.
// A negator directly before a scored word flips its sign, intensifiers
// scale it up.
func polarity(text string) float64 {
	words := strings.Fields(strings.ToLower(text))

	var sum float64
	for i, raw := range words {
		word := strings.Trim(raw, ".,!?;:\"'()[]{}")
		valence, ok := valences[word]
		if !ok {
			continue
		}

		scale := 1.0
		if i > 0 {
			prev := strings.Trim(words[i-1], ".,!?;:\"'()[]{}")
			if negators[prev] {
				scale = -0.74
			} else if intensifiers[prev] {
				scale = 1.3
			}
		}
		sum += valence * scale
	}

	if sum == 0 {
		return 0
	}
	// Normalize into (-1, 1); the constant damps short texts less than
	// long ones
	return sum / math.Sqrt(sum*sum+15)
}

// valences maps lexicon words to a signed strength. Word lists cover
// English and German, like the rest of the tool.
var valences = map[string]float64{
	// positive, English
	"good": 1.9, "great": 3.1, "excellent": 3.2, "amazing": 2.8,
	"wonderful": 2.7, "fantastic": 2.6, "love": 3.2, "loved": 2.9,
	"happy": 2.7, "glad": 2.0, "pleased": 1.9, "delighted": 2.9,
	"thrilled": 2.9, "excited": 2.3, "best": 3.2, "perfect": 2.7,
	"beautiful": 2.9, "awesome": 3.1, "nice": 1.8, "thanks": 1.9,
	"thank": 1.9, "win": 2.4, "won": 2.4, "success": 2.7,
	// negative, English
	"bad": -2.5, "terrible": -3.0, "awful": -2.9, "horrible": -2.9,
	"disappointing": -2.2, "worst": -3.1, "hate": -2.7, "hated": -2.6,
	"sad": -2.1, "ugly": -2.3, "poor": -1.9, "failure": -2.5,
	"problem": -1.7, "broken": -1.9, "wrong": -1.8, "angry": -2.3,
	"annoying": -2.0, "annoyed": -1.9, "frustrating": -2.2,
	"frustrated": -2.1, "upset": -2.0, "miserable": -2.8, "lost": -1.3,
	// positive, German
	"gut": 1.9, "super": 2.9, "toll": 2.7, "ausgezeichnet": 3.2,
	"fantastisch": 2.6, "wunderbar": 2.7, "perfekt": 2.7, "danke": 1.9,
	"froh": 2.0, "glücklich": 2.7,
	// negative, German
	"schlecht": -2.5, "schrecklich": -3.0, "furchtbar": -2.9,
	"miserabel": -2.8, "enttäuschend": -2.2, "traurig": -2.1,
	"wütend": -2.3, "ärgerlich": -2.0, "kaputt": -1.9, "falsch": -1.8,
}

// negators flip the following word's valence
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nobody": true, "none": true, "cannot": true, "can't": true,
	"don't": true, "doesn't": true, "didn't": true, "isn't": true,
	"wasn't": true, "won't": true, "wouldn't": true,
	"nicht": true, "kein": true, "keine": true, "nie": true, "niemals": true,
}

// intensifiers scale the following word's valence up
var intensifiers = map[string]bool{
	"very": true, "really": true, "extremely": true, "totally": true,
	"absolutely": true, "so": true,
	"sehr": true, "wirklich": true, "extrem": true, "total": true,
	"absolut": true, "völlig": true,
}
