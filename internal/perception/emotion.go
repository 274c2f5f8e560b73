package perception

import "strings"

// Lexical cue sets for the emotion baseline. Extendable per domain; English
// focus only. '?' rides in the confusion set as a token cue, but confusion
// additionally requires a literal question mark in the text.
var (
	angerKeywords = []string{
		"angry", "furious", "unacceptable", "terrible", "hate",
		"ridiculous", "done", "fed up", "awful",
	}
	politeKeywords    = []string{"please", "thank you", "thanks", "kindly"}
	confusionKeywords = []string{
		"don't understand", "confused", "explain", "what is",
		"why is", "how", "?",
	}
)

// SentimentScorer is the optional refinement backstop. Compound returns a
// bounded score in [-1, +1] and false when the scorer is unavailable, in
// which case the lexical baseline stands untouched.
type SentimentScorer interface {
	Compound(text string) (float64, bool)
}

func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// classifyEmotionBaseline produces the deterministic lexical label.
// Priority: confused > angry > polite > neutral. Anger outranks politeness
// when both cues appear (safety bias toward flagging distress).
func classifyEmotionBaseline(text string) Emotion {
	content := strings.ToLower(text)

	switch {
	case containsAny(content, confusionKeywords) && strings.Contains(content, "?"):
		return EmotionConfused
	case containsAny(content, angerKeywords) || strings.Contains(content, "!"):
		return EmotionAngry
	case containsAny(content, politeKeywords):
		return EmotionPolite
	default:
		return EmotionNeutral
	}
}

// classifyEmotion applies the baseline, then the optional sentiment
// refinement. The refinement may only escalate: a strong negative score
// upgrades neutral/polite/confused to angry, a strong positive score
// upgrades neutral to polite. An angry baseline is never downgraded.
func classifyEmotion(text string, scorer SentimentScorer) Emotion {
	emotion := classifyEmotionBaseline(text)
	if scorer == nil || emotion == EmotionAngry {
		return emotion
	}

	compound, ok := scorer.Compound(text)
	if !ok {
		return emotion
	}

	switch {
	case compound <= -0.5:
		emotion = EmotionAngry
	case compound >= 0.5 && emotion == EmotionNeutral:
		emotion = EmotionPolite
	}
	return emotion
}
