package perception

import "go.uber.org/zap"

// Engine composes the intent classifier, emotion classifier, and entity
// extractor into a single pass over the text.
type Engine struct {
	scorer SentimentScorer
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSentiment installs a sentiment scorer for emotion refinement.
// Without one the lexical baseline is final.
func WithSentiment(s SentimentScorer) Option {
	return func(e *Engine) { e.scorer = s }
}

// WithLogger installs a logger; defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds a perception engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Perceive classifies one message and extracts its entities. It never fails:
// a text matching nothing yields generic_complaint/neutral with no entities.
func (e *Engine) Perceive(text string) *Result {
	intent := classifyIntent(text)
	emotion := classifyEmotion(text, e.scorer)
	entities := extractEntities(text, intent)

	churnRisk := intent == IntentCancellationThreat

	urgency := UrgencyLow
	switch {
	case churnRisk || emotion == EmotionAngry:
		urgency = UrgencyHigh
	case intent == IntentBillingIssue || intent == IntentRefundRequest || intent == IntentDefectReport:
		urgency = UrgencyMedium
	}

	result := &Result{
		Emotion:   emotion,
		Intent:    intent,
		Entities:  entities,
		ChurnRisk: churnRisk,
		Urgency:   urgency,
	}

	e.logger.Debug("perceived message",
		zap.String("intent", string(intent)),
		zap.String("emotion", string(emotion)),
		zap.String("urgency", string(urgency)),
		zap.Bool("churn_risk", churnRisk),
		zap.Int("entities", len(entities)),
	)
	return result
}
