package articulation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"caredesk/internal/orchestration"
	"caredesk/internal/perception"
)

// Reply is the final output for one customer message.
type Reply struct {
	Result   *orchestration.Result
	Text     string
	Polished bool
}

// Handler ties the pipeline together: orchestrate, compose, then optionally
// polish. A nil polisher disables the polish step entirely.
type Handler struct {
	engine   *orchestration.Engine
	polisher Polisher
	timeout  time.Duration
	logger   *zap.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithPolisher installs the tone-polish collaborator.
func WithPolisher(p Polisher, timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.polisher = p
		h.timeout = timeout
	}
}

// WithLogger installs a logger; defaults to a nop logger.
func WithLogger(l *zap.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// NewHandler builds a Handler over an orchestration engine.
func NewHandler(engine *orchestration.Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:  engine,
		timeout: 15 * time.Second,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle processes one message end to end. The polish step is skipped for
// praise and missing-part replies to keep their phrasing consistent, and
// any polish failure degrades to the unpolished reply.
func (h *Handler) Handle(ctx context.Context, text string) *Reply {
	result := h.engine.Process(text)
	composed := Compose(result.Perception, result.Actions, result.Facts)

	reply := &Reply{Result: result, Text: composed}

	if h.polisher == nil || skipPolish(result.Perception.Intent) {
		return reply
	}

	polishCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	polished, err := h.polisher.Polish(polishCtx, composed, styleHint(result.Perception.Emotion))
	if err != nil {
		h.logger.Warn("tone polish failed, returning unpolished reply",
			zap.String("request_id", result.RequestID),
			zap.Error(err),
		)
		return reply
	}

	reply.Text = polished
	reply.Polished = true
	return reply
}

// skipPolish reports whether the intent keeps its deterministic phrasing.
func skipPolish(intent perception.Intent) bool {
	return intent == perception.IntentPraise || intent == perception.IntentMissingPart
}

// styleHint tells the polisher how to address the customer's register.
func styleHint(emotion perception.Emotion) string {
	switch emotion {
	case perception.EmotionAngry:
		return "Customer is angry. Apologize once, then show decisive actions."
	case perception.EmotionConfused:
		return "Customer is confused. Clarify simply and reassuringly."
	case perception.EmotionPolite:
		return "Customer is polite. Friendly and concise tone."
	default:
		return ""
	}
}
