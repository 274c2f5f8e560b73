// Package perception turns raw customer text into a structured snapshot:
// one emotion, one intent, the extracted entities, and derived risk/urgency.
// No actions are executed here; orchestration consumes the snapshot.
package perception

// Emotion is the classified emotional register of a message.
type Emotion string

const (
	EmotionAngry    Emotion = "angry"
	EmotionConfused Emotion = "confused"
	EmotionPolite   Emotion = "polite"
	EmotionNeutral  Emotion = "neutral"
)

// Intent is the classified purpose of a customer message.
type Intent string

const (
	IntentRefundRequest      Intent = "refund_request"
	IntentDefectReport       Intent = "defect_report"
	IntentBillingIssue       Intent = "billing_issue"
	IntentCancellationThreat Intent = "cancellation_threat"
	IntentMissingPart        Intent = "missing_part"
	IntentCallbackRequest    Intent = "callback_request"
	IntentFollowupExisting   Intent = "followup_existing"
	IntentPraise             Intent = "praise"
	IntentGenericComplaint   Intent = "generic_complaint"
)

// Urgency is the triage level derived from intent and emotion.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// EntityKind names a structured value extracted from free text.
type EntityKind string

const (
	EntityOrderID   EntityKind = "order_id"
	EntityPhone     EntityKind = "phone"
	EntityAmount    EntityKind = "amount"
	EntityTicketID  EntityKind = "ticket_id"
	EntitySerial    EntityKind = "serial"
	EntityPartName  EntityKind = "part_name"
	EntityAgentName EntityKind = "agent_name"
)

// Result is the immutable perception snapshot for one request.
// Entity keys are present only when a pattern matched.
type Result struct {
	Emotion   Emotion
	Intent    Intent
	Entities  map[EntityKind]string
	ChurnRisk bool
	Urgency   Urgency
}

// Entity returns the extracted value for kind, or "" when absent.
func (r *Result) Entity(kind EntityKind) string {
	return r.Entities[kind]
}

// HasEntity reports whether kind was extracted.
func (r *Result) HasEntity(kind EntityKind) bool {
	_, ok := r.Entities[kind]
	return ok
}
