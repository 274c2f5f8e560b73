// Package orchestration runs the intent-conditioned business rules over one
// perception snapshot. Rules are evaluated in a fixed order, may read the
// record store and policy, and accumulate two outputs: the action map and
// the fact list surfaced verbatim in the reply.
package orchestration

// ActionKind keys the per-request action map.
type ActionKind string

const (
	ActionTicketID      ActionKind = "ticket_id"
	ActionRefundID      ActionKind = "refund_id"
	ActionRefundETA     ActionKind = "refund_eta"
	ActionReplacementID ActionKind = "replacement_id"
	ActionDeliveryETA   ActionKind = "delivery_eta"
	ActionShipmentID    ActionKind = "shipment_id"
	ActionShipmentETA   ActionKind = "shipment_eta"
	ActionCreditID      ActionKind = "credit_id"
	ActionEscalationID  ActionKind = "escalation_id"
	ActionCallback      ActionKind = "callback"
	ActionAgentName     ActionKind = "agent_name"
)

// Actions records which business actions fired this request and their
// resulting identifiers or formatted text.
type Actions map[ActionKind]string

// Has reports whether an action of the given kind was recorded.
func (a Actions) Has(kind ActionKind) bool {
	_, ok := a[kind]
	return ok
}
