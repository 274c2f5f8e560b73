package orchestration

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"caredesk/internal/config"
	"caredesk/internal/perception"
	"caredesk/internal/store"
)

// Result is the output of one orchestration pass.
type Result struct {
	RequestID  string
	Input      string
	Perception *perception.Result
	Actions    Actions
	Facts      []string
}

// Engine applies the ordered rule sequence to perceived messages.
type Engine struct {
	perceiver *perception.Engine
	records   *store.Store
	policy    config.Policy
	logger    *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs a logger; defaults to a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an orchestration engine over the given collaborators.
func New(perceiver *perception.Engine, records *store.Store, policy config.Policy, opts ...Option) *Engine {
	e := &Engine{
		perceiver: perceiver,
		records:   records,
		policy:    policy,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// request carries the mutable per-request state through the rule sequence.
type request struct {
	text    string
	lower   string
	p       *perception.Result
	order   *store.Order
	actions Actions
	facts   *FactList
	log     *zap.Logger
}

// rule pairs a trigger predicate with its action so the total evaluation
// order is auditable and each rule is testable in isolation.
type rule struct {
	name string
	when func(*Engine, *request) bool
	run  func(*Engine, *request)
}

// rules is the complete evaluation order. Rules are independent: a rule
// that does not fire leaves no trace, and no rule can fail the request.
var rules = []rule{
	{"order_lookup", whenOrderID, (*Engine).lookupOrder},
	{"ticket_creation", whenNeedsTicket, (*Engine).createTicket},
	{"followup_note", whenIntent(perception.IntentFollowupExisting), (*Engine).noteFollowup},
	{"refund", whenRefundWithOrder, (*Engine).handleRefund},
	{"defect_replacement", whenDefectWithOrder, (*Engine).handleDefect},
	{"billing_audit", whenIntent(perception.IntentBillingIssue), (*Engine).handleBilling},
	{"missing_part", whenIntent(perception.IntentMissingPart), (*Engine).handleMissingPart},
	{"praise", whenIntent(perception.IntentPraise), (*Engine).handlePraise},
	{"retention", whenIntent(perception.IntentCancellationThreat), (*Engine).handleCancellation},
	{"callback", whenCallbackWanted, (*Engine).handleCallback},
}

// Process classifies text and runs every triggered rule. It never fails:
// lookup and extraction misses simply skip the dependent branches.
func (e *Engine) Process(text string) *Result {
	p := e.perceiver.Perceive(text)
	reqID := uuid.NewString()

	r := &request{
		text:    text,
		lower:   strings.ToLower(text),
		p:       p,
		actions: make(Actions),
		facts:   &FactList{},
		log: e.logger.With(
			zap.String("request_id", reqID),
			zap.String("intent", string(p.Intent)),
		),
	}

	for _, rl := range rules {
		if rl.when(e, r) {
			rl.run(e, r)
			r.log.Debug("rule fired", zap.String("rule", rl.name))
		}
	}

	return &Result{
		RequestID:  reqID,
		Input:      text,
		Perception: p,
		Actions:    r.actions,
		Facts:      r.facts.Strings(),
	}
}

// =============================================================================
// TRIGGER PREDICATES
// =============================================================================

func whenIntent(intent perception.Intent) func(*Engine, *request) bool {
	return func(_ *Engine, r *request) bool { return r.p.Intent == intent }
}

func whenOrderID(_ *Engine, r *request) bool {
	return r.p.HasEntity(perception.EntityOrderID)
}

// ticketIntents are the intents that always open a support case.
var ticketIntents = map[perception.Intent]bool{
	perception.IntentDefectReport:       true,
	perception.IntentBillingIssue:       true,
	perception.IntentGenericComplaint:   true,
	perception.IntentCancellationThreat: true,
	perception.IntentMissingPart:        true,
}

func whenNeedsTicket(_ *Engine, r *request) bool {
	if ticketIntents[r.p.Intent] {
		return true
	}
	// A refund request without a matching order still needs a case.
	return r.p.Intent == perception.IntentRefundRequest && r.order == nil
}

func whenRefundWithOrder(_ *Engine, r *request) bool {
	return r.p.Intent == perception.IntentRefundRequest && r.order != nil
}

func whenDefectWithOrder(_ *Engine, r *request) bool {
	return r.p.Intent == perception.IntentDefectReport && r.order != nil
}

func whenCallbackWanted(_ *Engine, r *request) bool {
	return r.p.Intent == perception.IntentCallbackRequest || r.p.HasEntity(perception.EntityPhone)
}

// =============================================================================
// RULES
// =============================================================================

func (e *Engine) lookupOrder(r *request) {
	oid := r.p.Entity(perception.EntityOrderID)
	r.order = e.records.LookupOrder(oid)
	r.log.Debug("order lookup", zap.String("order_id", oid), zap.Bool("found", r.order != nil))
	if r.order != nil {
		r.facts.Add(fmt.Sprintf("Order: %s | status: %s | amount: $%.2f", oid, r.order.Status, r.order.Amount))
	}
}

func (e *Engine) createTicket(r *request) {
	payload := map[string]string{"text": r.text}
	for kind, value := range r.p.Entities {
		payload[string(kind)] = value
	}
	id := e.records.CreateTicket(string(r.p.Intent), payload)
	r.actions[ActionTicketID] = id
	r.facts.Add("Ticket: " + id)
}

func (e *Engine) noteFollowup(r *request) {
	tid := r.p.Entity(perception.EntityTicketID)
	if tid == "" {
		tid = "(not provided)"
	}
	r.facts.Add("Continuing prior ticket: " + tid)
}

func (e *Engine) handleRefund(r *request) {
	days := e.records.DaysSince(r.order)
	if days <= r.order.RefundableDays {
		r.facts.Add(fmt.Sprintf("Refund eligible. Within %d-day window (day %d).", r.order.RefundableDays, days))
		id, eta := e.records.IssueRefund(r.order.ID, r.order.Amount, e.policy.RefundETADays)
		r.actions[ActionRefundID] = id
		r.actions[ActionRefundETA] = eta
		r.facts.Add(fmt.Sprintf("Refund ID: %s | ETA: %s", id, eta))
		return
	}

	r.facts.Add(fmt.Sprintf("Refund ineligible. Past %d-day window (day %d).", r.order.RefundableDays, days))
	if e.ensureCreditOnce(r, e.policy.GoodwillCreditDefault) {
		r.facts.RelabelLast("Goodwill credit")
	}
}

func (e *Engine) handleDefect(r *request) {
	days := e.records.DaysSince(r.order)
	if r.order.Status == "carrier_damage_scan" || days <= e.policy.RefundWindowDays {
		id, eta := e.records.CreateReplacement(r.order.ID, "auto-replacement", e.policy.ReplacementDeliveryDays)
		r.actions[ActionReplacementID] = id
		r.actions[ActionDeliveryETA] = eta
		r.facts.Add(fmt.Sprintf("Replacement ID: %s | Delivery ETA: %s", id, eta))
	} else {
		r.facts.Add(fmt.Sprintf("Outside %d days; offering repair or prorated options.", e.policy.RefundWindowDays))
	}

	if serial := r.p.Entity(perception.EntitySerial); serial != "" {
		r.facts.Add("Serial: " + serial)
	}
}

// duplicateChargeIndicators flag a likely double charge in a billing message.
var duplicateChargeIndicators = []string{"twice", "duplicate", "charged again", "double"}

func (e *Engine) handleBilling(r *request) {
	r.facts.Add("Billing audit opened to verify duplicate/incorrect charges.")

	amountText := r.p.Entity(perception.EntityAmount)
	if amountText == "" {
		return
	}

	duplicate := false
	for _, k := range duplicateChargeIndicators {
		if strings.Contains(r.lower, k) {
			duplicate = true
			break
		}
	}

	if duplicate {
		amount, err := strconv.ParseFloat(amountText, 64)
		if err != nil {
			// Never fabricate a credit amount; skip this branch only.
			r.log.Warn("unparseable amount entity", zap.String("amount", amountText), zap.Error(err))
			return
		}
		if e.ensureCreditOnce(r, amount) {
			r.facts.RelabelLast("Immediate credit issued")
		}
		return
	}

	r.facts.Add("Amount in question noted: $" + amountText)
}

func (e *Engine) handleMissingPart(r *request) {
	part := r.p.Entity(perception.EntityPartName)
	if part == "" {
		part = "accessory"
	}
	sh := e.records.ShipPart(part, e.policy.PartShipmentETADays)
	r.actions[ActionShipmentID] = sh.ID
	r.actions[ActionShipmentETA] = sh.ETA
	r.facts.Add(fmt.Sprintf("Missing part shipment: %s | %s | ETA: %s", sh.ID, sh.Content, sh.ETA))

	e.ensureCreditOnce(r, e.policy.LoyaltyCreditAmount)
}

func (e *Engine) handlePraise(r *request) {
	if agent := r.p.Entity(perception.EntityAgentName); agent != "" {
		r.actions[ActionAgentName] = agent
		r.facts.Add(fmt.Sprintf("Kudos recorded for %s.", agent))
	}
	e.ensureCreditOnce(r, e.policy.LoyaltyCreditAmount)
}

func (e *Engine) handleCancellation(r *request) {
	id := e.records.Escalate("churn-risk")
	r.actions[ActionEscalationID] = id
	r.facts.Add("Escalation: " + id)

	if e.ensureCreditOnce(r, e.policy.GoodwillCreditDefault) {
		r.facts.RelabelLast("Retention credit")
	}
}

func (e *Engine) handleCallback(r *request) {
	phone := r.p.Entity(perception.EntityPhone)
	if phone == "" {
		phone = "(not provided)"
	}
	confirmation := e.records.ScheduleCallback(phone, e.policy.CallbackWindow)
	r.actions[ActionCallback] = confirmation
	r.facts.Add(confirmation)
}

// ensureCreditOnce issues at most one credit per request. Whichever rule
// reaches it first wins; later callers no-op and must not relabel. Returns
// true when a credit was issued and its fact appended.
func (e *Engine) ensureCreditOnce(r *request, amount float64) bool {
	if r.actions.Has(ActionCreditID) {
		return false
	}
	id, _ := e.records.AddCredit("acct-on-file", amount)
	r.actions[ActionCreditID] = id
	r.facts.Append("Loyalty credit", fmt.Sprintf(": $%.2f (ID %s)", amount, id))
	return true
}
