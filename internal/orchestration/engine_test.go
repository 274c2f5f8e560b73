package orchestration

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"caredesk/internal/config"
	"caredesk/internal/perception"
	"caredesk/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *store.Store) {
	t.Helper()
	policy := config.DefaultConfig().Policy
	records := store.NewSeeded(policy.RefundWindowDays, store.WithClock(func() time.Time { return testNow }))
	return New(perception.NewEngine(), records, policy), records
}

func TestProcess_RefundEligible(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("order ORD12345, please refund")

	assert.Equal(t, perception.IntentRefundRequest, res.Perception.Intent)
	assert.Equal(t, "RF-20260830-0001", res.Actions[ActionRefundID])
	assert.Equal(t, "Sep 02, 2026", res.Actions[ActionRefundETA])
	assert.False(t, res.Actions.Has(ActionTicketID), "no ticket when the order was found")

	want := []string{
		"Order: ORD12345 | status: delivered | amount: $79.99",
		"Refund eligible. Within 30-day window (day 20).",
		"Refund ID: RF-20260830-0001 | ETA: Sep 02, 2026",
	}
	if diff := cmp.Diff(want, res.Facts); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, records.Credits())
}

func TestProcess_RefundIneligibleGetsOneGoodwillCredit(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("order ORD9ZX88, refund")

	assert.False(t, res.Actions.Has(ActionRefundID))
	assert.Equal(t, "CR-20260830-0001", res.Actions[ActionCreditID])

	want := []string{
		"Order: ORD9ZX88 | status: delivered | amount: $129.00",
		"Refund ineligible. Past 30-day window (day 45).",
		"Goodwill credit: $10.00 (ID CR-20260830-0001)",
	}
	if diff := cmp.Diff(want, res.Facts); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, records.Credits(), 1)
}

func TestProcess_CarrierDamageReplacement(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Process("My blender (order ORD-7842-CA) arrived cracked!")

	assert.Equal(t, perception.IntentDefectReport, res.Perception.Intent)
	assert.Equal(t, perception.EmotionAngry, res.Perception.Emotion)
	assert.Equal(t, "RP-20260830-0001", res.Actions[ActionReplacementID])
	assert.Equal(t, "Sep 01, 2026", res.Actions[ActionDeliveryETA])
	assert.Equal(t, "TCK-2026-08-30-DE1001", res.Actions[ActionTicketID])

	assert.Contains(t, res.Facts, "Replacement ID: RP-20260830-0001 | Delivery ETA: Sep 01, 2026")
}

func TestProcess_DefectOutsideWindowOffersRepair(t *testing.T) {
	policy := config.DefaultConfig().Policy
	records := store.NewSeeded(policy.RefundWindowDays, store.WithClock(func() time.Time { return testNow }))
	records.PutOrder(&store.Order{
		ID:             "ORD99OLD",
		CreatedAt:      testNow.AddDate(0, 0, -60),
		Status:         "delivered",
		RefundableDays: policy.RefundWindowDays,
		Amount:         59.00,
	})
	engine := New(perception.NewEngine(), records, policy)

	res := engine.Process("order ORD99OLD arrived damaged")

	assert.False(t, res.Actions.Has(ActionReplacementID))
	assert.Contains(t, res.Facts, "Outside 30 days; offering repair or prorated options.")
}

func TestProcess_MissingPartShipsAndCreditsOnce(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("No hex key came with order US-55291, thanks!")

	assert.Equal(t, perception.IntentMissingPart, res.Perception.Intent)
	assert.Equal(t, "S0001", res.Actions[ActionShipmentID])
	assert.Equal(t, "Sep 03, 2026", res.Actions[ActionShipmentETA])

	want := []string{
		"Order: US-55291 | status: delivered | amount: $29.00",
		"Ticket: TCK-2026-08-30-MI1001",
		"Missing part shipment: S0001 | hex key | ETA: Sep 03, 2026",
		"Loyalty credit: $5.00 (ID CR-20260830-0001)",
	}
	if diff := cmp.Diff(want, res.Facts); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, records.Credits(), 1)
}

func TestProcess_MissingPartShipsExtractedVocabularyWord(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Process("the tool was not included in my box")

	require.Equal(t, perception.IntentMissingPart, res.Perception.Intent)
	assert.Contains(t, res.Facts, "Missing part shipment: S0001 | tool | ETA: Sep 03, 2026")
}

func TestHandleMissingPart_DefaultsToAccessory(t *testing.T) {
	engine, _ := newTestEngine(t)
	r := &request{
		p:       &perception.Result{Intent: perception.IntentMissingPart, Entities: map[perception.EntityKind]string{}},
		actions: make(Actions),
		facts:   &FactList{},
		log:     engine.logger,
	}

	engine.handleMissingPart(r)

	assert.Equal(t, "Missing part shipment: S0001 | accessory | ETA: Sep 03, 2026", r.facts.Strings()[0])
}

func TestProcess_CancellationThreat(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("I'm canceling unless this is fixed today!")

	p := res.Perception
	assert.True(t, p.ChurnRisk)
	assert.Equal(t, perception.UrgencyHigh, p.Urgency)
	assert.Equal(t, "ESC-20260830-0001", res.Actions[ActionEscalationID])
	assert.Equal(t, "CR-20260830-0001", res.Actions[ActionCreditID])

	want := []string{
		"Ticket: RET-2026-08-30-CA1001",
		"Escalation: ESC-20260830-0001",
		"Retention credit: $10.00 (ID CR-20260830-0001)",
	}
	if diff := cmp.Diff(want, res.Facts); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, records.Credits(), 1)
}

func TestProcess_BillingDuplicateChargeCreditsExactAmount(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("I was charged $19.99 twice for the subscription")

	want := []string{
		"Ticket: TCK-2026-08-30-BI1001",
		"Billing audit opened to verify duplicate/incorrect charges.",
		"Immediate credit issued: $19.99 (ID CR-20260830-0001)",
	}
	if diff := cmp.Diff(want, res.Facts); diff != "" {
		t.Errorf("facts mismatch (-want +got):\n%s", diff)
	}

	credits := records.Credits()
	require.Len(t, credits, 1)
	assert.Equal(t, 19.99, credits[0].Amount)
}

func TestHandleBilling_MalformedAmountSkipsCreditOnly(t *testing.T) {
	engine, records := newTestEngine(t)
	r := &request{
		lower: "charged twice",
		p: &perception.Result{
			Intent:   perception.IntentBillingIssue,
			Entities: map[perception.EntityKind]string{perception.EntityAmount: "12.34.56"},
		},
		actions: make(Actions),
		facts:   &FactList{},
		log:     engine.logger,
	}

	engine.handleBilling(r)

	// The branch is skipped without fabricating a credit; the audit fact
	// is still recorded.
	assert.False(t, r.actions.Has(ActionCreditID))
	assert.Empty(t, records.Credits())
	assert.Equal(t, []string{"Billing audit opened to verify duplicate/incorrect charges."}, r.facts.Strings())
}

func TestProcess_BillingAmountOnlyIsNoted(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("My bill shows a charge of $45.00 I do not recognize")

	assert.Contains(t, res.Facts, "Amount in question noted: $45.00")
	assert.False(t, res.Actions.Has(ActionCreditID))
	assert.Empty(t, records.Credits())
}

func TestProcess_FollowupDoesNotOpenNewTicket(t *testing.T) {
	engine, records := newTestEngine(t)

	res := engine.Process("Any update on my case TCK-2025-10-06-C8")

	assert.Equal(t, perception.IntentFollowupExisting, res.Perception.Intent)
	assert.False(t, res.Actions.Has(ActionTicketID))
	assert.Contains(t, res.Facts, "Continuing prior ticket: TCK-2025-10-06-C8")
	assert.Empty(t, records.Tickets())
}

func TestProcess_PraiseRecordsKudos(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Process("Thank you, Janelle from support fixed everything.")

	assert.Equal(t, perception.IntentPraise, res.Perception.Intent)
	assert.Equal(t, "Janelle", res.Actions[ActionAgentName])
	assert.Contains(t, res.Facts, "Kudos recorded for Janelle.")
	assert.Contains(t, res.Facts, "Loyalty credit: $5.00 (ID CR-20260830-0001)")
}

func TestProcess_CallbackWithPhone(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Process("Please call me back at 555-123-4567")

	assert.Equal(t, perception.IntentCallbackRequest, res.Perception.Intent)
	confirmation := "Callback scheduled to 555-123-4567 today 4-6pm"
	assert.Equal(t, confirmation, res.Actions[ActionCallback])
	assert.Contains(t, res.Facts, confirmation)
}

func TestProcess_CallbackWithoutPhoneUsesPlaceholder(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Process("please give me a call back about this")

	assert.Equal(t, "Callback scheduled to (not provided) today 4-6pm", res.Actions[ActionCallback])
}

func TestProcess_PhoneEntityTriggersCallbackAlongsideOtherIntent(t *testing.T) {
	engine, _ := newTestEngine(t)

	res := engine.Process("order ORD12345, please refund. Reach me at 555-123-4567")

	assert.Equal(t, perception.IntentRefundRequest, res.Perception.Intent)
	assert.True(t, res.Actions.Has(ActionRefundID))
	assert.Equal(t, "Callback scheduled to 555-123-4567 today 4-6pm", res.Actions[ActionCallback])
}

func TestEnsureCreditOnce_Guard(t *testing.T) {
	engine, records := newTestEngine(t)
	r := &request{actions: make(Actions), facts: &FactList{}, log: engine.logger}

	assert.True(t, engine.ensureCreditOnce(r, 10.0))
	assert.False(t, engine.ensureCreditOnce(r, 5.0), "second credit must be refused")

	assert.Len(t, records.Credits(), 1)
	assert.Equal(t, 1, r.facts.Len())
}

func TestProcess_AtMostOneCreditPerRequest(t *testing.T) {
	inputs := []string{
		"order ORD9ZX88, refund",
		"I was charged $19.99 twice for the subscription",
		"No hex key came with order US-55291, thanks!",
		"I'm canceling unless this is fixed today!",
		"kudos, great service",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			engine, records := newTestEngine(t)
			res := engine.Process(input)
			assert.LessOrEqual(t, len(records.Credits()), 1)
			if res.Actions.Has(ActionCreditID) {
				assert.Len(t, records.Credits(), 1)
			}
		})
	}
}
