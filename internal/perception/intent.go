package perception

import (
	"regexp"
	"strings"
)

var missingPhraseRE = regexp.MustCompile(`\b(missing|no|not included|did(?:n't| not) come with)\b`)

// intentRule pairs an intent with its trigger predicate. lower is the
// lower-cased text; raw keeps original casing for code patterns.
type intentRule struct {
	intent Intent
	match  func(lower, raw string) bool
}

func keywordRule(intent Intent, keys ...string) intentRule {
	return intentRule{intent: intent, match: func(lower, _ string) bool {
		return containsAny(lower, keys)
	}}
}

// intentRules is the total classification order, first match wins.
// Actionable/monetary intents preempt softer signals: a message that both
// thanks the agent and demands a refund is a refund_request, not praise.
var intentRules = []intentRule{
	keywordRule(IntentRefundRequest, "refund", "return", "money back", "chargeback"),
	keywordRule(IntentDefectReport, "defect", "broken", "damaged", "cracked", "not working", "doesn't work", "dies"),
	keywordRule(IntentBillingIssue, "bill", "charged", "invoice", "fee", "renewal", "charge "),
	keywordRule(IntentCancellationThreat, "cancel", "canceling", "switch", "leave", "take my business elsewhere"),
	{intent: IntentMissingPart, match: func(lower, _ string) bool {
		return missingPhraseRE.MatchString(lower) && missingPartRE.MatchString(lower)
	}},
	keywordRule(IntentCallbackRequest, "call me", "call back", "callback", "phone"),
	{intent: IntentFollowupExisting, match: func(_, raw string) bool {
		return ticketRE.MatchString(raw)
	}},
	keywordRule(IntentPraise, "great service", "perfect service", "kudos", "appreciate", "thank you", "thanks"),
}

// classifyIntent runs the ordered rule list and defaults to generic_complaint.
func classifyIntent(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range intentRules {
		if r.match(lower, text) {
			return r.intent
		}
	}
	return IntentGenericComplaint
}
