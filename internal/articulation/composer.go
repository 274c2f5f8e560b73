// Package articulation turns a perception snapshot plus the accumulated
// actions and facts into the final customer reply: a deterministic prose
// summary, the fact bullets verbatim and in order, and an optional Gemini
// tone polish that can never alter the facts.
package articulation

import (
	"fmt"
	"sort"
	"strings"

	"caredesk/internal/orchestration"
	"caredesk/internal/perception"
)

// Compose renders the deterministic reply. Every fact line is preserved
// verbatim and in order; prose is only added around the bullet list.
func Compose(p *perception.Result, actions orchestration.Actions, facts []string) string {
	done := doneLines(p, actions)
	next := nextLines(p, actions)

	para := intro(p, actions) +
		" What we did: " + strings.Join(done, " ") +
		" Next steps & timelines: "
	if len(next) > 0 {
		para += strings.Join(next, " ")
	} else {
		para += "We'll keep you posted."
	}

	bullets := ""
	if len(facts) > 0 {
		bullets = "\n- " + strings.Join(facts, "\n- ")
	}

	closing := "\nIf there's anything else you'd like us to address, please let me know."
	return para + bullets + closing
}

// doneLines summarizes the completed actions for the prose paragraph.
func doneLines(p *perception.Result, actions orchestration.Actions) []string {
	var lines []string
	if id, ok := actions[orchestration.ActionTicketID]; ok {
		lines = append(lines, fmt.Sprintf("Created support case %s and documented your issue.", id))
	}
	if id, ok := actions[orchestration.ActionRefundID]; ok {
		lines = append(lines, fmt.Sprintf("Initiated a refund (ID %s).", id))
	}
	if id, ok := actions[orchestration.ActionReplacementID]; ok {
		lines = append(lines, fmt.Sprintf("Queued a replacement shipment (ID %s).", id))
	}
	if id, ok := actions[orchestration.ActionShipmentID]; ok {
		lines = append(lines, fmt.Sprintf("Dispatched the missing part (shipment %s).", id))
	}
	if confirmation, ok := actions[orchestration.ActionCallback]; ok {
		lines = append(lines, confirmation)
	}
	if id, ok := actions[orchestration.ActionEscalationID]; ok {
		lines = append(lines, fmt.Sprintf("Escalated your case internally (ID %s).", id))
	}
	if id, ok := actions[orchestration.ActionCreditID]; ok {
		lines = append(lines, fmt.Sprintf("Applied a credit (ID %s).", id))
	}
	if len(lines) == 0 {
		lines = append(lines, "Documented your report and confirmed next steps.")
	}

	if p.Intent == perception.IntentMissingPart {
		lines = reorderForMissingPart(lines, actions)
	}
	return lines
}

// reorderForMissingPart puts the shipment first and softens the credit line
// so missing-part replies read shipment, case, courtesy credit.
func reorderForMissingPart(lines []string, actions orchestration.Actions) []string {
	if id, ok := actions[orchestration.ActionCreditID]; ok {
		for i, line := range lines {
			if strings.HasPrefix(line, "Applied a credit") {
				lines[i] = fmt.Sprintf("We also applied a small courtesy credit (ID %s).", id)
				break
			}
		}
	}

	rank := func(s string) int {
		switch {
		case strings.HasPrefix(s, "Dispatched the missing part"):
			return 0
		case strings.HasPrefix(s, "Created support case"):
			return 1
		case strings.HasPrefix(s, "We also applied") || strings.HasPrefix(s, "Applied a credit"):
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return rank(lines[i]) < rank(lines[j]) })
	return lines
}

// nextLines lists the timelines the customer should expect.
func nextLines(p *perception.Result, actions orchestration.Actions) []string {
	var lines []string
	if eta, ok := actions[orchestration.ActionRefundETA]; ok {
		lines = append(lines, fmt.Sprintf("Refund posts by %s.", eta))
	}
	if eta, ok := actions[orchestration.ActionDeliveryETA]; ok {
		lines = append(lines, fmt.Sprintf("Replacement delivery ETA %s.", eta))
	}
	if eta, ok := actions[orchestration.ActionShipmentETA]; ok {
		lines = append(lines, fmt.Sprintf("Missing part delivery ETA %s.", eta))
	}
	switch p.Intent {
	case perception.IntentBillingIssue:
		lines = append(lines, "Billing audit update within 1-2 business days.")
	case perception.IntentFollowupExisting:
		lines = append(lines, "We will summarize prior actions and outcomes today.")
	case perception.IntentCancellationThreat:
		lines = append(lines, "Retention specialist will reach out today.")
	}
	return lines
}

// intro picks the opening sentence from intent, falling back to emotion.
func intro(p *perception.Result, actions orchestration.Actions) string {
	switch p.Intent {
	case perception.IntentPraise:
		if agent, ok := actions[orchestration.ActionAgentName]; ok {
			return fmt.Sprintf("Thanks so much for the shout-out - I'll make sure %s sees this.", agent)
		}
		return "Thanks so much for the shout-out - we really appreciate it."
	case perception.IntentMissingPart:
		return "Thanks for flagging this - we've shipped the missing part."
	case perception.IntentDefectReport:
		return "I know how frustrating hardware issues can be - here's what we've done."
	}

	switch p.Emotion {
	case perception.EmotionAngry:
		return "I'm truly sorry for the trouble you've experienced."
	case perception.EmotionConfused:
		return "I'm happy to clarify this for you."
	case perception.EmotionPolite:
		return "Thanks for reaching out - happy to help."
	default:
		return "Thanks for reaching out - let's get this resolved."
	}
}
