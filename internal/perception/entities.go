package perception

import (
	"regexp"
	"strings"
)

// Entity patterns. Order-id patterns run most specific first; the first one
// that matches anywhere in the text wins. Each requires an order/ord/# marker
// token so bare codes elsewhere in the message are not mistaken for orders.
var (
	orderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\border|\bord|#)\s*[:\-#]?\s*(ORD[A-Z0-9]{5,})`),
		regexp.MustCompile(`(?i)(?:\border|\bord|#)\s*[:\-#]?\s*(ORD-[A-Z0-9\-]{5,})`),
		regexp.MustCompile(`(?i)(?:\border|\bord|#)\s*[:\-#]?\s*([A-Z]{2,3}-\d{4,})`),
	}

	phoneRE  = regexp.MustCompile(`\+?\d[\d\-\s]{7,}\d`)
	isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	nonDigitRE = regexp.MustCompile(`\D`)

	amountRE = regexp.MustCompile(`\$?\s*([0-9]{1,3}(?:,[0-9]{3})*(?:\.\d{1,2})|\d+(?:\.\d{1,2})?)`)
	ticketRE = regexp.MustCompile(`TCK-\d{4}-\d{2}-\d{2}-[A-Z0-9]+|T\d{3,}|RET-\d{4}-\d{2}-\d{2}-[A-Z0-9]+`)
	serialRE = regexp.MustCompile(`\b([A-Z]{2,}-[A-Z0-9]{2,}-[A-Z0-9]{2,})\b`)

	missingPartRE  = regexp.MustCompile(`(?i)hex key|allen key|screw|adapter|cable|charger|manual|tool`)
	agentMentionRE = regexp.MustCompile(`\b([A-Z][a-z]+)\b\s+(?:from|in|at)\s+support\b`)
)

const trailingPunct = ".,;:!?)]}"

// extractOrderID returns the first order code found, normalized to upper case
// with trailing punctuation stripped, or "".
func extractOrderID(text string) string {
	for _, re := range orderPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.ToUpper(strings.TrimRight(m[1], trailingPunct))
		}
	}
	return ""
}

// extractPhone returns a plausible phone number, or "". Digit runs that are
// exactly an ISO date (2024-01-15) are rejected, and the run must contain
// 10-15 digits once separators are stripped.
func extractPhone(text string) string {
	raw := phoneRE.FindString(text)
	if raw == "" || isoDateRE.MatchString(raw) {
		return ""
	}
	digits := nonDigitRE.ReplaceAllString(raw, "")
	if len(digits) < 10 || len(digits) > 15 {
		return ""
	}
	return raw
}

// extractAmount returns the first currency-like numeral with thousands
// separators stripped, or "".
func extractAmount(text string) string {
	m := amountRE.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.ReplaceAll(m[1], ",", "")
}

func extractTicketID(text string) string {
	return ticketRE.FindString(text)
}

func extractSerial(text string) string {
	if m := serialRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// detectMissingPart returns the missing-part vocabulary hit, or "".
func detectMissingPart(text string) string {
	return missingPartRE.FindString(text)
}

// detectAgentName captures the "Name from support" mention, or "".
func detectAgentName(text string) string {
	if m := agentMentionRE.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// extractEntities runs every extractor best-effort and returns the entity map.
// part_name is only attempted for missing_part intent since the vocabulary
// words are too common to extract unconditionally.
func extractEntities(text string, intent Intent) map[EntityKind]string {
	entities := make(map[EntityKind]string)

	if id := extractOrderID(text); id != "" {
		entities[EntityOrderID] = id
	}
	if phone := extractPhone(text); phone != "" {
		entities[EntityPhone] = phone
	}
	if amount := extractAmount(text); amount != "" {
		entities[EntityAmount] = amount
	}
	if tid := extractTicketID(text); tid != "" {
		entities[EntityTicketID] = tid
	}
	if serial := extractSerial(text); serial != "" {
		entities[EntitySerial] = serial
	}
	if intent == IntentMissingPart {
		if part := detectMissingPart(text); part != "" {
			entities[EntityPartName] = part
		}
	}
	if agent := detectAgentName(text); agent != "" {
		entities[EntityAgentName] = agent
	}

	return entities
}
