package perception

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestExtractOrderID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare ORD code", "order ORD12345, please refund", "ORD12345"},
		{"hyphenated ORD code", "My blender (order ORD-7842-CA) arrived cracked!", "ORD-7842-CA"},
		{"prefix-digit code", "No hex key came with order US-55291, thanks!", "US-55291"},
		{"hash marker", "Re: #CA-993144 still broken", "CA-993144"},
		{"lowercase normalized", "order ord12345 please", "ORD12345"},
		{"trailing punctuation stripped", "about order ORD12345.", "ORD12345"},
		{"no marker token", "the code ORD12345 alone", ""},
		{"no order at all", "hello there", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractOrderID(tt.text))
		})
	}
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"hyphenated US number", "call me at 555-123-4567 tomorrow", "555-123-4567"},
		{"spaced international", "reach me on +44 20 7946 0958 please", "+44 20 7946 0958"},
		{"iso date rejected", "ordered on 2024-01-15 and nothing since", ""},
		{"too few digits", "extension 12345678", ""},
		{"no number", "call me whenever", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPhone(tt.text))
		})
	}
}

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dollar with cents", "I was charged $19.99 twice", "19.99"},
		{"thousands separator stripped", "the invoice shows $1,299.50", "1299.50"},
		{"bare integer", "a fee of 45 appeared", "45"},
		{"no numeral", "charged me again", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractAmount(tt.text))
		})
	}
}

func TestExtractTicketID(t *testing.T) {
	assert.Equal(t, "TCK-2025-10-06-C8", extractTicketID("see ticket TCK-2025-10-06-C8 from last week"))
	assert.Equal(t, "T1004", extractTicketID("my case T1004 is still open"))
	assert.Equal(t, "RET-2025-11-02-CA1007", extractTicketID("retention case RET-2025-11-02-CA1007"))
	assert.Equal(t, "", extractTicketID("no ticket here"))
}

func TestExtractSerial(t *testing.T) {
	assert.Equal(t, "CT-V11-9F2", extractSerial("Serial CT-V11-9F2. What can we do?"))
	assert.Equal(t, "", extractSerial("serial number unknown"))
}

func TestDetectAgentName(t *testing.T) {
	assert.Equal(t, "Janelle", detectAgentName("Janelle from support fixed my address"))
	assert.Equal(t, "Marco", detectAgentName("talked to Marco at support yesterday"))
	assert.Equal(t, "", detectAgentName("support was great"))
}

func TestExtractEntities_PartNameGatedOnIntent(t *testing.T) {
	text := "No hex key came with order US-55291, thanks!"

	withIntent := extractEntities(text, IntentMissingPart)
	assert.Equal(t, "hex key", withIntent[EntityPartName])

	withoutIntent := extractEntities(text, IntentGenericComplaint)
	assert.NotContains(t, withoutIntent, EntityPartName)
}

func TestExtractEntities_FullMessage(t *testing.T) {
	text := "My CleanTrail Vacuum (order CA-993144) dies fast. Serial CT-V11-9F2. Call 555-123-4567."

	got := extractEntities(text, IntentDefectReport)
	want := map[EntityKind]string{
		EntityOrderID: "CA-993144",
		EntityPhone:   "555-123-4567",
		EntityAmount:  "993144", // generic numeral regex; known limitation
		EntitySerial:  "CT-V11-9F2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entity map mismatch (-want +got):\n%s", diff)
	}
}
