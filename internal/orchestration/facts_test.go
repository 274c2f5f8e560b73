package orchestration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactList_AppendAndRender(t *testing.T) {
	var l FactList
	l.Add("Order: ORD12345 | status: delivered | amount: $79.99")
	l.Append("Loyalty credit", ": $10.00 (ID CR-20260830-0001)")

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{
		"Order: ORD12345 | status: delivered | amount: $79.99",
		"Loyalty credit: $10.00 (ID CR-20260830-0001)",
	}, l.Strings())
}

func TestFactList_RelabelLast(t *testing.T) {
	var l FactList
	l.Append("Loyalty credit", ": $10.00 (ID CR-20260830-0001)")
	l.RelabelLast("Goodwill credit")

	assert.Equal(t, []string{"Goodwill credit: $10.00 (ID CR-20260830-0001)"}, l.Strings())
}

func TestFactList_RelabelOnlyTouchesLastEntry(t *testing.T) {
	var l FactList
	l.Append("Loyalty credit", ": $5.00 (ID CR-0001)")
	l.Add("Serial: CT-V11-9F2")
	l.RelabelLast("Goodwill credit")

	// The last entry is label-less, so the relabel is a no-op and the
	// earlier credit line is untouched.
	assert.Equal(t, []string{
		"Loyalty credit: $5.00 (ID CR-0001)",
		"Serial: CT-V11-9F2",
	}, l.Strings())
}

func TestFactList_RelabelEmptyListIsNoop(t *testing.T) {
	var l FactList
	l.RelabelLast("Goodwill credit")
	assert.Empty(t, l.Strings())
}
