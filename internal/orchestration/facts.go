package orchestration

// Fact is one finalized bullet line. The label is kept separate from the
// rest of the line so a rule can rename its own most recent entry (for
// example "Loyalty credit" -> "Goodwill credit") without string surgery.
type Fact struct {
	Label string
	Rest  string
}

// String renders the bullet line.
func (f Fact) String() string {
	return f.Label + f.Rest
}

// FactList is the append-only, order-preserving fact accumulator. Only the
// most recently appended entry may be relabeled; earlier entries are final.
type FactList struct {
	facts []Fact
}

// Append adds a labeled fact.
func (l *FactList) Append(label, rest string) {
	l.facts = append(l.facts, Fact{Label: label, Rest: rest})
}

// Add adds a label-less fact.
func (l *FactList) Add(text string) {
	l.facts = append(l.facts, Fact{Rest: text})
}

// RelabelLast renames the label of the most recent fact. No-op on an empty
// list or a label-less last entry.
func (l *FactList) RelabelLast(label string) {
	if len(l.facts) == 0 || l.facts[len(l.facts)-1].Label == "" {
		return
	}
	l.facts[len(l.facts)-1].Label = label
}

// Len returns the number of facts.
func (l *FactList) Len() int {
	return len(l.facts)
}

// Strings renders every fact in order.
func (l *FactList) Strings() []string {
	out := make([]string, len(l.facts))
	for i, f := range l.facts {
		out[i] = f.String()
	}
	return out
}
