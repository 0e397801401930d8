package fieldrules

// Func reports whether value passes the rule for the given param.
// The param is the raw text following '=' in a tag, e.g. "ipv4" for "type=ipv4".
// Return value should be true when validation succeeds.
type Func func(value, param string) bool

// Rule is what a validation engine runs for a registered rule name.
type Rule struct {
	// Validate is the predicate. It must not retain state between calls.
	Validate Func
	// Priority orders rules within a tag, higher first.
	// Rules of a lower priority only run when every rule of the higher ones passed.
	Priority int
}

// RuleFunc produces a Rule; one is registered per rule name.
type RuleFunc func() Rule

// cTag is a single parsed and resolved entry of a validation tag.
type cTag struct {
	name  string
	param string
	rule  Rule
}
