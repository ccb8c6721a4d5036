package domain

// Rule is one (label, term) entry of a gazetteer or built-in rule set.
// A term with no regex metacharacter is matched as a whole word; a term
// containing one is compiled as a pattern verbatim.
type Rule struct {
	// Label is assigned to every annotation the rule produces.
	Label string

	// Term is the literal term or pattern to match.
	Term string
}
