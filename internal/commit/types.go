package commit

// Record is one historical commit as reported by the commit source.
// Records are immutable and ordered newest-first.
type Record struct {
	// Hash is the short commit identifier.
	Hash string
	// Subject is the first line of the commit message.
	Subject string
	// Body is the remaining message text, possibly empty.
	Body string
}

// Classified is a commit that matched a conventional-commit pattern and is
// eligible for a release. A Record that yields no section type is dropped
// and never reaches the resolver or renderer.
type Classified struct {
	// SectionType is the commit type key, e.g. "feat" or "fix".
	SectionType string
	// Scope is the optional parenthetical scope, stripped of parentheses.
	Scope string
	// Description is the text after the "type(scope): " prefix.
	Description string
	// BreakingNote holds the remainder of a "BREAKING CHANGE: " footer line,
	// or empty when no such footer was found.
	BreakingNote string
	// Hash is the short commit identifier, carried through for linking.
	Hash string
}
