// Package commit classifies raw commit records against the conventional
// commit format. Classification is a pure function of its inputs: the same
// record and type set always produce the same result.
package commit

import (
	"regexp"
	"strings"
)

// breakingMarker is the literal footer prefix that flags a breaking change.
const breakingMarker = "BREAKING CHANGE: "

// anyTypePattern matches a conventional commit subject with any word as the
// type. It is the fallback used when the restricted match fails but the
// commit carries a breaking-change footer, so the commit still counts toward
// major-bump detection.
var anyTypePattern = regexp.MustCompile(`^(\w+)(\([\w\-.]+\))?(!)?: ([\w ]+)`)

// subjectMatch holds the named capture groups of a subject-line match.
// The bang marker is captured for fidelity with the commit convention but is
// not consumed anywhere downstream.
type subjectMatch struct {
	commitType  string
	scope       string
	bang        bool
	description string
}

// Classifier matches commit subjects against a configured set of commit-type
// keys. Build one per run with NewClassifier.
type Classifier struct {
	primary *regexp.Regexp
}

// NewClassifier builds a classifier whose primary pattern is restricted to
// the given commit-type keys, in order.
func NewClassifier(commitTypes []string) *Classifier {
	quoted := make([]string, len(commitTypes))
	for i, t := range commitTypes {
		quoted[i] = regexp.QuoteMeta(t)
	}
	pattern := `^(` + strings.Join(quoted, "|") + `)(\([\w\-.]+\))?(!)?: ([\w ]+)`
	return &Classifier{primary: regexp.MustCompile(pattern)}
}

// Classify turns one Record into a Classified commit. The second return
// value is false when the commit matched nothing and should be discarded;
// that is not an error.
//
// The subject is first matched against the restricted pattern. Independently
// the message is scanned for a "BREAKING CHANGE: " footer. If the restricted
// match failed but a breaking footer was found, the subject is re-matched
// with the unrestricted pattern so the commit is not lost for major-bump
// detection.
func (c *Classifier) Classify(rec Record) (Classified, bool) {
	out := Classified{Hash: rec.Hash}

	if m := matchSubject(c.primary, rec.Subject); m != nil {
		out.SectionType = m.commitType
		out.Scope = m.scope
		out.Description = m.description
	}

	out.BreakingNote = findBreakingNote(rec)

	if out.SectionType == "" && out.BreakingNote != "" {
		if m := matchSubject(anyTypePattern, rec.Subject); m != nil {
			out.SectionType = m.commitType
			out.Scope = m.scope
			out.Description = m.description
		}
	}

	if out.SectionType == "" {
		return Classified{}, false
	}
	return out, true
}

// matchSubject applies a subject pattern and returns the named capture
// groups, or nil when the subject does not match.
func matchSubject(re *regexp.Regexp, subject string) *subjectMatch {
	caps := re.FindStringSubmatch(subject)
	if caps == nil {
		return nil
	}
	m := &subjectMatch{
		commitType:  caps[1],
		bang:        caps[3] == "!",
		description: caps[4],
	}
	if caps[2] != "" {
		m.scope = strings.Trim(caps[2], "()")
	}
	return m
}

// findBreakingNote scans the subject and body lines for the breaking-change
// footer and returns the remainder of the first matching line.
func findBreakingNote(rec Record) string {
	for _, line := range strings.Split(rec.Subject+"\n"+rec.Body, "\n") {
		if strings.HasPrefix(line, breakingMarker) {
			return strings.TrimPrefix(line, breakingMarker)
		}
	}
	return ""
}
