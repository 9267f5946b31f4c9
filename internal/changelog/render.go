// Package changelog groups classified commits into sections and renders the
// release notes document. Rendering is stable: commits are never deduplicated
// or re-sorted within a scope group, and grouping preserves first-seen order.
package changelog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ariel-frischer/relkit/internal/commit"
	"github.com/ariel-frischer/relkit/internal/config"
)

// Document is the per-package changelog output, built fresh per run.
type Document struct {
	// Commits are the classified commits feeding this release.
	Commits []commit.Classified
	// NextVersion is the display tag of the release being cut.
	NextVersion string
	// Notes is the rendered release notes text.
	Notes string
}

// nowFunc returns the notes generation time; swapped in tests.
var nowFunc = time.Now

// Render produces the release notes for a package. lastTag empty signals the
// first release, which gets a bare version heading instead of a comparison
// link. Sections appear in configured rule order; a section type with no
// configured rule sorts before all configured sections, keeping
// first-discovered order among such sections.
func Render(commits []commit.Classified, nextTag, lastTag string, rules []config.ReleaseTypeRule, originURL string) string {
	var b strings.Builder

	if lastTag == "" {
		fmt.Fprintf(&b, "## %s\r\n\r\n", nextTag)
	} else {
		fmt.Fprintf(&b, "## [%s](%s/compare/%s...%s)\r\n\r\n", nextTag, originURL, lastTag, nextTag)
	}
	fmt.Fprintf(&b, "###### _%s_\r\n", nowFunc().UTC().Format("Jan _2, 2006"))

	for _, section := range groupSections(commits, rules) {
		fmt.Fprintf(&b, "\r\n### %s\r\n", section.title)
		renderSection(&b, section, originURL)
	}

	return b.String()
}

// section is one changelog block: a commit type with its display title and
// the commits that carry it, in first-seen order.
type section struct {
	sectionType string
	title       string
	ruleIndex   int
	commits     []commit.Classified
}

// groupSections buckets commits by section type in first-seen order, then
// stable-sorts the buckets by their position in the configured rule list.
// Unconfigured types get index -1 so they sort before every configured
// section without disturbing their relative order.
func groupSections(commits []commit.Classified, rules []config.ReleaseTypeRule) []*section {
	var order []string
	byType := make(map[string]*section)

	for _, c := range commits {
		s, ok := byType[c.SectionType]
		if !ok {
			s = &section{
				sectionType: c.SectionType,
				title:       c.SectionType,
				ruleIndex:   -1,
			}
			for i, rule := range rules {
				if rule.CommitType == c.SectionType {
					s.title = rule.Section
					s.ruleIndex = i
					break
				}
			}
			byType[c.SectionType] = s
			order = append(order, c.SectionType)
		}
		s.commits = append(s.commits, c)
	}

	sections := make([]*section, len(order))
	for i, key := range order {
		sections[i] = byType[key]
	}
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].ruleIndex < sections[j].ruleIndex
	})
	return sections
}

// renderSection writes one section's commits grouped by scope. Scope groups
// keep first-appearance order; scope-less commits render as top-level
// bullets, scoped commits nest under a bold scope label.
func renderSection(b *strings.Builder, s *section, originURL string) {
	var scopes []string
	byScope := make(map[string][]commit.Classified)

	for _, c := range s.commits {
		if _, ok := byScope[c.Scope]; !ok {
			scopes = append(scopes, c.Scope)
		}
		byScope[c.Scope] = append(byScope[c.Scope], c)
	}

	for _, scope := range scopes {
		if scope != "" {
			fmt.Fprintf(b, "\r\n- **%s:**\r\n", scope)
		}
		for _, c := range byScope[scope] {
			indent := ""
			if scope != "" {
				indent = "  "
			}
			fmt.Fprintf(b, "%s- %s ([%s](%s/commit/%s))\r\n", indent, c.Description, c.Hash, originURL, c.Hash)
		}
	}
}
