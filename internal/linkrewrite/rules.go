package linkrewrite

import (
	"regexp"
	"strings"
)

// MatchKind distinguishes the two link shapes handled by the rewriter.
type MatchKind string

const (
	KindInline    MatchKind = "inline"
	KindReference MatchKind = "reference"
)

// Match is one link found by a rule, already stripped of its relative prefix.
type Match struct {
	Kind   MatchKind
	Label  string
	Path   string
	Anchor string // includes the leading '#', empty when absent
}

// Render returns the flat form of the link.
func (m Match) Render() string {
	if m.Kind == KindReference {
		return "[" + m.Label + "]: " + m.Path + m.Anchor
	}
	return "[" + m.Label + "](" + m.Path + m.Anchor + ")"
}

// Whitespace classes include Unicode separators such as the no-break space that
// latin-1 documents decode 0xA0 to. hspace never crosses a line break.
const (
	space  = `[\s\p{Z}]`
	hspace = `[\t \p{Zs}]`
)

var (
	// [label]( ../../path#anchor )
	inlineLinkRe = regexp.MustCompile(`\[([^\]]+)\]\(` + space + `*(?:\.\./|\./)+` + space +
		`*([^)#\s\p{Z}][^)#]*?)(#[^)\s\p{Z}]+)?` + space + `*\)`)

	// [label]: ./path#anchor "title"   (one definition per line)
	referenceLinkRe = regexp.MustCompile(`(?m)^` + hspace + `*\[([^\]\n]+)\]:` + hspace + `*(?:\.\./|\./)+` + hspace +
		`*([^\s\p{Z}#]+)(#[^\s\p{Z}]+)?(?:` + hspace + `+["'].+["'])?` + hspace + `*(\r?)$`)
)

// RewriteInline flattens inline links and returns the new content and the matches replaced.
func RewriteInline(content string) (string, []Match) {
	return replaceAll(inlineLinkRe, content, func(groups []string) (Match, string) {
		return Match{
			Kind:   KindInline,
			Label:  groups[1],
			Path:   strings.TrimSpace(groups[2]),
			Anchor: groups[3],
		}, ""
	})
}

// RewriteReference flattens reference-style link definitions, dropping any title.
func RewriteReference(content string) (string, []Match) {
	return replaceAll(referenceLinkRe, content, func(groups []string) (Match, string) {
		return Match{
			Kind:   KindReference,
			Label:  groups[1],
			Path:   strings.TrimSpace(groups[2]),
			Anchor: groups[3],
		}, groups[4]
	})
}

// Result is the outcome of rewriting one document's content.
type Result struct {
	Content   string
	Inline    int
	Reference int
	Matches   []Match
}

// Total is the combined replacement count of both rules.
func (r Result) Total() int { return r.Inline + r.Reference }

// Rewrite applies the inline rule and then the reference rule to content.
// The reference rule sees the output of the inline rule.
func Rewrite(content string) Result {
	afterInline, inline := RewriteInline(content)
	out, reference := RewriteReference(afterInline)
	return Result{
		Content:   out,
		Inline:    len(inline),
		Reference: len(reference),
		Matches:   append(inline, reference...),
	}
}

// replaceAll substitutes every match of re in s. build turns the submatches into a
// Match plus a suffix appended verbatim after the rendered link.
func replaceAll(re *regexp.Regexp, s string, build func(groups []string) (Match, string)) (string, []Match) {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	matches := make([]Match, 0, len(locs))
	last := 0
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if start := loc[2*i]; start >= 0 {
				groups[i] = s[start:loc[2*i+1]]
			}
		}
		m, suffix := build(groups)
		matches = append(matches, m)

		b.WriteString(s[last:loc[0]])
		b.WriteString(m.Render())
		b.WriteString(suffix)
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String(), matches
}
