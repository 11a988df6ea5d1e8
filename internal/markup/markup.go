// Package markup renders author-supplied lightweight markup into safe HTML.
//
// The renderer is a total function: it never fails and never blocks, and
// malformed input degrades to plain paragraphs instead of erroring. The whole
// input is HTML-escaped up front, before any structural interpretation, so a
// raw angle bracket, ampersand, or quote can only appear in the output if the
// renderer itself emitted it.
package markup

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Inline substitution patterns, applied in a fixed order: code span, bold,
// italic, link. The order is load-bearing: guides already authored depend on
// it, so a later pattern may touch text an earlier one emitted.
var (
	codeSpanRe = regexp.MustCompile("`([^`]+)`")
	boldRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe   = regexp.MustCompile(`\*([^*]+)\*`)
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)\)`)
)

// placeholderTarget replaces link targets with unapproved schemes. The guide
// still renders; only the destination is neutralized.
const placeholderTarget = "#"

// Render converts raw author markup into safe display HTML in a single linear
// pass. Line classification: fence toggle, verbatim code line, blank line
// (closes any open list, emits a paragraph break), heading (# through ###,
// deeper runs capped at level 3), bullet (leading "- "), plain paragraph.
func Render(raw string) string {
	escaped := html.EscapeString(strings.ReplaceAll(raw, "\t", "  "))
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(escaped) + len(escaped)/4)

	inFence := false
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(escaped, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "```" {
			closeList()
			if inFence {
				b.WriteString("</code></pre>\n")
			} else {
				b.WriteString("<pre><code>")
			}
			inFence = !inFence
			continue
		}

		if inFence {
			// Verbatim: no inline substitution inside a fence.
			b.WriteString(line)
			b.WriteByte('\n')
			continue
		}

		if trimmed == "" {
			closeList()
			b.WriteString("<br/>\n")
			continue
		}

		if level, text, ok := heading(trimmed); ok {
			closeList()
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, inline(text), level)
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "- "); ok {
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>" + inline(strings.TrimSpace(rest)) + "</li>\n")
			continue
		}

		closeList()
		b.WriteString("<p>" + inline(trimmed) + "</p>\n")
	}

	closeList()
	if inFence {
		// Unterminated fence at end of input is implicitly closed.
		b.WriteString("</code></pre>\n")
	}

	return b.String()
}

// heading reports whether the line is a heading, returning the level (capped
// at 3) and the heading text. A run of hashes must be followed by a space.
func heading(line string) (int, string, bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	level := 0
	rest := line
	for strings.HasPrefix(rest, "#") {
		level++
		rest = rest[1:]
	}
	if !strings.HasPrefix(rest, " ") {
		return 0, "", false
	}
	if level > 3 {
		level = 3
	}
	return level, strings.TrimSpace(rest), true
}

// inline applies the fixed-order substitutions to a non-code line.
func inline(s string) string {
	s = codeSpanRe.ReplaceAllString(s, "<code>$1</code>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")
	s = linkRe.ReplaceAllStringFunc(s, func(m string) string {
		parts := linkRe.FindStringSubmatch(m)
		label, target := parts[1], parts[2]
		if !approvedScheme(target) {
			target = placeholderTarget
		}
		return `<a href="` + target + `">` + label + `</a>`
	})
	return s
}

func approvedScheme(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
