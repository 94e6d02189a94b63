// Package diagram repairs Mermaid source before rendering and schedules
// debounced renders against an external renderer.
package diagram

import (
	"regexp"
	"strings"
)

// DefaultDirective is prepended to source that has no recognized directive.
const DefaultDirective = "graph TD;"

var (
	reKnownDirective = regexp.MustCompile(`(?i)^(graph|flowchart|sequenceDiagram|classDiagram|gitGraph|pie|journey)`)
	// The directive line plus any separators and whitespace that follow it.
	reDirectiveLine = regexp.MustCompile(`(?i)^((?:graph|flowchart)[ \t]+(?:TD|TB|BT|RL|LR))\b[\s;]*`)
	reLabel         = regexp.MustCompile(`\[[^\]]*?[^"\]]\]`)
	reBlankLines    = regexp.MustCompile(`\n\s*\n`)
	reSeparatorRun  = regexp.MustCompile(`;(?:\s*;)+`)
)

// Normalize repairs near-valid Mermaid source so the renderer accepts it. It
// ensures a leading directive terminated by ";" and a single newline, quotes
// labels that contain characters the grammar treats specially, and collapses
// blank lines and repeated separators. The empty string yields "", while
// whitespace-only source yields a bare directive.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(source string) string {
	if source == "" {
		return ""
	}
	code := strings.TrimSpace(source)

	if !reKnownDirective.MatchString(code) {
		code = DefaultDirective + "\n" + code
	}

	code = reDirectiveLine.ReplaceAllString(code, "${1};\n")
	code = reLabel.ReplaceAllStringFunc(code, quoteLabel)
	code = reBlankLines.ReplaceAllString(code, "\n")
	code = reSeparatorRun.ReplaceAllString(code, ";")
	return code
}

func quoteLabel(match string) string {
	label := strings.TrimSpace(match[1 : len(match)-1])
	if isQuoted(label) || !needsQuotes(label) {
		return match
	}
	return `["` + label + `"]`
}

func isQuoted(label string) bool {
	return len(label) >= 2 && strings.HasPrefix(label, `"`) && strings.HasSuffix(label, `"`)
}

func needsQuotes(label string) bool {
	return strings.ContainsAny(label, ":°(")
}
