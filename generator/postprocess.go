package generator

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// DefaultMinDiagramLength is the rune count below which an extracted diagram
// is treated as a miss. The value is a heuristic carried over as is.
const DefaultMinDiagramLength = 50

var (
	reFence     = regexp.MustCompile("(?i)```mermaid\\s*([\\s\\S]*?)\\s*```")
	reGraph     = regexp.MustCompile(`(?i)graph\s+(?:TD|TB|LR|RL|BT)[\s\S]*`)
	reFlowchart = regexp.MustCompile(`(?i)flowchart\s+(?:TD|TB|LR|RL|BT)[\s\S]*`)
)

// Extract isolates the diagram source embedded in raw model output. It tries
// the first fenced mermaid block, then a bare "graph" directive, then a bare
// "flowchart" directive. The bare directive strategies capture everything up
// to the end of raw, trailing prose included. It returns "" when nothing
// matches.
func Extract(raw string) string {
	if m := reFence.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reGraph.FindString(raw); m != "" {
		return strings.TrimSpace(m)
	}
	if m := reFlowchart.FindString(raw); m != "" {
		return strings.TrimSpace(m)
	}
	return ""
}

// PostProcess turns raw model output into diagram source for topic. It
// falls back to the topic skeleton when the extracted diagram is shorter
// than minLen runes, and reports whether it did.
func PostProcess(raw, topic string, minLen int) (string, bool) {
	if minLen <= 0 {
		minLen = DefaultMinDiagramLength
	}
	mermaid := Extract(raw)
	if mermaid == "" || utf8.RuneCountInString(mermaid) < minLen {
		return Fallback(topic), true
	}
	return mermaid, false
}
