// Package export turns a generated diagram into a standalone Markdown or
// HTML document.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"visualmind/diagram"
)

// MermaidScript is the module loaded by exported pages to render diagrams.
const MermaidScript = "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs"

// Document describes one exported diagram.
type Document struct {
	Topic     string
	Category  string
	Mermaid   string
	Raw       string
	Timestamp time.Time
}

// Markdown renders doc as Markdown with the normalized diagram in a mermaid
// fence. The model output, when present, follows in a plain fence.
func Markdown(doc Document) string {
	var sb strings.Builder
	title := strings.TrimSpace(doc.Topic)
	if title == "" {
		title = "Diagram"
	}
	sb.WriteString("# " + title + "\n\n")

	var meta []string
	if doc.Category != "" {
		meta = append(meta, "Category: "+doc.Category)
	}
	if !doc.Timestamp.IsZero() {
		meta = append(meta, "Generated: "+doc.Timestamp.UTC().Format(time.RFC3339))
	}
	if len(meta) > 0 {
		sb.WriteString("_" + strings.Join(meta, " · ") + "_\n\n")
	}

	writeFence(&sb, "mermaid", diagram.Normalize(doc.Mermaid))

	if raw := strings.TrimSpace(doc.Raw); raw != "" {
		sb.WriteString("\n## Model output\n\n")
		writeFence(&sb, "text", raw)
	}
	return sb.String()
}

// HTML renders doc as a self-contained page that draws the diagram with
// mermaid.js. The page runs mermaid in strict mode, so labels are rendered as
// text and click bindings are ignored.
func HTML(doc Document) (string, error) {
	if strings.TrimSpace(doc.Mermaid) == "" {
		return "", errors.New("export: empty diagram")
	}
	body, err := mdToHTML(Markdown(doc))
	if err != nil {
		return "", err
	}
	body = mermaidBlocks(body)

	title := strings.TrimSpace(doc.Topic)
	if title == "" {
		title = "Diagram"
	}
	return fmt.Sprintf(pageTemplate, html.EscapeString(title), MermaidScript, body), nil
}

// WriteFile writes the HTML rendering of doc to path.
func WriteFile(path string, doc Document) error {
	page, err := HTML(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(page), 0o644)
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<script type="module">
import mermaid from "%s";
mermaid.initialize({ startOnLoad: true, theme: "dark", securityLevel: "strict" });
</script>
</head>
<body>
%s</body>
</html>
`

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var reMermaidCode = regexp.MustCompile(`(?s)<pre><code class="language-mermaid">(.*?)</code></pre>`)

// mermaidBlocks rewrites highlighted mermaid code blocks into the element
// mermaid.js looks for on startup.
func mermaidBlocks(body string) string {
	return reMermaidCode.ReplaceAllString(body, `<pre class="mermaid">$1</pre>`)
}

// writeFence uses a backtick fence longer than any run inside content.
func writeFence(sb *strings.Builder, info, content string) {
	fence := strings.Repeat("`", max(3, longestBacktickRun(content)+1))
	sb.WriteString(fence + info + "\n")
	sb.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(fence + "\n")
}

func longestBacktickRun(s string) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return longest
}
