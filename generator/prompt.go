package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

const systemPrompt = `You are an expert diagram creator specializing in topic-specific flowcharts.

ABSOLUTE RULES:
1. Create diagrams ONLY about the exact topic provided
2. NEVER mix different subject areas
3. NEVER add machine learning, AI, or data science concepts unless the topic specifically asks for them
4. NEVER add supervised learning, regression, clustering, classification to non-ML topics
5. Every single node must be directly related to the specific topic
6. Use practical, real-world steps and processes

OUTPUT FORMAT:
- Start with ` + "```mermaid" + `
- Use graph TD; format
- End with ` + "```" + `
- Use descriptive labels in [square brackets]
- Connect with --> arrows

TOPIC FOCUS: Create content that someone learning about this specific topic would find useful and relevant.`

// BuildPrompt builds the system and user text for topic. When category is
// not CategoryNone its exemplar is attached as a style reference.
func BuildPrompt(topic string, category Category) Prompt {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create a Mermaid flowchart diagram for: \"%s\"\n\n", topic))
	sb.WriteString(fmt.Sprintf("SPECIFIC INSTRUCTIONS FOR \"%s\":\n", topic))
	sb.WriteString(fmt.Sprintf("- Focus EXCLUSIVELY on \"%s\" concepts and processes\n", topic))
	sb.WriteString(fmt.Sprintf("- Create a logical flow of steps, concepts, or components related to \"%s\"\n", topic))
	sb.WriteString(fmt.Sprintf("- Include 6-12 nodes that show the main aspects of \"%s\"\n", topic))
	sb.WriteString(fmt.Sprintf("- Make it educational and practical for someone learning about \"%s\"\n", topic))
	sb.WriteString("- Do NOT include any unrelated concepts from other fields\n\n")

	if ex := Exemplar(category); ex != "" {
		sb.WriteString("Here's the style of diagram structure to follow (style only, not content):\n")
		sb.WriteString(ex)
		sb.WriteString(fmt.Sprintf("\n\nNow create a similar structure but for \"%s\":", topic))
	} else {
		sb.WriteString(fmt.Sprintf("Create the diagram for \"%s\":", topic))
	}

	if hint := focusHint(topic); hint != "" {
		sb.WriteString("\n\n")
		sb.WriteString(hint)
	}

	return Prompt{
		System: systemPrompt,
		User:   sb.String(),
	}
}

// focusHint is checked independently of Categorize, so a topic classified
// as technology can still receive the marketing hint.
func focusHint(topic string) string {
	lower := strings.ToLower(topic)
	switch {
	case containsAny(lower, "cooking", "recipe", "food"):
		return "For cooking topics, focus on: ingredients, preparation steps, cooking methods, timing, serving."
	case containsAny(lower, "marketing", "advertising"):
		return "For marketing topics, focus on: strategy, research, audience, channels, measurement."
	case containsAny(lower, "business", "process"):
		return "For business topics, focus on: planning, operations, management, workflow, outcomes."
	}
	return ""
}
