package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// recordingLLM returns a canned answer and remembers the prompt it saw.
type recordingLLM struct {
	resp   string
	err    error
	calls  int
	prompt Prompt
}

func (r *recordingLLM) Complete(_ context.Context, p Prompt) (string, error) {
	r.calls++
	r.prompt = p
	return r.resp, r.err
}

// blockingLLM waits until its context is done.
type blockingLLM struct{}

func (blockingLLM) Complete(ctx context.Context, _ Prompt) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func newTestAgent(t *testing.T, llm LLMClient, opts ...Option) *Agent {
	t.Helper()
	fixed := time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC)
	opts = append([]Option{WithLogger(zaptest.NewLogger(t)), withClock(func() time.Time { return fixed })}, opts...)
	a, err := NewAgent(llm, opts...)
	require.NoError(t, err)
	return a
}

func TestNewAgent_RequiresLLM(t *testing.T) {
	_, err := NewAgent(nil)
	require.Error(t, err)
}

func TestGenerate_BlankTopicIsInputError(t *testing.T) {
	llm := &recordingLLM{}
	a := newTestAgent(t, llm)

	for _, topic := range []string{"", "   ", "\n\t"} {
		_, err := a.Generate(context.Background(), topic)
		var ie *InputError
		require.ErrorAs(t, err, &ie)
	}
	assert.Zero(t, llm.calls)
}

func TestGenerate_UsesExtractedDiagram(t *testing.T) {
	body := "graph TD;\n    A[Boil Water] --> B[Add Pasta];\n    B --> C[Drain];"
	llm := &recordingLLM{resp: "<think>ok</think>\n```mermaid\n" + body + "\n```"}
	a := newTestAgent(t, llm)

	res, err := a.Generate(context.Background(), "Cooking pasta")
	require.NoError(t, err)

	assert.Equal(t, body, res.Mermaid)
	assert.False(t, res.Fallback)
	assert.Equal(t, CategoryCooking, res.Category)
	assert.Equal(t, "Cooking pasta", res.Topic)
	assert.Equal(t, llm.resp, res.Raw)
	assert.Equal(t, time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC), res.Timestamp)
	assert.Contains(t, llm.prompt.User, `"Cooking pasta"`)
	assert.Contains(t, llm.prompt.User, Exemplar(CategoryCooking))
}

func TestGenerate_ShortExtractionUsesFallback(t *testing.T) {
	llm := &recordingLLM{resp: "```mermaid\ngraph TD;\nA-->B\n```"}
	a := newTestAgent(t, llm)

	res, err := a.Generate(context.Background(), "Cooking pasta")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, Fallback("Cooking pasta"), res.Mermaid)
	assert.Contains(t, res.Mermaid, "Cooking pasta")
}

func TestGenerate_EmptyModelOutputUsesFallback(t *testing.T) {
	a := newTestAgent(t, &recordingLLM{resp: ""})
	res, err := a.Generate(context.Background(), "bees")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Mermaid)
	assert.Equal(t, CategoryNone, res.Category)
}

func TestGenerate_MinLengthOption(t *testing.T) {
	llm := &recordingLLM{resp: "```mermaid\ngraph TD;\nA-->B\n```"}
	a := newTestAgent(t, llm, WithMinDiagramLength(10))
	res, err := a.Generate(context.Background(), "bees")
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Equal(t, "graph TD;\nA-->B", res.Mermaid)
}

func TestGenerate_UpstreamError(t *testing.T) {
	llm := &recordingLLM{err: &UpstreamError{Reason: UpstreamStatus, StatusCode: 429, Err: errors.New("rate limited")}}
	a := newTestAgent(t, llm)

	_, err := a.Generate(context.Background(), "bees")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, UpstreamStatus, ue.Reason)
	assert.Equal(t, 429, ue.StatusCode)
	assert.Equal(t, 1, llm.calls)
}

func TestGenerate_PlainErrorBecomesNetworkError(t *testing.T) {
	a := newTestAgent(t, &recordingLLM{err: errors.New("connection refused")})
	_, err := a.Generate(context.Background(), "bees")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, UpstreamNetwork, ue.Reason)
	assert.False(t, ue.Timeout())
}

func TestGenerate_Timeout(t *testing.T) {
	a := newTestAgent(t, blockingLLM{}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := a.Generate(context.Background(), "bees")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.True(t, ue.Timeout())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestGenerate_MockLLM(t *testing.T) {
	a := newTestAgent(t, MockLLM{})
	res, err := a.Generate(context.Background(), "Growing tomatoes")
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.True(t, strings.HasPrefix(res.Mermaid, "graph TD;"))
	assert.Contains(t, res.Mermaid, "A[Growing tomatoes]")
}

func TestFirstLines(t *testing.T) {
	assert.Equal(t, "a\nb\nc", firstLines("a\nb\nc\nd", 3))
	assert.Equal(t, "a", firstLines("a", 3))
}
