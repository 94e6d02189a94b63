package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Agent runs one topic through classification, prompting, the model call,
// extraction and fallback.
type Agent struct {
	llm     LLMClient
	logger  *zap.Logger
	minLen  int
	timeout time.Duration
	now     func() time.Time
}

// Option configures an Agent.
type Option func(*Agent)

// WithMinDiagramLength overrides DefaultMinDiagramLength.
func WithMinDiagramLength(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.minLen = n
		}
	}
}

// WithTimeout bounds every model call.
func WithTimeout(d time.Duration) Option {
	return func(a *Agent) { a.timeout = d }
}

func WithLogger(l *zap.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.logger = l
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(a *Agent) { a.now = now }
}

func NewAgent(llm LLMClient, opts ...Option) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	a := &Agent{
		llm:    llm,
		logger: zap.NewNop(),
		minLen: DefaultMinDiagramLength,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Generate produces a diagram for topic. A blank topic yields *InputError
// and a failed model call yields *UpstreamError. On success Result.Mermaid
// is never empty.
func (a *Agent) Generate(ctx context.Context, topic string) (Result, error) {
	if strings.TrimSpace(topic) == "" {
		return Result{}, &InputError{Reason: "Missing topic"}
	}

	category := Categorize(topic)
	prompt := BuildPrompt(topic, category)
	a.logger.Info("generating diagram",
		zap.String("topic", topic),
		zap.Stringer("category", category))

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		ue := asUpstream(err)
		a.logger.Error("text generation failed",
			zap.String("topic", topic),
			zap.String("reason", string(ue.Reason)),
			zap.Error(err))
		return Result{}, ue
	}

	mermaid, fellBack := PostProcess(raw, topic, a.minLen)
	if fellBack {
		a.logger.Info("using fallback diagram", zap.String("topic", topic))
	}
	a.logger.Info("generated diagram",
		zap.String("topic", topic),
		zap.Int("chars", len(mermaid)),
		zap.String("head", firstLines(mermaid, 3)))

	return Result{
		Raw:       raw,
		Mermaid:   mermaid,
		Topic:     topic,
		Category:  category,
		Timestamp: a.now().UTC(),
		Fallback:  fellBack,
	}, nil
}

func firstLines(s string, n int) string {
	lines := strings.SplitN(s, "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
