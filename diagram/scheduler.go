package diagram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last edit before a render.
const DefaultDebounce = 300 * time.Millisecond

// Renderer turns renderable Mermaid source into SVG markup. id is unique per
// render request.
type Renderer interface {
	Render(ctx context.Context, id, source string) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, id, source string) (string, error)

func (f RendererFunc) Render(ctx context.Context, id, source string) (string, error) {
	return f(ctx, id, source)
}

// Display is what the scheduler currently shows.
type Display struct {
	// Seq is the render sequence that last changed this display.
	Seq uint64
	// Source and SVG are from the last successful render. They survive a
	// later rejection.
	Source string
	SVG    string
	// Err is set when the latest render was rejected.
	Err error
}

// Empty reports whether nothing has been rendered.
func (d Display) Empty() bool { return d.SVG == "" && d.Err == nil }

// RenderError is a rejection reported by the renderer.
type RenderError struct {
	ID  string
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("render %s: %v", e.ID, e.Err) }
func (e *RenderError) Unwrap() error { return e.Err }

type renderResult struct {
	seq    uint64
	source string
	svg    string
	err    error
}

// Scheduler debounces edits and feeds normalized source to a Renderer. Its
// state is owned by the Run goroutine; results of superseded renders are
// dropped rather than cancelled.
type Scheduler struct {
	renderer  Renderer
	delay     time.Duration
	logger    *zap.Logger
	onDisplay func(Display)

	edits   chan string
	results chan renderResult
	done    chan struct{}

	// owned by Run
	current string
	seq     uint64
	display Display
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) SchedulerOption {
	return func(s *Scheduler) { s.delay = d }
}

func WithSchedulerLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// OnDisplay registers fn to receive every display change. fn runs on the
// Run goroutine and must not call Update.
func OnDisplay(fn func(Display)) SchedulerOption {
	return func(s *Scheduler) { s.onDisplay = fn }
}

func NewScheduler(r Renderer, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		renderer:  r,
		delay:     DefaultDebounce,
		logger:    zap.NewNop(),
		onDisplay: func(Display) {},
		edits:     make(chan string),
		results:   make(chan renderResult),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Update replaces the current source and restarts the debounce timer. It
// blocks until Run receives the edit, and is a no-op once Run has returned.
func (s *Scheduler) Update(source string) {
	select {
	case s.edits <- source:
	case <-s.done:
	}
}

// Run processes edits and render results until ctx is done. It waits for
// in-flight renders before returning. Run must be called once.
func (s *Scheduler) Run(ctx context.Context) error {
	defer close(s.done)

	var (
		wg    sync.WaitGroup
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer wg.Wait()
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case src := <-s.edits:
			s.current = src
			if timer == nil {
				timer = time.NewTimer(s.delay)
			} else {
				timer.Reset(s.delay)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			s.seq++
			s.start(ctx, &wg, s.seq, s.current)

		case res := <-s.results:
			s.apply(res)
		}
	}
}

func (s *Scheduler) start(ctx context.Context, wg *sync.WaitGroup, seq uint64, src string) {
	// Blank editor content clears the display without a render.
	if strings.TrimSpace(src) == "" {
		s.display = Display{Seq: seq}
		s.onDisplay(s.display)
		return
	}
	source := Normalize(src)

	id := renderID(seq)
	s.logger.Debug("rendering", zap.String("id", id), zap.Int("chars", len(source)))

	wg.Add(1)
	go func() {
		defer wg.Done()
		svg, err := s.renderer.Render(ctx, id, source)
		if err != nil {
			err = &RenderError{ID: id, Err: err}
		}
		select {
		case s.results <- renderResult{seq: seq, source: source, svg: svg, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (s *Scheduler) apply(res renderResult) {
	if res.seq != s.seq {
		s.logger.Debug("discarding stale render",
			zap.Uint64("seq", res.seq),
			zap.Uint64("current", s.seq))
		return
	}
	if res.err != nil {
		s.logger.Warn("render rejected", zap.Error(res.err))
		s.display.Seq = res.seq
		s.display.Err = res.err
	} else {
		s.display = Display{Seq: res.seq, Source: res.source, SVG: res.svg}
	}
	s.onDisplay(s.display)
}

func renderID(seq uint64) string {
	return fmt.Sprintf("vm-diagram-%d", seq)
}
