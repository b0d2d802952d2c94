// Package refresh keeps timestamp elements of a view rendered as relative
// time, re-deriving every element from the raw value it first displayed.
package refresh

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/diogenes-ai-code/timeago/internal/common"
	"github.com/diogenes-ai-code/timeago/internal/timestamp"
)

// DefaultInterval is the period between ticks.
const DefaultInterval = 60 * time.Second

// Attributes written on every element.
const (
	AttrTitle    = "title"
	AttrOriginal = "data-original"
)

// Element is a timestamp-bearing display node.
type Element interface {
	// ID identifies the element for as long as it stays in the view.
	ID() string
	// Text returns the element's visible text.
	Text() string
	SetText(text string)
	SetAttr(key, val string)
}

// View enumerates the timestamp elements currently present. Each must not
// let the element set change while fn runs.
type View interface {
	Each(fn func(Element))
}

// Config holds the scheduler configuration.
type Config struct {
	// View is the set of elements to keep fresh.
	View View

	// Parser converts captured raw values. Default: timestamp.DefaultConfig().
	Parser *timestamp.Parser

	// Interval between ticks. Default: DefaultInterval.
	Interval time.Duration

	// Now returns the reference time for a tick. Default: time.Now.
	Now func() time.Time

	// OnTick is called after every tick with its result (optional).
	OnTick func(TickResult)

	// Logger for scheduler events (optional).
	Logger *log.Logger
}

// Rendered is the outcome for one element.
type Rendered struct {
	ID     string `json:"id"`
	Raw    string `json:"raw"`
	Text   string `json:"text"`
	Parsed bool   `json:"parsed"`
}

// TickResult summarizes one tick.
type TickResult struct {
	At       time.Time  `json:"at"`
	Elements int        `json:"elements"`
	Captured int        `json:"captured"`
	Fallback int        `json:"fallback"`
	Dropped  int        `json:"dropped"`
	Rendered []Rendered `json:"rendered"`
}

// Scheduler re-renders a View on a fixed interval.
type Scheduler struct {
	config Config
	logger *log.Logger

	tickMu sync.Mutex

	mu       sync.Mutex
	captured map[string]timestamp.Raw
	last     TickResult

	runMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Scheduler.
func New(config Config) *Scheduler {
	if config.Parser == nil {
		config.Parser = timestamp.New(timestamp.DefaultConfig())
	}
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[timeago-refresh] ", log.LstdFlags)
	}

	return &Scheduler{
		config:   config,
		logger:   logger,
		captured: make(map[string]timestamp.Raw),
		last:     TickResult{Rendered: []Rendered{}},
	}
}

// Interval returns the period between ticks.
func (s *Scheduler) Interval() time.Duration {
	return s.config.Interval
}

// Tick renders every element of the view against now. Elements seen for the
// first time have their current text captured as their permanent raw value.
func (s *Scheduler) Tick(now time.Time) TickResult {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	result := s.render(now)
	if s.config.OnTick != nil {
		s.config.OnTick(result)
	}
	return result
}

func (s *Scheduler) render(now time.Time) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := TickResult{At: now, Rendered: []Rendered{}}
	seen := make(map[string]bool)

	if s.config.View != nil {
		s.config.View.Each(func(el Element) {
			id := el.ID()
			seen[id] = true

			raw, ok := s.captured[id]
			if !ok {
				raw = timestamp.Classify(el.Text())
				s.captured[id] = raw
				result.Captured++
			}

			text := raw.String()
			instant, parsed := s.config.Parser.Parse(raw)
			if parsed {
				text = common.FormatRelative(instant, now)
			} else {
				result.Fallback++
			}

			el.SetText(text)
			el.SetAttr(AttrTitle, raw.String())
			el.SetAttr(AttrOriginal, raw.String())

			result.Elements++
			result.Rendered = append(result.Rendered, Rendered{
				ID:     id,
				Raw:    raw.String(),
				Text:   text,
				Parsed: parsed,
			})
		})
	}

	for id := range s.captured {
		if !seen[id] {
			delete(s.captured, id)
			result.Dropped++
		}
	}

	s.last = result
	return result
}

// TickNow runs a tick against the configured clock.
func (s *Scheduler) TickNow() TickResult {
	return s.Tick(s.config.Now())
}

// Last returns the result of the most recent tick.
func (s *Scheduler) Last() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Captured returns the raw value captured for an element, if any.
func (s *Scheduler) Captured(id string) (timestamp.Raw, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.captured[id]
	return raw, ok
}

// Run ticks immediately and then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.logTick(s.TickNow())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.logTick(s.TickNow())
		}
	}
}

// Start runs the scheduler in the background. Calling Start on a running
// scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		s.Run(ctx)
	}()
}

// Stop cancels the background loop started by Start and waits for it to exit.
func (s *Scheduler) Stop() {
	s.runMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.runMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Scheduler) logTick(r TickResult) {
	if r.Elements == 0 && r.Dropped == 0 {
		return
	}
	s.logger.Printf("refreshed %d timestamps (%d new, %d unparseable, %d dropped)",
		r.Elements, r.Captured, r.Fallback, r.Dropped)
}
