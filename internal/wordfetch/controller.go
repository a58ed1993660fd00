// Package wordfetch owns the word fetch lifecycle: loading and error state,
// fallback substitution, and the fixed-period auto-refresh timer.
package wordfetch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/moments/internal/notify"
	"github.com/javiermolinar/moments/internal/word"
)

// DefaultInterval is the auto-refresh period.
const DefaultInterval = 60 * time.Second

// ErrInvalidInput is the class of caller errors, as opposed to network failures.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrEmptyLanguage = fmt.Errorf("%w: language code must not be empty", ErrInvalidInput)
	ErrClosed        = errors.New("controller closed")
)

// Fetcher retrieves the current word for a language.
type Fetcher interface {
	FetchWord(ctx context.Context, languageCode string) (word.Record, error)
}

// FetcherFunc adapts a function to a Fetcher.
type FetcherFunc func(ctx context.Context, languageCode string) (word.Record, error)

// FetchWord calls f.
func (f FetcherFunc) FetchWord(ctx context.Context, languageCode string) (word.Record, error) {
	return f(ctx, languageCode)
}

// Controller fetches words and keeps the last result.
//
// Fetches run concurrently and are never cancelled by newer ones. Each attempt
// is tagged with a sequence number when issued; a completion is applied only
// if its number is higher than every result applied so far, so an old
// response can't overwrite a newer one.
type Controller struct {
	fetcher  Fetcher
	clock    Clock
	interval time.Duration
	fallback word.Record
	sink     notify.Sink
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	state    State
	language string
	issued   uint64
	applied  uint64
	timer    *refreshTimer
	closed   bool
	updates  chan State
}

type refreshTimer struct {
	ticker Ticker
	stop   chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.clock = c
		}
	}
}

// WithInterval sets the auto-refresh period. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.interval = d
		}
	}
}

// WithFallback sets the record shown when the first fetch fails.
func WithFallback(r word.Record) Option {
	return func(ctl *Controller) { ctl.fallback = r.Clone() }
}

// WithSink sets where failure notifications go.
func WithSink(s notify.Sink) Option {
	return func(ctl *Controller) {
		if s != nil {
			ctl.sink = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(ctl *Controller) {
		if l != nil {
			ctl.logger = l
		}
	}
}

// New creates a controller in the Loading state. Call Initialize to start fetching
// and Close to release the timer.
func New(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher:  fetcher,
		clock:    SystemClock{},
		interval: DefaultInterval,
		fallback: word.Fallback(),
		sink:     notify.Discard,
		logger:   zap.NewNop(),
		updates:  make(chan State, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.state = State{Status: StatusLoading, LastFetch: c.clock.Now()}
	return c
}

// Initialize fetches immediately for languageCode and arms the refresh timer.
// Any timer armed by an earlier call is stopped first.
func (c *Controller) Initialize(languageCode string) error {
	if languageCode == "" {
		return ErrEmptyLanguage
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.language = languageCode
	c.state.Language = languageCode
	c.state.Status = StatusLoading
	c.disarmLocked()
	c.armLocked()
	c.mu.Unlock()

	c.fetchOnce(languageCode)
	return nil
}

// SetLanguage switches the language for this and all later fetches and fetches
// once. The timer schedule is left alone.
func (c *Controller) SetLanguage(languageCode string) error {
	if languageCode == "" {
		return ErrEmptyLanguage
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.language = languageCode
	c.state.Language = languageCode
	c.mu.Unlock()

	c.logger.Debug("language set", zap.String("lang", languageCode))
	c.fetchOnce(languageCode)
	return nil
}

// RefreshNow fetches once for the current language.
func (c *Controller) RefreshNow() {
	c.fetchOnce(c.Language())
}

// Language returns the language fetches are issued for.
func (c *Controller) Language() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.language
}

// Interval returns the auto-refresh period.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Armed reports whether the refresh timer is running.
func (c *Controller) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// State returns a snapshot of the fetch state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Updates delivers a snapshot after every state change. Only the latest
// undelivered snapshot is kept. The channel is closed by Close.
func (c *Controller) Updates() <-chan State {
	return c.updates
}

// Close disarms the timer and waits for in-flight fetches to return.
// Results that arrive after Close are dropped.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.disarmLocked()
	close(c.updates)
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	c.logger.Debug("controller closed")
	return nil
}

func (c *Controller) armLocked() {
	t := &refreshTimer{
		ticker: c.clock.NewTicker(c.interval),
		stop:   make(chan struct{}),
	}
	c.timer = t
	c.wg.Add(1)
	go c.runTimer(t)
	c.logger.Debug("refresh timer armed", zap.Duration("interval", c.interval))
}

func (c *Controller) disarmLocked() {
	if c.timer == nil {
		return
	}
	close(c.timer.stop)
	c.timer = nil
	c.logger.Debug("refresh timer disarmed")
}

func (c *Controller) runTimer(t *refreshTimer) {
	defer c.wg.Done()
	defer t.ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-c.ctx.Done():
			return
		case <-t.ticker.C():
			c.mu.Lock()
			current := c.timer == t
			lang := c.language
			c.mu.Unlock()
			if !current {
				return
			}
			c.logger.Debug("refresh tick", zap.String("lang", lang))
			c.fetchOnce(lang)
		}
	}
}

// fetchOnce issues one fetch. An empty language is ignored.
func (c *Controller) fetchOnce(languageCode string) {
	if languageCode == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.issued++
	seq := c.issued
	c.state.Status = StatusLoading
	c.state.LastError = ""
	c.publishLocked()
	c.wg.Add(1)
	c.mu.Unlock()

	c.logger.Debug("fetch started", zap.String("lang", languageCode), zap.Uint64("seq", seq))

	go func() {
		defer c.wg.Done()
		rec, err := c.fetcher.FetchWord(c.ctx, languageCode)
		c.complete(seq, languageCode, rec, err)
	}()
}

func (c *Controller) complete(seq uint64, languageCode string, rec word.Record, err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq <= c.applied {
		applied := c.applied
		c.mu.Unlock()
		c.logger.Debug("stale fetch result dropped",
			zap.String("lang", languageCode),
			zap.Uint64("seq", seq),
			zap.Uint64("applied", applied),
		)
		return
	}
	c.applied = seq
	c.state.Seq = seq

	if err == nil {
		w := rec.Clone()
		c.state.Word = &w
		c.state.Status = StatusSuccess
		c.state.LastError = ""
		c.state.LastFetch = c.clock.Now()
		c.publishLocked()
		c.mu.Unlock()
		c.logger.Debug("fetch succeeded", zap.String("lang", languageCode), zap.String("word", w.Word), zap.Uint64("seq", seq))
		return
	}

	msg := err.Error()
	c.state.Status = StatusError
	c.state.LastError = msg
	usedFallback := false
	if c.state.Word == nil {
		fb := c.fallback.Clone()
		c.state.Word = &fb
		usedFallback = true
	}
	c.publishLocked()
	c.mu.Unlock()

	c.logger.Warn("fetch failed",
		zap.String("lang", languageCode),
		zap.Uint64("seq", seq),
		zap.Bool("fallback", usedFallback),
		zap.Error(err),
	)
	c.sink.Notify(notify.Notification{
		Title:       "Error",
		Description: "Could not fetch new word: " + msg,
		Severity:    notify.SeverityDestructive,
	})
}

// publishLocked replaces any undelivered snapshot with the current one.
func (c *Controller) publishLocked() {
	if c.closed {
		return
	}
	snap := c.state.clone()
	select {
	case c.updates <- snap:
		return
	default:
	}
	select {
	case <-c.updates:
	default:
	}
	select {
	case c.updates <- snap:
	default:
	}
}
