package wordfetch

import (
	"context"
	"sync"
	"time"

	"github.com/javiermolinar/moments/internal/word"
)

// fakeClock only moves when Advance is called.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

type fakeTicker struct {
	clock   *fakeClock
	period  time.Duration
	next    time.Time
	ch      chan time.Time
	stopped bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) NewTicker(d time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{clock: c, period: d, next: c.now.Add(d), ch: make(chan time.Time, 1)}
	c.tickers = append(c.tickers, t)
	return t
}

// Advance moves time forward and fires every ticker that came due.
// Like time.Ticker, a tick is dropped if the previous one wasn't read.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	for _, t := range c.tickers {
		if t.stopped {
			continue
		}
		for !t.next.After(c.now) {
			select {
			case t.ch <- t.next:
			default:
			}
			t.next = t.next.Add(t.period)
		}
	}
}

// Active counts tickers that have not been stopped.
func (c *fakeClock) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.tickers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	t.stopped = true
}

// fakeFetcher answers immediately with respond(lang, callNumber).
type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	respond func(lang string, n int) (word.Record, error)
}

func (f *fakeFetcher) FetchWord(_ context.Context, lang string) (word.Record, error) {
	f.mu.Lock()
	f.calls = append(f.calls, lang)
	n := len(f.calls)
	respond := f.respond
	f.mu.Unlock()
	if respond == nil {
		return recordFor(lang), nil
	}
	return respond(lang, n)
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeFetcher) CallCount() int {
	return len(f.Calls())
}

// gatedFetcher holds every request until the test replies to it.
type gatedFetcher struct {
	pending chan *pendingFetch
}

type pendingFetch struct {
	lang  string
	reply chan fetchResult
}

type fetchResult struct {
	rec word.Record
	err error
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{pending: make(chan *pendingFetch, 16)}
}

func (g *gatedFetcher) FetchWord(ctx context.Context, lang string) (word.Record, error) {
	p := &pendingFetch{lang: lang, reply: make(chan fetchResult, 1)}
	select {
	case g.pending <- p:
	case <-ctx.Done():
		return word.Record{}, ctx.Err()
	}
	select {
	case r := <-p.reply:
		return r.rec, r.err
	case <-ctx.Done():
		return word.Record{}, ctx.Err()
	}
}

func (p *pendingFetch) succeed(rec word.Record) { p.reply <- fetchResult{rec: rec} }
func (p *pendingFetch) fail(err error)          { p.reply <- fetchResult{err: err} }

func recordFor(lang string) word.Record {
	return word.Record{
		Word:     "word-" + lang,
		Language: lang,
		Meanings: []string{"meaning of " + lang},
		Remarks:  []string{},
	}
}
