package demo

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/observable/core/logger"
	"github.com/dmitrymomot/observable/core/multicast"
	"github.com/dmitrymomot/observable/core/scheduler"
	"github.com/dmitrymomot/observable/core/stream"
	"github.com/dmitrymomot/observable/pkg/async"
)

// Scenario names, in the order Run executes them.
const (
	PromiseVsStream    = "promise-vs-stream"
	ResolveOnce        = "resolve-once"
	Laziness           = "laziness"
	IndependentReplays = "independent-replays"
	Multicasting       = "multicast"
	Cancellation       = "cancellation"
)

// Demo walks through the behavior of streams next to single-shot futures,
// printing one line per observation. All timing goes through the scheduler.
type Demo struct {
	sched  scheduler.Scheduler
	cfg    Config
	logger *slog.Logger

	outMu sync.Mutex
	out   io.Writer

	mu     sync.Mutex
	subs   []*stream.Subscription
	tokens []scheduler.Token
}

// Option configures a Demo.
type Option func(*Demo)

// WithLogger sets the logger for scenario lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(d *Demo) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Demo that prints to out.
func New(sched scheduler.Scheduler, out io.Writer, cfg Config, opts ...Option) *Demo {
	d := &Demo{
		sched:  sched,
		cfg:    cfg,
		out:    out,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Names lists every scenario in execution order.
func Names() []string {
	return []string{PromiseVsStream, ResolveOnce, Laziness, IndependentReplays, Multicasting, Cancellation}
}

// Run starts the configured scenarios, or all of them when none are selected.
func (d *Demo) Run() error {
	names := d.cfg.Scenarios
	if len(names) == 0 {
		names = Names()
	}
	for _, name := range names {
		if err := d.RunScenario(name); err != nil {
			return err
		}
	}
	return nil
}

// RunScenario starts one scenario. Its synchronous output is written before
// it returns; the rest follows as the scheduler runs.
func (d *Demo) RunScenario(name string) error {
	scenarios := map[string]func(printer){
		PromiseVsStream:    d.promiseVsStream,
		ResolveOnce:        d.resolveOnce,
		Laziness:           d.laziness,
		IndependentReplays: d.independentReplays,
		Multicasting:       d.multicasting,
		Cancellation:       d.cancellation,
	}

	run, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	d.logger.Debug("scenario started", logger.Component("demo"), logger.Action(name))
	run(d.printer(name))
	return nil
}

// Stop releases every subscription and scheduled action the scenarios made.
func (d *Demo) Stop() {
	d.mu.Lock()
	subs, tokens := d.subs, d.tokens
	d.subs, d.tokens = nil, nil
	d.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
	for _, tok := range tokens {
		d.sched.Cancel(tok)
	}

	d.logger.Debug("demo stopped",
		logger.Component("demo"),
		logger.Count("subscriptions", len(subs)),
		logger.Count("actions", len(tokens)))
}

type printer func(format string, args ...any)

func (d *Demo) printer(scenario string) printer {
	return func(format string, args ...any) {
		d.outMu.Lock()
		defer d.outMu.Unlock()
		fmt.Fprintf(d.out, "[%s] %s\n", scenario, fmt.Sprintf(format, args...))
	}
}

func (d *Demo) track(sub *stream.Subscription) *stream.Subscription {
	d.mu.Lock()
	d.subs = append(d.subs, sub)
	d.mu.Unlock()
	return sub
}

func (d *Demo) schedule(delay time.Duration, action func()) {
	tok := d.sched.ScheduleOnce(delay, action)
	d.mu.Lock()
	d.tokens = append(d.tokens, tok)
	d.mu.Unlock()
}

// post runs fn on the scheduler as soon as possible, like a future continuation.
func (d *Demo) post(fn func()) {
	d.schedule(0, fn)
}

// promiseVsStream contrasts an eager future, whose continuation runs later,
// with a stream, which delivers synchronously during Subscribe.
func (d *Demo) promiseVsStream(say printer) {
	p := async.NewPromise[string]()
	p.Resolve("hello from promise")
	p.Future().OnComplete(d.post, func(v string, _ error) {
		say("promise resolved: %s", v)
	})

	src := stream.New(func(e stream.Emitter[string]) (stream.Teardown, error) {
		e.Next("hello from stream")
		return nil, nil
	})
	d.track(src.SubscribeFunc(func(v string) {
		say("stream next: %s", v)
	}))
}

// resolveOnce shows that a promise settles once while a stream keeps emitting.
func (d *Demo) resolveOnce(say printer) {
	p := async.NewPromise[string]()
	p.Resolve("first")
	d.schedule(d.cfg.SecondEmitDelay, func() {
		if !p.Resolve("second") {
			say("promise ignored second resolve")
		}
	})
	for i := 1; i <= 2; i++ {
		p.Future().OnComplete(d.post, func(v string, _ error) {
			say("promise then %d: %s", i, v)
		})
	}

	src := stream.New(func(e stream.Emitter[string]) (stream.Teardown, error) {
		e.Next("first")
		tok := d.sched.ScheduleOnce(d.cfg.SecondEmitDelay, func() {
			e.Next("second")
		})
		return func() { d.sched.Cancel(tok) }, nil
	})
	for i := 1; i <= 2; i++ {
		d.track(src.SubscribeFunc(func(v string) {
			say("stream next %d: %s", i, v)
		}))
	}
}

func (d *Demo) laziness(say printer) {
	runs := 0
	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		runs++
		e.Complete()
		return nil, nil
	})

	say("producer runs before subscribe: %d", runs)
	d.track(src.SubscribeFunc(func(int) {}))
	say("producer runs after subscribe: %d", runs)
}

func (d *Demo) independentReplays(say printer) {
	calls := 0
	src := stream.New(func(e stream.Emitter[string]) (stream.Teardown, error) {
		calls++
		e.Next(fmt.Sprintf("A%d", calls))
		e.Complete()
		return nil, nil
	})

	for i := 1; i <= 2; i++ {
		d.track(src.SubscribeFunc(func(v string) {
			say("subscriber %d got %s", i, v)
		}))
	}
}

// multicasting compares producer side effects of a cold source with a shared
// one, and shows a late subscriber receiving the replayed value.
func (d *Demo) multicasting(say printer) {
	counting := func(runs *int) *stream.Source[int] {
		return stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
			*runs++
			run := *runs
			tok := d.sched.ScheduleOnce(d.cfg.SecondEmitDelay, func() {
				e.Next(run * 10)
			})
			return func() { d.sched.Cancel(tok) }, nil
		})
	}

	var coldRuns, sharedRuns int
	cold := counting(&coldRuns)
	shared := multicast.ShareReplay(counting(&sharedRuns), 1, multicast.WithLogger(d.logger))

	for i := 1; i <= 2; i++ {
		d.track(cold.SubscribeFunc(func(v int) {
			say("cold subscriber %d got %d", i, v)
		}))
	}
	for i := 1; i <= 2; i++ {
		d.track(shared.SubscribeFunc(func(v int) {
			say("shared subscriber %d got %d", i, v)
		}))
	}

	d.schedule(2*d.cfg.SecondEmitDelay, func() {
		d.track(shared.SubscribeFunc(func(v int) {
			say("late shared subscriber got %d", v)
		}))
		say("producer runs: cold=%d shared=%d", coldRuns, sharedRuns)
	})
}

// cancellation stops an interval with a delayed unsubscribe.
func (d *Demo) cancellation(say printer) {
	ticks := 0
	sub := d.track(stream.Interval(d.sched, d.cfg.Interval).SubscribeFunc(func(n int) {
		ticks++
		say("tick %d", n)
	}))

	d.schedule(d.cfg.CancelAfter, func() {
		sub.Unsubscribe()
		say("unsubscribed after %d ticks", ticks)
	})
}
