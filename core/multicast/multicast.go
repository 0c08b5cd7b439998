package multicast

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/observable/core/logger"
	"github.com/dmitrymomot/observable/core/stream"
)

// Multicast shares one upstream subscription among any number of downstream
// subscribers. Upstream is subscribed when the first downstream attaches and
// torn down when the last one detaches.
type Multicast[T any] struct {
	upstream *stream.Source[T]
	source   *stream.Source[T]
	opts     options

	mu          sync.Mutex
	downstreams []*downstream[T]
	buffer      []T
	terminal    *stream.Notification[T]
	conn        *connection

	connections atomic.Int64
}

// Stats describes the current multicast state.
type Stats struct {
	Downstreams int   // Attached downstream subscribers
	Connected   bool  // Whether an upstream subscription is live
	Connections int64 // Upstream subscriptions made so far
	Buffered    int   // Values held for replay
	Terminated  bool  // Closed by upstream termination (WithCloseOnTerminate only)
}

// downstream is one attached subscriber. Until ready, live notifications are
// queued so they cannot overtake or interleave with the replay.
type downstream[T any] struct {
	id       uuid.UUID
	e        stream.Emitter[T]
	ready    bool
	pending  []T
	terminal *stream.Notification[T]
}

// connection tracks one upstream subscription. closed is set, under the
// multicast mutex, once the connection must not be used any more; sub may
// still be nil then if Subscribe has not returned yet.
type connection struct {
	sub    *stream.Subscription
	closed bool
}

// New wraps src. See the package documentation for the available policies.
func New[T any](src *stream.Source[T], opts ...Option) *Multicast[T] {
	o := options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Multicast[T]{
		upstream: src,
		opts:     o,
	}

	var sourceOpts []stream.Option
	if o.hook != nil {
		sourceOpts = append(sourceOpts, stream.WithErrorHook(o.hook))
	}
	m.source = stream.New(m.attach, sourceOpts...)

	return m
}

// Share multicasts src without replay.
func Share[T any](src *stream.Source[T], opts ...Option) *stream.Source[T] {
	return New(src, opts...).Source()
}

// ShareReplay multicasts src and replays the last n values to late subscribers.
func ShareReplay[T any](src *stream.Source[T], n int, opts ...Option) *stream.Source[T] {
	return New(src, append(opts, WithReplay(n))...).Source()
}

// Source returns the downstream source. Every subscription to it attaches to
// the shared upstream subscription.
func (m *Multicast[T]) Source() *stream.Source[T] {
	return m.source
}

// Subscribe attaches a downstream observer.
func (m *Multicast[T]) Subscribe(obs stream.Observer[T]) *stream.Subscription {
	return m.source.Subscribe(obs)
}

// SubscribeFunc attaches a downstream value callback.
func (m *Multicast[T]) SubscribeFunc(next func(T)) *stream.Subscription {
	return m.source.SubscribeFunc(next)
}

// Stats returns a snapshot of the multicast state.
func (m *Multicast[T]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Downstreams: len(m.downstreams),
		Connected:   m.conn != nil,
		Connections: m.connections.Load(),
		Buffered:    len(m.buffer),
		Terminated:  m.terminal != nil,
	}
}

// attach is the producer of the downstream source.
func (m *Multicast[T]) attach(e stream.Emitter[T]) (stream.Teardown, error) {
	m.mu.Lock()
	replay := slices.Clone(m.buffer)

	if m.terminal != nil {
		terminal := *m.terminal
		m.mu.Unlock()

		for _, v := range replay {
			e.Next(v)
		}
		terminal.EmitTo(e)
		return nil, nil
	}

	d := &downstream[T]{id: e.ID(), e: e}
	m.downstreams = append(m.downstreams, d)

	var c *connection
	if m.conn == nil {
		c = &connection{}
		m.conn = c
		m.connections.Add(1)
	}
	m.mu.Unlock()

	for _, v := range replay {
		if !e.Active() {
			break
		}
		e.Next(v)
	}
	m.drain(d)

	if !e.Active() {
		// The subscriber left during replay: never connect on its behalf.
		if c == nil || m.abandon(c, d) {
			m.detach(d)
			return nil, nil
		}
	}

	if c != nil {
		m.connect(c)
	}

	return func() { m.detach(d) }, nil
}

func (m *Multicast[T]) connect(c *connection) {
	m.opts.logger.Debug("multicast upstream connecting",
		logger.Component("multicast"),
		logger.Count("connection", int(m.connections.Load())))

	sub := m.upstream.Subscribe(stream.Observer[T]{
		Start: func(sub *stream.Subscription) {
			m.mu.Lock()
			c.sub = sub
			m.mu.Unlock()
		},
		Next:     func(v T) { m.onValue(c, v) },
		Error:    func(err error) { m.onTerminal(c, stream.ErrorOf[T](err)) },
		Complete: func() { m.onTerminal(c, stream.CompleteOf[T]()) },
	})

	m.mu.Lock()
	closed := c.closed
	m.mu.Unlock()
	if closed {
		// Every downstream left, or upstream terminated, while subscribing.
		sub.Unsubscribe()
	}
}

// abandon removes d and drops c before it was ever connected. It reports
// false, leaving c in place, when other downstreams attached in the meantime
// and still wait for it to connect.
func (m *Multicast[T]) abandon(c *connection, d *downstream[T]) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if idx := slices.Index(m.downstreams, d); idx >= 0 {
		m.downstreams = slices.Delete(m.downstreams, idx, idx+1)
	}
	if m.conn != c {
		return true
	}
	if len(m.downstreams) > 0 {
		return false
	}
	c.closed = true
	m.conn = nil
	m.connections.Add(-1)
	return true
}

func (m *Multicast[T]) onValue(c *connection, v T) {
	m.mu.Lock()
	if m.conn != c {
		m.mu.Unlock()
		return
	}
	if m.opts.replay > 0 {
		m.buffer = append(m.buffer, v)
		if over := len(m.buffer) - m.opts.replay; over > 0 {
			m.buffer = slices.Delete(m.buffer, 0, over)
		}
	}
	targets := make([]*downstream[T], 0, len(m.downstreams))
	for _, d := range m.downstreams {
		if !d.ready {
			d.pending = append(d.pending, v)
			continue
		}
		targets = append(targets, d)
	}
	m.mu.Unlock()

	for _, d := range targets {
		d.e.Next(v)
		m.detachInactive(d)
	}
}

// detachInactive detaches d right away once its subscription is gone, for
// example after its handler panicked while its own Subscribe call was still
// running and the teardown was not attached yet.
func (m *Multicast[T]) detachInactive(d *downstream[T]) {
	if !d.e.Active() {
		m.detach(d)
	}
}

// drain flushes values queued during the replay of d and marks it ready.
func (m *Multicast[T]) drain(d *downstream[T]) {
	for {
		m.mu.Lock()
		pending, terminal := d.pending, d.terminal
		d.pending, d.terminal = nil, nil
		if len(pending) == 0 && terminal == nil {
			d.ready = true
			m.mu.Unlock()
			return
		}
		m.mu.Unlock()

		for _, v := range pending {
			d.e.Next(v)
		}
		if terminal != nil {
			terminal.EmitTo(d.e)
			return
		}
		m.detachInactive(d)
	}
}

func (m *Multicast[T]) onTerminal(c *connection, n stream.Notification[T]) {
	m.mu.Lock()
	if m.conn != c {
		m.mu.Unlock()
		return
	}
	c.closed = true
	m.conn = nil
	targets := make([]*downstream[T], 0, len(m.downstreams))
	for _, d := range m.downstreams {
		if !d.ready {
			d.terminal = &n
			continue
		}
		targets = append(targets, d)
	}
	m.downstreams = nil

	switch {
	case m.opts.closeOnTerminate:
		m.terminal = &n
	case !m.opts.retainBuffer:
		m.buffer = nil
	}
	m.mu.Unlock()

	m.opts.logger.Debug("multicast upstream terminated",
		logger.Component("multicast"),
		logger.Notification(n.Kind.String()),
		logger.Count("downstreams", len(targets)))

	for _, d := range targets {
		n.EmitTo(d.e)
		m.detachInactive(d)
	}
}

func (m *Multicast[T]) detach(d *downstream[T]) {
	m.mu.Lock()
	idx := slices.Index(m.downstreams, d)
	if idx < 0 {
		m.mu.Unlock()
		return
	}
	m.downstreams = slices.Delete(m.downstreams, idx, idx+1)

	if len(m.downstreams) > 0 || m.conn == nil {
		m.mu.Unlock()
		return
	}

	c := m.conn
	c.closed = true
	m.conn = nil
	if !m.opts.retainBuffer {
		m.buffer = nil
	}
	sub := c.sub
	m.mu.Unlock()

	m.opts.logger.Debug("multicast upstream disconnecting",
		logger.Component("multicast"),
		logger.SubscriptionID(d.id))

	if sub != nil {
		sub.Unsubscribe()
	}
}
