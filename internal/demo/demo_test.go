package demo_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/observable/core/scheduler"
	"github.com/dmitrymomot/observable/internal/demo"
)

func testConfig() demo.Config {
	return demo.Config{
		SecondEmitDelay: time.Second,
		Interval:        250 * time.Millisecond,
		CancelAfter:     900 * time.Millisecond,
	}
}

type harness struct {
	v   *scheduler.Virtual
	buf *bytes.Buffer
	d   *demo.Demo
}

func newHarness(t *testing.T, cfg demo.Config) *harness {
	t.Helper()

	v := scheduler.NewVirtual(time.Time{})
	buf := &bytes.Buffer{}
	d := demo.New(v, buf, cfg)
	t.Cleanup(d.Stop)

	return &harness{v: v, buf: buf, d: d}
}

// take returns the lines written since the previous call.
func (h *harness) take() []string {
	out := strings.TrimSpace(h.buf.String())
	h.buf.Reset()
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestPromiseVsStream(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.RunScenario(demo.PromiseVsStream))
	assert.Equal(t, []string{
		"[promise-vs-stream] stream next: hello from stream",
	}, h.take(), "stream delivers during Subscribe")

	h.v.Flush()
	assert.Equal(t, []string{
		"[promise-vs-stream] promise resolved: hello from promise",
	}, h.take(), "promise continuation runs on the scheduler")
}

func TestResolveOnce(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.RunScenario(demo.ResolveOnce))
	assert.Equal(t, []string{
		"[resolve-once] stream next 1: first",
		"[resolve-once] stream next 2: first",
	}, h.take())

	h.v.Flush()
	assert.Equal(t, []string{
		"[resolve-once] promise then 1: first",
		"[resolve-once] promise then 2: first",
	}, h.take())

	h.v.Advance(time.Second)
	assert.Equal(t, []string{
		"[resolve-once] promise ignored second resolve",
		"[resolve-once] stream next 1: second",
		"[resolve-once] stream next 2: second",
	}, h.take())
}

func TestLaziness(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.RunScenario(demo.Laziness))
	assert.Equal(t, []string{
		"[laziness] producer runs before subscribe: 0",
		"[laziness] producer runs after subscribe: 1",
	}, h.take())
}

func TestIndependentReplays(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.RunScenario(demo.IndependentReplays))
	assert.Equal(t, []string{
		"[independent-replays] subscriber 1 got A1",
		"[independent-replays] subscriber 2 got A2",
	}, h.take())
}

func TestMulticasting(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.RunScenario(demo.Multicasting))
	assert.Empty(t, h.take())

	h.v.Advance(time.Second)
	assert.Equal(t, []string{
		"[multicast] cold subscriber 1 got 10",
		"[multicast] cold subscriber 2 got 20",
		"[multicast] shared subscriber 1 got 10",
		"[multicast] shared subscriber 2 got 10",
	}, h.take())

	h.v.Advance(time.Second)
	assert.Equal(t, []string{
		"[multicast] late shared subscriber got 10",
		"[multicast] producer runs: cold=2 shared=1",
	}, h.take())
}

func TestCancellation(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.RunScenario(demo.Cancellation))
	h.v.Advance(2 * time.Second)

	assert.Equal(t, []string{
		"[cancellation] tick 0",
		"[cancellation] tick 1",
		"[cancellation] tick 2",
		"[cancellation] unsubscribed after 3 ticks",
	}, h.take())
	assert.Equal(t, 0, h.v.Pending())
}

func TestRun_UnknownScenario(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Scenarios = []string{demo.Laziness, "missing"}
	h := newHarness(t, cfg)

	err := h.d.Run()
	assert.ErrorIs(t, err, demo.ErrUnknownScenario)
	assert.Len(t, h.take(), 2, "scenarios before the unknown one still ran")
}

func TestStop_ReleasesEverything(t *testing.T) {
	t.Parallel()
	h := newHarness(t, testConfig())

	require.NoError(t, h.d.Run())
	require.Positive(t, h.v.Pending())

	h.d.Stop()
	assert.Equal(t, 0, h.v.Pending())

	h.take()
	h.v.Advance(time.Minute)
	assert.Empty(t, h.take(), "no scenario output after Stop")
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{
		"promise-vs-stream",
		"resolve-once",
		"laziness",
		"independent-replays",
		"multicast",
		"cancellation",
	}, demo.Names())
}
