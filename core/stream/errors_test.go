package stream_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/observable/core/stream"
)

// Tests in this file replace process-wide state and must not run in parallel.

func TestSetErrorHook(t *testing.T) {
	var got []error
	prev := stream.SetErrorHook(func(err error) { got = append(got, err) })
	t.Cleanup(func() { stream.SetErrorHook(prev) })

	boom := errors.New("boom")
	stream.Fail[int](boom).SubscribeFunc(func(int) {})

	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], stream.ErrUnhandled)
	assert.ErrorIs(t, got[0], boom)
}

func TestSetErrorHook_SourceHookWins(t *testing.T) {
	var global, local []error
	prev := stream.SetErrorHook(func(err error) { global = append(global, err) })
	t.Cleanup(func() { stream.SetErrorHook(prev) })

	src := stream.New(func(e stream.Emitter[int]) (stream.Teardown, error) {
		return nil, errors.New("boom")
	}, stream.WithErrorHook(func(err error) { local = append(local, err) }))
	src.SubscribeFunc(func(int) {})

	assert.Empty(t, global)
	assert.Len(t, local, 1)
}

func TestDefaultErrorHook_Logs(t *testing.T) {
	var buf bytes.Buffer
	prevLogger := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prevLogger) })

	prev := stream.SetErrorHook(nil)
	t.Cleanup(func() { stream.SetErrorHook(prev) })

	stream.Fail[int](errors.New("visible failure")).SubscribeFunc(func(int) {})

	out := buf.String()
	assert.Contains(t, out, "stream error")
	assert.Contains(t, out, "component=stream")
	assert.Contains(t, out, "visible failure")
}
