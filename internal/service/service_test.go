package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpvsettling/ai-gateway/internal/domain"
)

type fakeSink struct {
	events []domain.LogEvent
	err    error
}

func (s *fakeSink) Write(e domain.LogEvent) error {
	s.events = append(s.events, e)
	return s.err
}

type fakeRepo struct {
	sent int
	err  error
}

func (r *fakeRepo) SendLog(context.Context, domain.LogEvent) error {
	r.sent++
	return r.err
}

func (r *fakeRepo) Close() error { return nil }

type consoleLine struct {
	level   domain.LogLevel
	message string
}

type fakeConsole struct {
	lines []consoleLine
}

func (c *fakeConsole) System(level domain.LogLevel, _ string, message string) {
	c.lines = append(c.lines, consoleLine{level, message})
}

type fakeDecider struct {
	text string
	err  error
	req  domain.DecisionRequest
}

func (d *fakeDecider) Decide(_ context.Context, req domain.DecisionRequest) (string, error) {
	d.req = req
	return d.text, d.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogServiceRecord(t *testing.T) {
	t.Run("fan-out failure does not fail the request", func(t *testing.T) {
		sink := &fakeSink{}
		repo := &fakeRepo{err: errors.New("broker down")}
		svc := NewLogService(sink, repo, discard())

		require.NoError(t, svc.Record(context.Background(), domain.LogEvent{Message: "m"}))
		require.Len(t, sink.events, 1)
		assert.Equal(t, domain.LogLevelInfo, sink.events[0].Level)
		assert.Equal(t, 1, repo.sent)
	})

	t.Run("sink failure is returned and skips fan-out", func(t *testing.T) {
		sink := &fakeSink{err: errors.New("disk full")}
		repo := &fakeRepo{}
		svc := NewLogService(sink, repo, discard())

		err := svc.Record(context.Background(), domain.LogEvent{Message: "m"})
		require.EqualError(t, err, "disk full")
		assert.Zero(t, repo.sent)
	})

	t.Run("nil repository", func(t *testing.T) {
		svc := NewLogService(&fakeSink{}, nil, discard())
		assert.NoError(t, svc.Record(context.Background(), domain.LogEvent{}))
	})
}

func TestDecisionService(t *testing.T) {
	t.Run("fills default model and summarizes", func(t *testing.T) {
		decider := &fakeDecider{text: `{"action":"BUILD_ROAD","target":"3,4","reason":"expand"}`}
		console := &fakeConsole{}
		svc := NewDecisionService(decider, console, "cfg-model")

		text, err := svc.Decide(context.Background(), domain.DecisionRequest{Prompt: "p"})
		require.NoError(t, err)
		assert.Equal(t, decider.text, text)
		assert.Equal(t, "cfg-model", decider.req.Model)

		require.Len(t, console.lines, 2)
		assert.Equal(t, "AI Decision Request for cfg-model", console.lines[0].message)
		assert.Equal(t, domain.LogLevelInfo, console.lines[1].level)
		assert.Contains(t, console.lines[1].message, "BUILD_ROAD -> 3,4")
	})

	t.Run("non-decision reply passes through with a warning", func(t *testing.T) {
		decider := &fakeDecider{text: `[1,2]`}
		console := &fakeConsole{}
		svc := NewDecisionService(decider, console, "")

		text, err := svc.Decide(context.Background(), domain.DecisionRequest{Model: "m1"})
		require.NoError(t, err)
		assert.Equal(t, `[1,2]`, text)
		assert.Equal(t, domain.LogLevelWarn, console.lines[len(console.lines)-1].level)
	})

	t.Run("errors are printed and returned", func(t *testing.T) {
		boom := errors.New("boom")
		console := &fakeConsole{}
		svc := NewDecisionService(&fakeDecider{err: boom}, console, "")

		_, err := svc.Decide(context.Background(), domain.DecisionRequest{})
		require.ErrorIs(t, err, boom)
		last := console.lines[len(console.lines)-1]
		assert.Equal(t, domain.LogLevelError, last.level)
		assert.Contains(t, last.message, "boom")
	})
}
