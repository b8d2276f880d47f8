package logging

import (
	"errors"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type faultyWriter struct{}

func (faultyWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFanOutWriter_Write(t *testing.T) {
	sb1 := &strings.Builder{}
	sb2 := &strings.Builder{}
	w := NewFanOutWriter(sb1, sb2)

	n, err := w.Write([]byte("a message"))
	require.NoError(t, err)
	assert.Equal(t, len("a message"), n)
	assert.Equal(t, "a message", sb1.String())
	assert.Equal(t, "a message", sb2.String())
}

func TestFanOutWriter_Write_WithError(t *testing.T) {
	sb := &strings.Builder{}
	w := NewFanOutWriter(faultyWriter{}, sb, faultyWriter{})

	n, err := w.Write([]byte("msg"))
	require.Error(t, err)
	assert.Equal(t, "disk full; disk full", err.Error())
	assert.Equal(t, 3, n)
	assert.Equal(t, "msg", sb.String())
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
}

func TestSentryHook_Fire(t *testing.T) {
	var events []*sentry.Event
	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			events = append(events, event)
			return nil
		},
	})
	require.NoError(t, err)

	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	hook.hub = sentry.NewHub(client, sentry.NewScope())
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.SetOutput(&strings.Builder{})
	logger.AddHook(hook)

	logger.WithField("op", "workouts.complete").Error("plain failure")
	logger.WithError(errors.New("db down")).Error("wrapped failure")
	logger.Warn("not forwarded")

	require.Len(t, events, 2)
	assert.Equal(t, "plain failure", events[0].Message)
	assert.Equal(t, "workouts.complete", events[0].Extra["op"])
	assert.Equal(t, sentry.LevelError, events[0].Level)
	require.NotEmpty(t, events[1].Exception)
	assert.Equal(t, "db down", events[1].Exception[0].Value)
}

func TestSentryHook_Fire_NoClient(t *testing.T) {
	hook := NewSentryHook([]logrus.Level{logrus.ErrorLevel})
	hook.hub = sentry.NewHub(nil, sentry.NewScope())
	assert.Error(t, hook.Fire(logrus.NewEntry(logrus.New())))
}
