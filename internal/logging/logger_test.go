package logging_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/2beens/gymtrack/internal/logging"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logging.GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, logging.GetLevel("warn"))
	assert.Equal(t, logrus.TraceLevel, logging.GetLevel("trace"))
	assert.Equal(t, logrus.InfoLevel, logging.GetLevel("whatever"))
}

func TestSentryHook_Fire(t *testing.T) {
	var mutex sync.Mutex
	var captured []*sentry.Event

	client, err := sentry.NewClient(sentry.ClientOptions{
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mutex.Lock()
			defer mutex.Unlock()
			captured = append(captured, event)
			return event
		},
	})
	require.NoError(t, err)
	hub := sentry.NewHub(client, sentry.NewScope())

	hook := logging.NewSentryHookWithHub([]logrus.Level{logrus.ErrorLevel}, hub)
	assert.Equal(t, []logrus.Level{logrus.ErrorLevel}, hook.Levels())

	logger := logrus.New()
	logger.AddHook(hook)
	logger.WithError(errors.New("disk full")).WithField("key", "gymtrack-snapshot").Error("persist snapshot")
	logger.Warn("only a warning")

	mutex.Lock()
	defer mutex.Unlock()
	require.Len(t, captured, 1)
	assert.Equal(t, "persist snapshot", captured[0].Message)
	assert.Equal(t, sentry.LevelError, captured[0].Level)
	assert.Equal(t, "gymtrack-snapshot", captured[0].Extra["key"])
	require.Len(t, captured[0].Exception, 1)
	assert.Equal(t, "disk full", captured[0].Exception[0].Value)
}
