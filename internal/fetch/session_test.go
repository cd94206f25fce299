package fetch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.Headless)
	assert.Equal(t, 1366, opts.ViewportWidth)
	assert.Equal(t, 768, opts.ViewportHeight)
	assert.Equal(t, "en-US", opts.Locale)
	assert.Equal(t, DefaultNavigationTimeout, opts.NavigationTimeout)
}

func TestNewSession_FillsDefaults(t *testing.T) {
	s := NewSession(Options{Locale: "en-GB"})

	assert.Equal(t, "en-GB", s.opts.Locale)
	assert.Equal(t, DefaultUserAgent, s.opts.UserAgent)
	assert.Equal(t, DefaultAcceptLanguage, s.opts.AcceptLanguage)
	assert.Equal(t, DefaultViewportWidth, s.opts.ViewportWidth)
}

func TestSession_ShutdownIdempotent(t *testing.T) {
	s := NewSession(DefaultOptions())

	s.Shutdown()
	s.Shutdown()

	_, err := s.AcquireContext("hiringcafe")
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = s.Render(context.Background(), "hiringcafe", "https://example.com", time.Millisecond)
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_ReleaseUnknownIsNoop(t *testing.T) {
	s := NewSession(DefaultOptions())
	defer s.Shutdown()

	assert.NotPanics(t, func() { s.ReleaseContext("never-acquired") })
}

func TestSession_LaunchFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.ExecPath = filepath.Join(t.TempDir(), "no-such-chrome")
	s := NewSession(opts)
	defer s.Shutdown()

	_, err := s.AcquireContext("hiringcafe")

	require.Error(t, err)
	assert.True(t, IsLaunchError(err))
	assert.Contains(t, err.Error(), "browser launch failed")
}
