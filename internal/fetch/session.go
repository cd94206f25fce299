// Package fetch owns the shared headless browser used for rendering
// client-side job boards, plus HTML helpers for reading the result.
package fetch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// Defaults for a desktop-looking browser
const (
	DefaultUserAgent         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"
	DefaultAcceptLanguage    = "en-US,en;q=0.9"
	DefaultLocale            = "en-US"
	DefaultTimezone          = "America/New_York"
	DefaultViewportWidth     = 1366
	DefaultViewportHeight    = 768
	DefaultNavigationTimeout = 30 * time.Second
)

// Options configures a Session
type Options struct {
	Headless          bool
	ExecPath          string // empty lets chromedp locate Chrome
	UserAgent         string
	AcceptLanguage    string
	Locale            string
	Timezone          string
	ViewportWidth     int
	ViewportHeight    int
	NavigationTimeout time.Duration
	// RequestsPerSecond throttles navigations per source; 0 disables it
	RequestsPerSecond float64
	Verbose           bool
}

// DefaultOptions returns a headless desktop profile
func DefaultOptions() Options {
	return Options{
		Headless:          true,
		UserAgent:         DefaultUserAgent,
		AcceptLanguage:    DefaultAcceptLanguage,
		Locale:            DefaultLocale,
		Timezone:          DefaultTimezone,
		ViewportWidth:     DefaultViewportWidth,
		ViewportHeight:    DefaultViewportHeight,
		NavigationTimeout: DefaultNavigationTimeout,
	}
}

func (o *Options) fillDefaults() {
	d := DefaultOptions()
	if o.UserAgent == "" {
		o.UserAgent = d.UserAgent
	}
	if o.AcceptLanguage == "" {
		o.AcceptLanguage = d.AcceptLanguage
	}
	if o.Locale == "" {
		o.Locale = d.Locale
	}
	if o.Timezone == "" {
		o.Timezone = d.Timezone
	}
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		o.ViewportWidth, o.ViewportHeight = d.ViewportWidth, d.ViewportHeight
	}
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = d.NavigationTimeout
	}
}

type sourceContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	limiter *rate.Limiter
}

// Session is one browser process shared by every source in a run, with an
// isolated browser context (cookies, storage) per source name. The process
// starts on the first AcquireContext.
type Session struct {
	opts Options

	mu            sync.Mutex
	browserCtx    context.Context
	cancelAlloc   context.CancelFunc
	cancelBrowser context.CancelFunc
	sources       map[string]*sourceContext
	closed        bool
}

// NewSession creates a session. No browser is started until it is needed.
func NewSession(opts Options) *Session {
	opts.fillDefaults()
	return &Session{
		opts:    opts,
		sources: make(map[string]*sourceContext),
	}
}

// launch starts the browser process; s.mu must be held
func (s *Session) launch() error {
	if s.browserCtx != nil {
		return nil
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(s.opts.UserAgent),
		chromedp.WindowSize(s.opts.ViewportWidth, s.opts.ViewportHeight),
	)
	if s.opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(s.opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// An empty Run starts the process
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return &LaunchError{Message: "could not start Chrome", Cause: err}
	}

	if s.opts.Verbose {
		log.Printf("[BROWSER] Launched headless=%t", s.opts.Headless)
	}
	s.browserCtx = browserCtx
	s.cancelAlloc = cancelAlloc
	s.cancelBrowser = cancelBrowser
	return nil
}

// AcquireContext returns the browser context for source, creating it (and
// the browser process) on first use.
func (s *Session) AcquireContext(source string) (context.Context, error) {
	sc, err := s.acquire(source)
	if err != nil {
		return nil, err
	}
	return sc.ctx, nil
}

func (s *Session) acquire(source string) (*sourceContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	if sc, ok := s.sources[source]; ok {
		return sc, nil
	}
	if err := s.launch(); err != nil {
		return nil, err
	}

	ctx, cancel := chromedp.NewContext(s.browserCtx, chromedp.WithNewBrowserContext())
	// Creates the browser context and its first target
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, &Error{URL: "about:blank", Message: "could not create context for " + source, Cause: err}
	}

	sc := &sourceContext{ctx: ctx, cancel: cancel}
	if s.opts.RequestsPerSecond > 0 {
		sc.limiter = rate.NewLimiter(rate.Limit(s.opts.RequestsPerSecond), 1)
	}
	s.sources[source] = sc

	if s.opts.Verbose {
		log.Printf("[BROWSER] Opened context for source %q", source)
	}
	return sc, nil
}

// ReleaseContext closes the context for source. The next AcquireContext for
// the same name starts from a clean slate.
func (s *Session) ReleaseContext(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.sources[source]
	if !ok {
		return
	}
	sc.cancel()
	delete(s.sources, source)

	if s.opts.Verbose {
		log.Printf("[BROWSER] Released context for source %q", source)
	}
}

// Shutdown closes every context and then the browser process. Calling it
// more than once is safe.
func (s *Session) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	for name, sc := range s.sources {
		sc.cancel()
		delete(s.sources, name)
	}
	if s.cancelBrowser != nil {
		s.cancelBrowser()
		s.cancelAlloc()
		if s.opts.Verbose {
			log.Printf("[BROWSER] Shut down")
		}
	}
	s.browserCtx = nil
}

// Render opens a new tab in source's context, navigates to url, waits for
// settle so client-side content can hydrate, and returns the page HTML. The
// tab is closed before returning. Navigation is bounded by the session's
// navigation timeout.
func (s *Session) Render(ctx context.Context, source, url string, settle time.Duration) (string, error) {
	sc, err := s.acquire(source)
	if err != nil {
		return "", err
	}

	if sc.limiter != nil {
		if err := sc.limiter.Wait(ctx); err != nil {
			return "", &Error{URL: url, Message: "throttle wait aborted", Cause: err}
		}
	}

	tabCtx, cancelTab := chromedp.NewContext(sc.ctx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.opts.NavigationTimeout+settle)
	defer cancelTimeout()

	var html string
	err = chromedp.Run(tabCtx,
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": s.opts.AcceptLanguage}),
		emulation.SetUserAgentOverride(s.opts.UserAgent).WithAcceptLanguage(s.opts.AcceptLanguage),
		emulation.SetDeviceMetricsOverride(int64(s.opts.ViewportWidth), int64(s.opts.ViewportHeight), 1, false),
		emulation.SetLocaleOverride().WithLocale(s.opts.Locale),
		emulation.SetTimezoneOverride(s.opts.Timezone),
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		return "", &Error{URL: url, Message: "render failed", Cause: err}
	}

	if s.opts.Verbose {
		log.Printf("[BROWSER] Rendered %s (%d bytes)", url, len(html))
	}
	return html, nil
}
