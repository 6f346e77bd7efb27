// Package health checks stream URLs to tell whether they are serving data.
package health

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/voyagen/sportsvault/internal/models"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultChunkSize = 512
)

// Checker performs single-request liveness checks. It is safe to reuse
// across checks; each Check issues exactly one GET.
type Checker struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
	chunkSize int
	log       *zap.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithTransport replaces the HTTP transport, e.g. with a test double.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Checker) { c.client.Transport = rt }
}

// WithChunkSize sets how many body bytes are read to confirm liveness.
func WithChunkSize(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithLogger attaches a logger for per-request debug output.
func WithLogger(log *zap.Logger) Option {
	return func(c *Checker) { c.log = log.Named("health") }
}

// NewChecker returns a Checker sending userAgent and bounding each check by
// timeout (connection, response headers and the first chunk of body).
func NewChecker(userAgent string, timeout time.Duration, opts ...Option) *Checker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Checker{
		client:    &http.Client{Transport: newTransport(timeout)},
		userAgent: userAgent,
		timeout:   timeout,
		chunkSize: defaultChunkSize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newTransport(timeout time.Duration) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.DialContext = (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext
	t.TLSHandshakeTimeout = timeout
	t.ResponseHeaderTimeout = timeout
	return t
}

// Check requests url once. It never returns an error: every failure is reported
// through the result's error tag.
func (c *Checker) Check(ctx context.Context, url *string) (res models.CheckResult) {
	if url == nil || *url == "" {
		return models.Failed(models.CheckErrNoURL)
	}
	if !isHTTP(*url) {
		return models.Failed(models.CheckErrNonHTTP)
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Warn("check panicked", zap.String("url", *url), zap.Any("panic", r))
			res = models.Failed(fmt.Sprint(r))
		}
	}()
	return c.do(ctx, *url)
}

func (c *Checker) do(ctx context.Context, url string) models.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Failed(err.Error())
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("url", url), zap.Error(err))
		return models.Failed(err.Error())
	}
	latency := time.Since(start).Milliseconds()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Failed(fmt.Sprintf("status_%d", resp.StatusCode))
	}

	// A failed read counts as an empty chunk.
	buf := make([]byte, c.chunkSize)
	n, _ := io.ReadAtLeast(resp.Body, buf, 1)

	res := models.CheckResult{Alive: n > 0, LatencyMs: &latency}
	if !res.Alive {
		tag := models.CheckErrNoBytes
		res.Error = &tag
	}
	return res
}

func isHTTP(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
