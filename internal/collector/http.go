// Package collector provides the production adapters behind the analyzer's
// capability interfaces: HTTP reachability, TLS certificate inspection, WHOIS
// registration lookup, and DNS probing of typo variants. Each adapter
// interprets raw transport results into the analyzer's normalized finding
// shapes and returns plain errors for the engine to downgrade into
// Unavailable signals.
package collector

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/phishguard/phishguard/internal/analyzer"
	"github.com/phishguard/phishguard/internal/shared/constants"
)

// HTTPCollector probes a host's front page and reports reachability,
// redirect chain length, and whether the site ends up on HTTPS.
type HTTPCollector struct {
	UserAgent string
	// Transport overrides the default transport, for tests.
	Transport http.RoundTripper
}

// Fetch implements analyzer.HTTPCapability. HTTPS is attempted first; a
// failed HTTPS connection falls back to plain HTTP, mirroring how a browser
// user would end up on the site.
func (c *HTTPCollector) Fetch(ctx context.Context, host string) (*analyzer.HTTPFinding, error) {
	finding, httpsErr := c.fetch(ctx, "https://"+host)
	if httpsErr == nil {
		return finding, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	finding, httpErr := c.fetch(ctx, "http://"+host)
	if httpErr != nil {
		return nil, fmt.Errorf("https: %v; http: %w", httpsErr, httpErr)
	}
	return finding, nil
}

func (c *HTTPCollector) fetch(ctx context.Context, url string) (*analyzer.HTTPFinding, error) {
	redirects := 0
	client := &http.Client{
		Transport: c.transport(),
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			redirects = len(via)
			if redirects >= constants.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	return &analyzer.HTTPFinding{
		StatusCode:    resp.StatusCode,
		RedirectCount: redirects,
		UsesHTTPS:     resp.Request.URL.Scheme == "https",
	}, nil
}

func (c *HTTPCollector) transport() http.RoundTripper {
	if c.Transport != nil {
		return c.Transport
	}
	// Certificate posture is the TLS collector's job; the reachability probe
	// must still reach sites with broken certificates.
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402
	}
}
