// Package fetch retrieves article HTML with per-URL failure isolation.
// Every fetch produces a tagged Outcome; nothing in this package lets one
// bad URL abort a batch.
package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"webanswer/internal/extract"
)

// Kind tags the result variant of a single fetch.
type Kind int

const (
	KindSuccess Kind = iota
	KindFetchFailed
	KindParseFailed
	KindTimeout
	KindClientError
	KindUnhandled
)

// Outcome is the per-URL fetch result. It is always produced, never
// raised: failures become variants so batch processing continues, and the
// sentinel display string exists only at the formatting boundary.
type Outcome struct {
	URL    string
	Kind   Kind
	Status int               // HTTP status for KindFetchFailed
	Doc    *extract.Document // populated only for KindSuccess
}

// OK reports whether the fetch yielded usable text.
func (o Outcome) OK() bool { return o.Kind == KindSuccess && o.Doc != nil }

// Display renders the user-facing sentinel form of a failed outcome, or
// the cleaned text for a success.
func (o Outcome) Display() string {
	switch o.Kind {
	case KindSuccess:
		return o.Doc.Text
	case KindFetchFailed:
		return "[Fetch Failed: " + strconv.Itoa(o.Status) + "] " + o.URL
	case KindParseFailed:
		return "[Parse Failed] " + o.URL
	case KindTimeout:
		return "[Timeout] " + o.URL
	case KindClientError:
		return "[ClientError] " + o.URL
	default:
		return "[UnhandledError] " + o.URL
	}
}

// maxBodyBytes caps how much HTML is read per page.
const maxBodyBytes = 4 << 20

// Client fetches and extracts a single URL. The HTTP client is shared and
// process-owned; this struct never creates connections of its own.
type Client struct {
	HTTPClient *http.Client
	Extractor  *extract.Extractor
	UserAgent  string
	// Timeout bounds each request independently.
	Timeout time.Duration
	// Browser, when set, is tried as a fallback for pages that block
	// plain HTTP clients (403/429 or transport errors).
	Browser *BrowserFetcher
}

// Fetch retrieves one URL and converts the result into an Outcome. The
// cleaned text carries a trailing source-attribution line.
func (c *Client) Fetch(ctx context.Context, url string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("url", url).Interface("panic", r).Msg("unhandled error fetching")
			out = Outcome{URL: url, Kind: KindUnhandled}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{URL: url, Kind: KindClientError}
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Str("url", url).Msg("timeout when fetching")
			return Outcome{URL: url, Kind: KindTimeout}
		}
		log.Warn().Err(err).Str("url", url).Msg("client error fetching")
		return c.browserFallback(ctx, url, Outcome{URL: url, Kind: KindClientError})
	}
	defer resp.Body.Close()
	log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("fetched")

	if resp.StatusCode != http.StatusOK {
		out := Outcome{URL: url, Kind: KindFetchFailed, Status: resp.StatusCode}
		if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
			return c.browserFallback(ctx, url, out)
		}
		return out
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Outcome{URL: url, Kind: KindTimeout}
		}
		return Outcome{URL: url, Kind: KindClientError}
	}
	return c.extractOutcome(string(body), url)
}

func (c *Client) extractOutcome(rawHTML, url string) Outcome {
	doc := c.Extractor.Extract(rawHTML, url)
	if doc == nil {
		return Outcome{URL: url, Kind: KindParseFailed}
	}
	doc.Text += "\nSource: " + url + "\n"
	return Outcome{URL: url, Kind: KindSuccess, Doc: doc}
}

// browserFallback renders the page in headless Chrome when the plain
// client was refused. The original failure is returned unchanged if the
// fallback is disabled or also fails.
func (c *Client) browserFallback(ctx context.Context, url string, failed Outcome) Outcome {
	if c.Browser == nil {
		return failed
	}
	rawHTML, err := c.Browser.HTML(ctx, url)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("browser fallback failed")
		return failed
	}
	out := c.extractOutcome(rawHTML, url)
	if !out.OK() {
		return failed
	}
	return out
}

func (c *Client) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return 10 * time.Second
}
