// Package discover turns a user query into a small set of candidate
// article URLs via an external search service. Discovery is best-effort:
// any failure degrades to an empty list, which the pipeline treats as a
// valid outcome.
package discover

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultMaxURLs caps a discovery batch.
const DefaultMaxURLs = 6

// DefaultBlocklist lists domains whose pages are reference walls or
// social feeds rather than scrapeable articles.
var DefaultBlocklist = []string{
	"britannica.com", "youtube.com", "youtu.be",
	"instagram.com", "facebook.com", "twitter.com", "x.com",
}

// Service queries a SearxNG-compatible search endpoint and filters the
// hits down to fetchable HTTPS article URLs.
type Service struct {
	BaseURL    string
	APIKey     string // sent as the x-api-key header
	HTTPClient *http.Client
	UserAgent  string
	// Timeout bounds the search request.
	Timeout time.Duration
	// MaxURLs caps the batch; zero selects DefaultMaxURLs.
	MaxURLs int
	// Blocklist entries are matched as substrings of the whole URL.
	Blocklist []string
	// SkipURLs is an exact-match set of known-dead URLs.
	SkipURLs []string
}

type searchResponse struct {
	Results []struct {
		URL string `json:"url"`
	} `json:"results"`
}

// Discover runs the search and returns at most MaxURLs filtered, deduped
// candidate URLs. Output order is not guaranteed to match the provider's
// ranking. A nil result is a valid "nothing found" outcome, never an
// error.
func (s *Service) Discover(ctx context.Context, query string) []string {
	if s.BaseURL == "" {
		log.Warn().Msg("search service not configured")
		return nil
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.requestURL(query), nil)
	if err != nil {
		log.Warn().Err(err).Msg("build search request")
		return nil
	}
	if s.UserAgent != "" {
		req.Header.Set("User-Agent", s.UserAgent)
	}
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	hc := s.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	resp, err := hc.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("search request failed")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("search service returned non-200")
		return nil
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		log.Warn().Err(err).Msg("decode search response")
		return nil
	}

	urls := s.filter(sr)
	log.Info().Str("query", query).Int("urls", len(urls)).Msg("discovery complete")
	return urls
}

// requestURL builds the search request. url.Values encodes spaces as '+',
// the form the search service expects. Queries asking for "latest" or
// "current" information get a one-day recency filter.
func (s *Service) requestURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	if wantsRecent(query) {
		params.Set("time_range", "day")
	}
	return strings.TrimRight(s.BaseURL, "/") + "?" + params.Encode()
}

func wantsRecent(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(q, "latest") || strings.Contains(q, "current")
}

// filter applies the candidate-URL invariants: https only, no PDFs, no
// blocklisted domains, no known-dead URLs, set-semantics dedupe, capped
// count.
func (s *Service) filter(sr searchResponse) []string {
	max := s.MaxURLs
	if max <= 0 {
		max = DefaultMaxURLs
	}
	skip := make(map[string]struct{}, len(s.SkipURLs))
	for _, u := range s.SkipURLs {
		skip[u] = struct{}{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, max)
	for _, r := range sr.Results {
		u := strings.TrimSpace(r.URL)
		if !strings.HasPrefix(u, "https://") {
			continue
		}
		if strings.HasSuffix(strings.ToLower(u), ".pdf") {
			continue
		}
		if s.blocked(u) {
			continue
		}
		if _, dead := skip[u]; dead {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
		if len(out) >= max {
			break
		}
	}
	return out
}

func (s *Service) blocked(u string) bool {
	for _, domain := range s.Blocklist {
		if strings.Contains(u, domain) {
			return true
		}
	}
	return false
}
