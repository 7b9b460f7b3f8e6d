package fetch

import (
	"context"
	"sync"
)

// FetchAll fans out one fetch per URL and waits for all of them. There is
// no artificial concurrency cap: discovery already bounds the batch to a
// handful of URLs. The returned slice has exactly one Outcome per input
// URL, in input order, and the call completes even when every fetch
// fails.
func (c *Client) FetchAll(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))
	var wg sync.WaitGroup
	wg.Add(len(urls))
	for i, u := range urls {
		go func(i int, u string) {
			defer wg.Done()
			outcomes[i] = c.Fetch(ctx, u)
		}(i, u)
	}
	wg.Wait()
	return outcomes
}
