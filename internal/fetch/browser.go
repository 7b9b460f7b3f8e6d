package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher renders a page in headless Chrome via the DevTools
// protocol and returns the resulting HTML. It exists for the small set of
// sites that refuse plain HTTP clients; the primary fetch path never
// touches it.
type BrowserFetcher struct {
	// ExecPath optionally points at a Chrome binary; empty uses lookup.
	ExecPath string
	// Timeout bounds the whole navigate-and-capture sequence.
	Timeout time.Duration
	// SettleDelay waits for late-rendering content after navigation.
	SettleDelay time.Duration
}

// HTML navigates to url in a fresh headless tab and captures the rendered
// document once the page has settled.
func (b *BrowserFetcher) HTML(ctx context.Context, url string) (string, error) {
	timeout := b.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	settle := b.SettleDelay
	if settle <= 0 {
		settle = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	var rendered string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &rendered),
	)
	if err != nil {
		return "", err
	}
	return rendered, nil
}
