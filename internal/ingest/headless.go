package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// fetchListingHeadless renders the listing in headless Chrome and pulls
// article links out of the DOM. It is the fallback for pages the plain
// crawler gets an empty or bot-walled response from.
func fetchListingHeadless(ctx context.Context, listURL, linkSubstring string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 30
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, 25*time.Second)
	defer reqCancel()

	var hrefs []string
	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.EvaluateAsDevTools(`Array.from(document.querySelectorAll('a[href]'))
			.map(a => a.href)
			.filter(h => h)`, &hrefs),
	)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	out := make([]string, 0, limit)
	for _, h := range hrefs {
		if len(out) >= limit {
			break
		}
		h = strings.TrimSpace(h)
		if h == "" || !strings.Contains(h, linkSubstring) {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no links found (headless)")
	}
	return out, nil
}
