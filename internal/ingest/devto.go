package ingest

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"project-compass/internal/database"

	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
)

// DevtoFetcher harvests project-idea write-ups from dev.to tag listings
// and stores them as inactive drafts.
type DevtoFetcher struct {
	db       database.DB
	siteBase string
	tags     []string
}

func NewDevtoFetcher(db database.DB) *DevtoFetcher {
	return &DevtoFetcher{
		db:       db,
		siteBase: "https://dev.to",
		tags:     []string{"webdev", "machinelearning", "datascience", "reactnative", "blockchain"},
	}
}

type devtoArticle struct {
	URL         string
	Title       string
	Tags        []string
	Excerpt     string
	PublishedAt string
}

func (f *DevtoFetcher) Fetch(ctx context.Context, pages, workers int) error {
	if f == nil || f.db == nil {
		return fmt.Errorf("nil fetcher/db")
	}
	if pages <= 0 {
		pages = 1
	}
	if workers <= 0 {
		workers = 4
	}

	runID, _ := createIngestRun(ctx, f.db, "devto")
	if runID != uuid.Nil {
		defer func() {
			_ = finishIngestRun(context.Background(), f.db, runID, "finished")
		}()
	}

	pool := NewWorkerPool(workers, workers*2)
	pool.SetRateLimit(3)
	results := pool.Run(ctx)

listing:
	for _, tag := range f.tags {
		for page := 1; page <= pages; page++ {
			listURL := fmt.Sprintf("%s/t/%s/top/month?page=%d", strings.TrimRight(f.siteBase, "/"), tag, page)
			links, err := f.fetchListing(ctx, listURL)
			if err != nil || len(links) == 0 {
				if err != nil {
					_ = logIngest(ctx, f.db, runID, "error", fmt.Sprintf("devto listing tag=%s page=%d: %v", tag, page, err))
				}
				links, err = fetchListingHeadless(ctx, listURL, strings.TrimRight(f.siteBase, "/")+"/", 30)
				if err != nil {
					_ = logIngest(ctx, f.db, runID, "error", fmt.Sprintf("devto headless tag=%s page=%d: %v", tag, page, err))
					continue
				}
			}
			for _, link := range links {
				link := link
				accepted := pool.Submit(ctx, func(ctx context.Context) error {
					art, err := f.fetchArticle(ctx, link)
					if err != nil {
						return err
					}
					// Old write-ups churn too much to make good drafts.
					if ts := parseRFC3339OrNil(art.PublishedAt); ts != nil && time.Since(*ts) > 2*365*24*time.Hour {
						return nil
					}
					return insertDraftProject(ctx, f.db, "devto", runID, draftFromArticle(art))
				})
				if !accepted {
					break listing
				}
			}
		}
	}

	pool.Close()
	for res := range results {
		if res.Err != nil {
			_ = logIngest(ctx, f.db, runID, "error", fmt.Sprintf("devto article: %v", res.Err))
		}
	}
	return nil
}

func (f *DevtoFetcher) fetchListing(ctx context.Context, listURL string) ([]string, error) {
	c := newCollector(listURL)

	links := make([]string, 0)
	dedup := map[string]struct{}{}

	c.OnHTML("a[id^=article-link-]", func(e *colly.HTMLElement) {
		href := strings.TrimSpace(e.Attr("href"))
		if href == "" {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" {
			return
		}
		if _, ok := dedup[abs]; ok {
			return
		}
		dedup[abs] = struct{}{}
		links = append(links, abs)
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return links, nil
}

func (f *DevtoFetcher) fetchArticle(ctx context.Context, articleURL string) (devtoArticle, error) {
	c := newCollector(articleURL)

	out := devtoArticle{URL: articleURL}
	var reqErr error

	c.OnHTML("h1", func(e *colly.HTMLElement) {
		if out.Title == "" {
			out.Title = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("a.crayons-tag", func(e *colly.HTMLElement) {
		t := normalizeTag(e.Text)
		if t != "" {
			out.Tags = append(out.Tags, t)
		}
	})
	c.OnHTML("div#article-body p", func(e *colly.HTMLElement) {
		if out.Excerpt == "" {
			out.Excerpt = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("time[datetime]", func(e *colly.HTMLElement) {
		if out.PublishedAt == "" {
			out.PublishedAt = strings.TrimSpace(e.Attr("datetime"))
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return devtoArticle{}, ctx.Err()
	}
	if err := c.Visit(articleURL); err != nil {
		return devtoArticle{}, err
	}
	c.Wait()
	if reqErr != nil {
		return devtoArticle{}, reqErr
	}
	if out.Title == "" {
		return devtoArticle{}, fmt.Errorf("no title at %s", articleURL)
	}
	return out, nil
}

func draftFromArticle(art devtoArticle) draftProject {
	return draftProject{
		Title:       art.Title,
		Description: art.Excerpt,
		Domain:      classifyDomain(art.Tags),
		Difficulty:  classifyDifficulty(art.Tags),
		Tags:        art.Tags,
		TechStack:   techFromTags(art.Tags),
		URL:         art.URL,
	}
}

// techByTag maps listing tags to the display names the catalog uses.
var techByTag = map[string]string{
	"react":       "React",
	"reactnative": "React Native",
	"node":        "Node.js",
	"javascript":  "JavaScript",
	"typescript":  "TypeScript",
	"python":      "Python",
	"tensorflow":  "TensorFlow",
	"flutter":     "Flutter",
	"solidity":    "Solidity",
	"docker":      "Docker",
	"postgres":    "PostgreSQL",
	"mongodb":     "MongoDB",
	"firebase":    "Firebase",
	"arduino":     "Arduino",
}

func techFromTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if name, ok := techByTag[normalizeTag(t)]; ok {
			out = append(out, name)
		}
	}
	return out
}

func newCollector(target string) *colly.Collector {
	allowed := hostFromURL(target)
	var c *colly.Collector
	if allowed == "" {
		c = colly.NewCollector()
	} else {
		c = colly.NewCollector(colly.AllowedDomains(allowed))
	}
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, RandomDelay: 850 * time.Millisecond, Delay: 450 * time.Millisecond})

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})
	return c
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := u.Host
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
