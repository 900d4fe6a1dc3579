// Package pagemeta fetches page titles, descriptions, and icon candidates
// for URLs the user is adding to the dashboard. Results are cached in badger
// with a TTL so repeated lookups don't hit the network.
package pagemeta

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	// maxBodySize caps how much of a page we read looking for <head> metadata.
	maxBodySize = 512 * 1024

	fetchTimeout = 10 * time.Second
)

// Metadata describes a page. Fields degrade to empty when the page is
// unreachable or unparsable.
type Metadata struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Icons       []string `json:"icons,omitempty"`
}

// Scraper fetches and parses page metadata.
type Scraper struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewScraper creates a page metadata scraper.
func NewScraper(logger *slog.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     logger,
	}
}

// Scrape fetches the page and extracts title, description, and icon
// candidates. Network or parse failures return empty metadata, not an error;
// the caller can always render something.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) *Metadata {
	meta := &Metadata{URL: pageURL}

	base, err := url.Parse(pageURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") {
		return meta
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return meta
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("pagemeta fetch failed", "url", pageURL, "error", err)
		return meta
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Debug("pagemeta fetch non-200", "url", pageURL, "status", resp.StatusCode)
		return meta
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return meta
	}

	extract(doc, base, meta)

	// Every site implicitly has /favicon.ico.
	meta.Icons = append(meta.Icons, base.ResolveReference(&url.URL{Path: "/favicon.ico"}).String())
	meta.Icons = dedupe(meta.Icons)

	return meta
}

// extract walks the parse tree collecting head metadata.
func extract(n *html.Node, base *url.URL, meta *Metadata) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				meta.Title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "meta":
			name, property, content := attrs(n, "name", "property", "content")
			if content == "" {
				break
			}
			switch {
			case name == "description" && meta.Description == "":
				meta.Description = strings.TrimSpace(content)
			case property == "og:description" && meta.Description == "":
				meta.Description = strings.TrimSpace(content)
			case property == "og:title" && meta.Title == "":
				meta.Title = strings.TrimSpace(content)
			case property == "og:image":
				if resolved := resolve(base, content); resolved != "" {
					meta.Icons = append(meta.Icons, resolved)
				}
			}
		case "link":
			rel, href, _ := attrs(n, "rel", "href", "")
			if href == "" {
				break
			}
			rel = strings.ToLower(rel)
			if strings.Contains(rel, "icon") { // icon, shortcut icon, apple-touch-icon
				if resolved := resolve(base, href); resolved != "" {
					meta.Icons = append(meta.Icons, resolved)
				}
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extract(c, base, meta)
	}
}

// attrs returns the values of up to three attributes by key.
func attrs(n *html.Node, k1, k2, k3 string) (v1, v2, v3 string) {
	for _, a := range n.Attr {
		switch a.Key {
		case k1:
			v1 = a.Val
		case k2:
			v2 = a.Val
		case k3:
			v3 = a.Val
		}
	}
	return v1, v2, v3
}

// resolve makes href absolute against the page URL.
func resolve(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// normalizeKey canonicalizes a URL for cache keying.
func normalizeKey(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	u.Fragment = ""
	return fmt.Sprintf("pagemeta:%s", strings.ToLower(u.String()))
}
