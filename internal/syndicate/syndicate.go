// Package syndicate fetches an external RSS feed for sidebar display.
// This sits outside the build core: any failure degrades to an empty
// item list and must never fail the build.
package syndicate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

const (
	defaultTimeout = 5 * time.Second
	userAgent      = "hmblog/1.0"

	// 防御性上限，外部 feed 不可信
	maxBodyBytes = 4 << 20
)

type Item struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

var (
	itemRE      = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	titleCDATA  = regexp.MustCompile(`(?s)<title><!\[CDATA\[(.*?)\]\]></title>`)
	titlePlain  = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	linkElement = regexp.MustCompile(`<link>([^<]+)</link>`)
)

type Client struct {
	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch downloads the feed and extracts item titles and links. The
// returned error is informational; callers log it and proceed with the
// empty slice.
func (c *Client) Fetch(ctx context.Context, feedURL string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return ParseItems(string(body)), nil
}

// ParseItems is a regex scrape, not an XML parser: good enough for the
// title/link pairs the sidebar shows, tolerant of feeds that would
// choke a strict decoder.
func ParseItems(xml string) []Item {
	var items []Item
	for _, m := range itemRE.FindAllStringSubmatch(xml, -1) {
		itemXML := m[1]

		var title string
		if tm := titleCDATA.FindStringSubmatch(itemXML); tm != nil {
			title = tm[1]
		} else if tm := titlePlain.FindStringSubmatch(itemXML); tm != nil {
			title = tm[1]
		}
		title = strings.TrimSpace(title)

		var link string
		if lm := linkElement.FindStringSubmatch(itemXML); lm != nil {
			link = strings.TrimSpace(lm[1])
		}

		if title != "" && link != "" {
			items = append(items, Item{Title: title, Link: link})
		}
	}
	return items
}
