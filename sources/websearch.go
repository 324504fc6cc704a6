package sources

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/tzleads/contact-backend/config"
)

// WebsiteVerifier finds official websites through a best-effort DuckDuckGo
// HTML search. It runs behind its own rate limiter like any other source.
type WebsiteVerifier struct {
	client *Client
}

// NewWebsiteVerifier builds the verifier with its own throttled client
func NewWebsiteVerifier(cfg config.Config) *WebsiteVerifier {
	return &WebsiteVerifier{client: NewClient(cfg)}
}

var resultLinkPattern = regexp.MustCompile(`href="(https?://[^"]+)"`)

// excluded hosts are search-engine internals and social profiles, which are
// never an organization's official website
var excludedHosts = []string{"duckduckgo.com", "facebook.com", "instagram.com", "twitter.com", "x.com"}

// FirstResult returns the first organic result URL for a query, or false
// when the search fails or yields nothing usable.
func (v *WebsiteVerifier) FirstResult(ctx context.Context, query string) (string, bool) {
	searchURL := "https://duckduckgo.com/html/?q=" + url.QueryEscape(query)

	body, err := v.client.Fetch(ctx, searchURL)
	if err != nil {
		return "", false
	}

	for _, m := range resultLinkPattern.FindAllStringSubmatch(body, -1) {
		if link := m[1]; !isExcluded(link) {
			return link, true
		}
	}
	return "", false
}

func isExcluded(link string) bool {
	for _, host := range excludedHosts {
		if strings.Contains(link, host) {
			return true
		}
	}
	return false
}
