package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// FacebookPages adapts the public Facebook business page search
type FacebookPages struct {
	client *Client
	filter recordFilter
}

// NewFacebookPages builds the Facebook adapter
func NewFacebookPages(cfg config.Config, filter recordFilter) *FacebookPages {
	return &FacebookPages{client: NewClient(cfg), filter: filter}
}

// Name returns the source identifier
func (f *FacebookPages) Name() string { return "facebook" }

var pageTitlePattern = regexp.MustCompile(`<a[^>]*aria-label="([^"]+)"[^>]*>`)

var pageKeywords = []string{"school", "academy", "business", "company", "shule"}

// Search scrapes page titles from the public search results, keeping only
// titles that look like organizations.
func (f *FacebookPages) Search(ctx context.Context, q model.Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("https://www.facebook.com/search/pages/?q=%s",
		url.QueryEscape(buildQuery(q)))

	body, err := f.client.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	contacts := ExtractContacts(body)
	matches := pageTitlePattern.FindAllStringSubmatch(body, -1)

	var records []model.RawRecord
	seen := make(map[string]bool)
	for i, m := range matches {
		if len(records) >= q.Limit {
			break
		}

		title := util.CollapseWhitespace(m[1])
		lower := strings.ToLower(title)
		if seen[lower] || !hasAnyKeyword(lower) || !f.filter.acceptName(title, q.Type) {
			continue
		}
		seen[lower] = true

		rec := model.RawRecord{
			Name:        title,
			Type:        q.Type,
			SocialMedia: contacts.SocialMedia,
			Source:      "Facebook Business Pages",
		}
		if i < len(contacts.Phones) {
			rec.Phone = contacts.Phones[i]
		}
		if i < len(contacts.Emails) {
			rec.Email = contacts.Emails[i]
		}
		records = append(records, rec)
	}

	return records, nil
}

func hasAnyKeyword(title string) bool {
	for _, kw := range pageKeywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}
