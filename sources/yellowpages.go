package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"go.uber.org/zap"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/model"
)

const yellowPagesSearchURL = "https://www.yellowpages.co.tz/search"

// YellowPages adapts the Tanzania Yellow Pages directory (yellowpages.co.tz)
type YellowPages struct {
	client *Client
	filter recordFilter
}

// NewYellowPages builds the Yellow Pages adapter
func NewYellowPages(cfg config.Config, filter recordFilter) *YellowPages {
	return &YellowPages{client: NewClient(cfg), filter: filter}
}

// Name returns the source identifier
func (y *YellowPages) Name() string { return "yellowpages" }

var (
	listingPattern = regexp.MustCompile(`(?is)<div[^>]*class="[^"]*listing[^"]*"[^>]*>(.*?)</div>`)
	headingPattern = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	addressPattern = regexp.MustCompile(`(?i)(?:Address|Location)[:\s]+([^<>\n]+)`)
)

// Search pages through directory results until the limit is reached or the
// directory runs out of listings. Pagination is capped at five pages.
func (y *YellowPages) Search(ctx context.Context, q model.Query) ([]model.RawRecord, error) {
	var records []model.RawRecord

	for page := 1; page <= 5 && len(records) < q.Limit; page++ {
		searchURL := fmt.Sprintf("%s?query=%s&location=%s&page=%d",
			yellowPagesSearchURL, url.QueryEscape(buildQuery(q)), url.QueryEscape(q.Location), page)

		body, err := y.client.Fetch(ctx, searchURL)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break // keep what earlier pages produced
		}

		listings := listingPattern.FindAllStringSubmatch(body, -1)
		if len(listings) == 0 {
			break
		}

		for _, listing := range listings {
			rec, ok := y.parseListing(listing[1], q.Type)
			if !ok {
				continue
			}
			records = append(records, rec)
			if len(records) >= q.Limit {
				break
			}
		}
	}

	return records, nil
}

// parseListing extracts one raw record from a listing fragment. Fragments
// without a usable name are skipped, never fatal.
func (y *YellowPages) parseListing(fragment string, orgType model.OrgType) (model.RawRecord, bool) {
	heading := headingPattern.FindStringSubmatch(fragment)
	if heading == nil {
		return model.RawRecord{}, false
	}

	name := stripTags(heading[1])
	if !y.filter.acceptName(name, orgType) {
		logger.Debug("Skipping listing with rejected name", zap.String("name", name))
		return model.RawRecord{}, false
	}

	contacts := ExtractContacts(fragment)

	rec := model.RawRecord{
		Name:        name,
		Type:        orgType,
		SocialMedia: contacts.SocialMedia,
		Source:      "Tanzania Yellow Pages",
	}
	if len(contacts.Phones) > 0 {
		rec.Phone = contacts.Phones[0]
	}
	if len(contacts.Emails) > 0 {
		rec.Email = contacts.Emails[0]
	}
	if len(contacts.Websites) > 0 {
		rec.WebsiteURL = contacts.Websites[0]
	}
	if m := addressPattern.FindStringSubmatch(fragment); m != nil {
		rec.Address = m[1]
	}

	return rec, true
}

// buildQuery joins type and keywords into one directory search string
func buildQuery(q model.Query) string {
	query := string(q.Type)
	for _, kw := range q.Keywords {
		query += " " + kw
	}
	return query
}
