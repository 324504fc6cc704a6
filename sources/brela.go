package sources

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// Brela adapts BRELA, the Business Registrations and Licensing Agency registry
type Brela struct {
	client *Client
	filter recordFilter
}

// NewBrela builds the BRELA adapter
func NewBrela(cfg config.Config, filter recordFilter) *Brela {
	return &Brela{client: NewClient(cfg), filter: filter}
}

// Name returns the source identifier
func (b *Brela) Name() string { return "brela" }

var registeredNamePattern = regexp.MustCompile(`(?i)<td[^>]*>([^<]+(?:Limited|Ltd|Company|Co\.|School|Academy)[^<]*)</td>`)

// Search queries the registry and extracts registered company names from the
// results table. The registry publishes no contact columns, so phones and
// emails come from whatever else appears on the page.
func (b *Brela) Search(ctx context.Context, q model.Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("https://www.brela.go.tz/search?query=%s", url.QueryEscape(buildQuery(q)))

	body, err := b.client.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	contacts := ExtractContacts(body)

	var records []model.RawRecord
	for i, m := range registeredNamePattern.FindAllStringSubmatch(body, -1) {
		if len(records) >= q.Limit {
			break
		}

		name := util.CollapseWhitespace(m[1])
		if !b.filter.acceptName(name, q.Type) {
			continue
		}

		rec := model.RawRecord{
			Name:   name,
			Type:   q.Type,
			Source: "BRELA",
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
