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

// GoogleMaps adapts the public Google Maps search page
type GoogleMaps struct {
	client *Client
	filter recordFilter
}

// NewGoogleMaps builds the Google Maps adapter
func NewGoogleMaps(cfg config.Config, filter recordFilter) *GoogleMaps {
	return &GoogleMaps{client: NewClient(cfg), filter: filter}
}

// Name returns the source identifier
func (g *GoogleMaps) Name() string { return "googlemaps" }

var articlePattern = regexp.MustCompile(`aria-label="([^"]+)"[^>]*role="article"`)

// Search scrapes place names from one maps results page. Phones and emails
// are paired with names positionally, which is as much structure as the
// public page exposes.
func (g *GoogleMaps) Search(ctx context.Context, q model.Query) ([]model.RawRecord, error) {
	searchURL := fmt.Sprintf("https://www.google.com/maps/search/%s",
		url.PathEscape(buildQuery(q)+" "+q.Location))

	body, err := g.client.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	contacts := ExtractContacts(body)
	matches := articlePattern.FindAllStringSubmatch(body, -1)

	var records []model.RawRecord
	for i, m := range matches {
		if len(records) >= q.Limit {
			break
		}

		name := util.CollapseWhitespace(m[1])
		if !g.filter.acceptName(name, q.Type) {
			continue
		}

		rec := model.RawRecord{
			Name:    name,
			Type:    q.Type,
			Address: q.Location,
			Source:  "Google Maps",
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
