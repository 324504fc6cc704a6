package sources

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/tzleads/contact-backend/config"
	"github.com/tzleads/contact-backend/model"
	"github.com/tzleads/contact-backend/util"
)

// eduPortalURLs are the government education portals scanned for school names
var eduPortalURLs = []string{
	"https://www.moe.go.tz",
	"https://www.necta.go.tz",
}

// EducationPortal adapts the Tanzania government education portals. It only
// produces school records; queries for other types yield nothing.
type EducationPortal struct {
	client *Client
	filter recordFilter
}

// NewEducationPortal builds the education portal adapter
func NewEducationPortal(cfg config.Config, filter recordFilter) *EducationPortal {
	return &EducationPortal{client: NewClient(cfg), filter: filter}
}

// Name returns the source identifier
func (e *EducationPortal) Name() string { return "eduportal" }

var schoolNamePattern = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,6}\s+(?:Secondary|School|Academy|College))\b`)

// Search scans each portal page for school-shaped names and pairs them with
// contacts found on the same page. A failed portal is logged and skipped;
// the search fails only when every portal is unreachable.
func (e *EducationPortal) Search(ctx context.Context, q model.Query) ([]model.RawRecord, error) {
	if q.Type != model.TypeSchool {
		return nil, nil
	}

	var records []model.RawRecord
	var lastErr error
	reached := 0

	for _, portalURL := range eduPortalURLs {
		if len(records) >= q.Limit {
			break
		}

		body, err := e.client.Fetch(ctx, portalURL)
		if err != nil {
			logger.Warn("Education portal unreachable", zap.String("url", portalURL), zap.Error(err))
			lastErr = err
			continue
		}
		reached++

		contacts := ExtractContacts(body)
		seen := make(map[string]bool)

		for i, m := range schoolNamePattern.FindAllStringSubmatch(body, -1) {
			if len(records) >= q.Limit {
				break
			}

			name := util.CollapseWhitespace(m[1])
			key := util.IdentityKey(name)
			if seen[key] || !e.filter.acceptName(name, model.TypeSchool) {
				continue
			}
			seen[key] = true

			rec := model.RawRecord{
				Name:    name,
				Type:    model.TypeSchool,
				Address: q.Location,
				Source:  "Tanzania Education Portal",
			}
			if i < len(contacts.Phones) {
				rec.Phone = contacts.Phones[i]
			}
			if i < len(contacts.Emails) {
				rec.Email = contacts.Emails[i]
			}
			records = append(records, rec)
		}
	}

	if reached == 0 && lastErr != nil {
		return nil, lastErr
	}
	return records, nil
}
