// Package export serializes organization sets to CSV, JSON and textual
// reports, and loads previously exported CSV datasets back in.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tzleads/contact-backend/model"
)

// Failure classes: an export failure is fatal for the export operation only,
// an input file failure is fatal for the load operation only.
var (
	ErrExportFailed = errors.New("export failed")
	ErrInputFile    = errors.New("input file error")
)

// Header is the fixed CSV column order
var Header = []string{
	"Name",
	"Phone/Mobile",
	"Email",
	"Website Status",
	"Website URL",
	"Address/Location",
	"Priority Tier",
	"Contact Status",
	"Notes",
}

// Filter selects organizations for serialization without mutating the store
type Filter func(model.Organization) bool

// NoWebsiteOnly keeps organizations without a confirmed website
func NoWebsiteOnly() Filter {
	return func(o model.Organization) bool { return o.WebsiteStatus != model.HasWebsite }
}

// ByTier keeps organizations in one priority tier
func ByTier(tier model.Tier) Filter {
	return func(o model.Organization) bool { return o.Tier == tier }
}

// ByType keeps organizations of one type
func ByType(orgType model.OrgType) Filter {
	return func(o model.Organization) bool { return o.Type == orgType }
}

// Apply returns the organizations passing every filter
func Apply(orgs []model.Organization, filters ...Filter) []model.Organization {
	out := make([]model.Organization, 0, len(orgs))
	for _, org := range orgs {
		keep := true
		for _, f := range filters {
			if !f(org) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, org)
		}
	}
	return out
}

// WriteCSV writes the dataset with the fixed header
func WriteCSV(w io.Writer, orgs []model.Organization) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	for _, org := range orgs {
		row := []string{
			org.Name,
			strings.Join(org.Phones, "; "),
			strings.Join(org.Emails, "; "),
			string(org.WebsiteStatus),
			org.WebsiteURL,
			org.Address,
			string(org.Tier),
			string(org.ContactStatus),
			org.Notes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the dataset to a file
func SaveCSV(path string, orgs []model.Organization) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer f.Close()

	if err := WriteCSV(f, orgs); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

// ReadCSV parses a previously exported dataset. Columns are matched by
// header name, so column reordering and extra columns are tolerated.
func ReadCSV(r io.Reader) ([]model.Organization, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFile, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	if _, ok := index["Name"]; !ok {
		return nil, fmt.Errorf("%w: missing Name column", ErrInputFile)
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var orgs []model.Organization
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInputFile, err)
		}

		org := model.Organization{
			Name:          field(row, "Name"),
			Phones:        splitList(field(row, "Phone/Mobile")),
			Emails:        splitList(field(row, "Email")),
			WebsiteStatus: model.WebsiteStatus(field(row, "Website Status")),
			WebsiteURL:    field(row, "Website URL"),
			Address:       field(row, "Address/Location"),
			Notes:         field(row, "Notes"),
		}
		if org.Name == "" {
			continue
		}
		org.RecalculateTier()
		orgs = append(orgs, org)
	}

	return orgs, nil
}

// LoadCSV reads a dataset file
func LoadCSV(path string) ([]model.Organization, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputFile, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// Envelope is the JSON export document
type Envelope struct {
	Metadata      Metadata             `json:"metadata"`
	Organizations []model.Organization `json:"organizations"`
}

// Metadata describes one JSON export
type Metadata struct {
	Generated string      `json:"generated"`
	Total     int         `json:"total"`
	Stats     model.Stats `json:"stats"`
}

// WriteJSON writes the metadata envelope and organizations array
func WriteJSON(w io.Writer, orgs []model.Organization, stats model.Stats) error {
	doc := Envelope{
		Metadata: Metadata{
			Generated: time.Now().UTC().Format(time.RFC3339),
			Total:     len(orgs),
			Stats:     stats,
		},
		Organizations: orgs,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// SaveJSON writes the JSON document to a file
func SaveJSON(path string, orgs []model.Organization, stats model.Stats) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer f.Close()

	if err := WriteJSON(f, orgs, stats); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

// WriteReport writes the textual research report: summary counts by tier and
// type plus the organizations still without any phone contact.
func WriteReport(w io.Writer, orgs []model.Organization, stats model.Stats) error {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString(rule + "\n")
	b.WriteString("CONTACT RESEARCH REPORT\n")
	b.WriteString("Generated: " + time.Now().Format("2006-01-02 15:04:05") + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "  Total organizations: %d\n", stats.Total)
	fmt.Fprintf(&b, "  Tier A (Complete):   %d\n", stats.TierA)
	fmt.Fprintf(&b, "  Tier B (Partial):    %d\n", stats.TierB)
	fmt.Fprintf(&b, "  Tier C (No Contact): %d\n", stats.TierC)

	if len(stats.ByType) > 0 {
		b.WriteString("\nBY TYPE\n")
		for _, orgType := range sortedTypeKeys(stats.ByType) {
			fmt.Fprintf(&b, "  %-12s %d\n", orgType, stats.ByType[orgType])
		}
	}

	tierC := Apply(orgs, ByTier(model.TierC))
	if len(tierC) > 0 {
		b.WriteString("\nSTILL IN TIER C (no phone contact)\n")
		for _, org := range tierC {
			line := "  - " + org.Name
			if org.Address != "" {
				line += " (" + org.Address + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveReport writes the textual report to a file
func SaveReport(path string, orgs []model.Organization, stats model.Stats) error {
	f, err := os.Create(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer f.Close()

	if err := WriteReport(f, orgs, stats); err != nil {
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ";") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func sortedTypeKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
