package sources

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/tzleads/contact-backend/util"
)

// ContactInfo holds everything contact-shaped found on one page
type ContactInfo struct {
	Emails      []string
	Phones      []string
	Websites    []string
	SocialMedia map[string]string
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+255|0)[\s-]?\d{2,3}[\s-]?\d{3}[\s-]?\d{3,4}`)
)

var socialHosts = map[string]string{
	"facebook.com":  "facebook",
	"instagram.com": "instagram",
	"linkedin.com":  "linkedin",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
}

// ExtractContacts walks an HTML document collecting email addresses, phone
// numbers in Tanzanian shapes, outbound links and social media profiles.
// It never fails; unparseable markup simply yields fewer results.
func ExtractContacts(content string) ContactInfo {
	info := ContactInfo{SocialMedia: make(map[string]string)}

	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return info
		case html.TextToken:
			text := string(tokenizer.Text())
			for _, email := range emailPattern.FindAllString(text, -1) {
				info.Emails = util.AppendUnique(info.Emails, email)
			}
			for _, phone := range phonePattern.FindAllString(text, -1) {
				info.Phones = util.AppendUnique(info.Phones, strings.TrimSpace(phone))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := tokenizer.TagAttr()
				if string(key) == "href" {
					classifyLink(string(val), &info)
				}
				if !more {
					break
				}
			}
		}
	}
}

func classifyLink(href string, info *ContactInfo) {
	if !strings.HasPrefix(href, "http") {
		return
	}
	for host, network := range socialHosts {
		if strings.Contains(href, host) {
			if _, seen := info.SocialMedia[network]; !seen {
				info.SocialMedia[network] = href
			}
			return
		}
	}
	info.Websites = util.AppendUnique(info.Websites, href)
}

// stripTags flattens an HTML fragment to its visible text
func stripTags(fragment string) string {
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return util.CollapseWhitespace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
			b.WriteByte(' ')
		}
	}
}
