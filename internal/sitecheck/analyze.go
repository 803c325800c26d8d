// Package sitecheck extracts heuristic SEO and design signals from a homepage.
package sitecheck

import (
	"bytes"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"github.com/xavierca1/leadpilot/internal/entity"
)

// MaxTextLength bounds SiteChecks.Text
const MaxTextLength = 6000

var (
	phonePattern     = regexp.MustCompile(`\(?\b\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	emailPattern     = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@([a-z0-9.-]+\.[a-z]{2,})\b`)
	copyrightPattern = regexp.MustCompile(`(?i)(?:©|\(c\)|copyright)\s*(?:\d{4}\s*[-–]\s*)?(\d{4})`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// Page is a fetched homepage
type Page struct {
	URL        string
	StatusCode int
	HTML       []byte
	FetchedAt  time.Time
}

// Analyze inspects html served from pageURL. Unparseable markup yields a
// zero-valued result with only the URL facts filled in.
func Analyze(pageURL string, html []byte) entity.SiteChecks {
	checks := entity.SiteChecks{URL: pageURL}

	u, err := url.Parse(pageURL)
	if err == nil {
		checks.HTTPS = strings.EqualFold(u.Scheme, "https")
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return checks
	}

	checks.Title = strings.TrimSpace(doc.Find("head title").First().Text())
	if checks.Title == "" {
		checks.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	doc.Find("meta").Each(func(_ int, m *goquery.Selection) {
		name := strings.ToLower(strings.TrimSpace(m.AttrOr("name", "")))
		content := strings.TrimSpace(m.AttrOr("content", ""))

		switch name {
		case "description":
			if checks.MetaDescription == "" {
				checks.MetaDescription = content
			}
		case "viewport":
			checks.HasViewport = content != ""
		}
	})

	checks.H1Count = doc.Find("h1").Length()

	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		checks.ImageCount++
		if alt, ok := img.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			checks.ImagesWithAlt++
		}
	})

	emailDomains := linkedEmailDomains(doc)
	checks.HasPhone = doc.Find(`a[href^="tel:"]`).Length() > 0

	body := doc.Find("body")
	body.Find("script, style, noscript, template").Remove()

	text := strings.TrimSpace(spacePattern.ReplaceAllString(body.Text(), " "))
	checks.WordCount = len(strings.Fields(text))

	if !checks.HasPhone {
		checks.HasPhone = phonePattern.MatchString(text)
	}

	for _, m := range emailPattern.FindAllStringSubmatch(text, -1) {
		emailDomains = append(emailDomains, strings.ToLower(m[1]))
	}

	checks.HasEmail = len(emailDomains) > 0
	if u != nil {
		checks.EmailOnDomain = anyOnDomain(emailDomains, u.Hostname())
	}

	checks.CopyrightYear = latestCopyrightYear(text)
	checks.Text = truncate(text, MaxTextLength)

	return checks
}

func linkedEmailDomains(doc *goquery.Document) []string {
	var domains []string

	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		addr := strings.TrimPrefix(a.AttrOr("href", ""), "mailto:")
		addr, _, _ = strings.Cut(addr, "?")

		if _, domain, ok := strings.Cut(addr, "@"); ok && domain != "" {
			domains = append(domains, strings.ToLower(domain))
		}
	})

	return domains
}

// anyOnDomain reports whether one of the email domains shares the site's
// registrable domain, so info@acme.com counts for www.acme.com.
func anyOnDomain(emailDomains []string, host string) bool {
	site := registrableDomain(host)
	if site == "" {
		return false
	}

	for _, d := range emailDomains {
		if registrableDomain(d) == site {
			return true
		}
	}

	return false
}

func registrableDomain(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}

	return etld1
}

func latestCopyrightYear(text string) int {
	latest := 0

	for _, m := range copyrightPattern.FindAllStringSubmatch(text, -1) {
		year, err := strconv.Atoi(m[1])
		if err != nil || year < 1990 || year > 2100 {
			continue
		}

		if year > latest {
			latest = year
		}
	}

	return latest
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	cut := s[:n]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}

	return cut
}
