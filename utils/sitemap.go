package utils

import (
	"encoding/xml"
	"net/url"
	"sort"
	"strings"
	"time"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapPage is one rendered page: its output location relative to the
// site root and the modification time of its source.
type SitemapPage struct {
	Location string
	ModTime  time.Time
}

// GenerateSitemapContent renders the sitemap for pages under origin. The
// output only depends on its inputs, so unchanged sites produce identical
// bytes.
func GenerateSitemapContent(origin string, pages []SitemapPage) ([]byte, error) {
	sorted := append([]SitemapPage(nil), pages...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Location < sorted[j].Location })

	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}
	base := strings.TrimSuffix(origin, "/")
	for _, page := range sorted {
		u := Url{Loc: base + "/" + escapeLocation(page.Location)}
		if !page.ModTime.IsZero() {
			u.LastMod = page.ModTime.UTC().Format("2006-01-02")
		}
		sitemap.Urls = append(sitemap.Urls, u)
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), append(xmlOutput, '\n')...), nil
}

func escapeLocation(loc string) string {
	segments := strings.Split(loc, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
