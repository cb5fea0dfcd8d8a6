// Package finn decodes finn.no pages into canonical listings. It extracts
// the embedded page-state payload (two generations of encoding), resolves
// the flattened reference graph the newer encoding uses, locates listing,
// pagination and ad-detail data by structural search rather than a fixed
// schema, and normalizes raw provider listings into tomtejakt.Listing
// records.
package finn

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/fwojciec/tomtejakt"
)

const (
	baseURL     = "https://www.finn.no"
	cdnTemplate = "https://images.finncdn.no/dynamic/480x360c/%s"
)

// CategorySegment returns the finn URL path segment for a listing category.
func CategorySegment(category tomtejakt.Category) string {
	if category == tomtejakt.CategoryPlot {
		return "plots"
	}
	return "homes"
}

// SearchURL builds a category search URL. A non-empty locationCode takes
// precedence over the keyword; page 1 omits the page parameter the way the
// site itself does.
func SearchURL(category tomtejakt.Category, locationCode, keyword string, page int) string {
	v := url.Values{}
	if locationCode != "" {
		v.Set("location", locationCode)
	} else if keyword != "" {
		v.Set("q", keyword)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	u := fmt.Sprintf("%s/realestate/%s/search.html", baseURL, CategorySegment(category))
	if enc := v.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// AdURL synthesizes the canonical detail-page URL for an ad identifier.
func AdURL(category tomtejakt.Category, id string) string {
	return fmt.Sprintf("%s/realestate/%s/ad.html?finnkode=%s", baseURL, CategorySegment(category), id)
}
