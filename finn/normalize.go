package finn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/tomtejakt"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// norPrinter renders Norwegian-grouped numbers for price display strings.
var norPrinter = message.NewPrinter(language.Norwegian)

// Normalize maps one raw provider listing into a canonical record. Raw
// fields are accessed defensively; any may be absent. Plot enrichment
// fields stay at their defaults until the detail pass fills them in.
func Normalize(raw map[string]any, category tomtejakt.Category) *tomtejakt.Listing {
	id := adID(raw)

	l := &tomtejakt.Listing{
		ID:                 id,
		Title:              str(raw, "heading", "title"),
		Address:            str(raw, "location"),
		PropertyType:       str(raw, "property_type_description"),
		Category:           category,
		BuildingObligation: tomtejakt.ObligationUnknown,
	}

	if amount, ok := num(child(raw, "price_suggestion"), "amount"); ok && amount > 0 {
		p := int(amount)
		l.Price = &p
		l.PriceText = FormatPrice(p)
	}

	// Homes report a size range, plots a single plot size.
	if from, ok := num(child(raw, "area_range"), "size_from"); ok && from > 0 {
		a := int(from)
		l.Area = &a
	} else if size, ok := num(child(raw, "area_plot"), "size"); ok && size > 0 {
		a := int(size)
		l.Area = &a
	}

	if beds, ok := num(raw, "number_of_bedrooms"); ok {
		b := int(beds)
		l.Bedrooms = &b
	}

	if img := child(raw, "image"); img != nil {
		if u := str(img, "url"); u != "" {
			l.ImageURL = u
		} else if path := str(img, "path"); path != "" {
			l.ImageURL = fmt.Sprintf(cdnTemplate, path)
		}
	}

	if u := str(raw, "canonical_url", "ad_link"); u != "" {
		l.FinnURL = u
	} else if id != "" {
		l.FinnURL = AdURL(category, id)
	}

	if coords := child(raw, "coordinates"); coords != nil {
		if lat, ok := num(coords, "lat"); ok {
			l.Latitude = &lat
		}
		if lon, ok := num(coords, "lon"); ok {
			l.Longitude = &lon
		}
	}

	if cost, ok := num(raw, "price_shared_cost"); ok {
		l.SharedCost = int(cost)
	}
	if debt, ok := num(raw, "price_collective_debt"); ok {
		l.SharedDebt = int(debt)
	}

	return l
}

// FormatPrice renders a price as a Norwegian-grouped display string.
func FormatPrice(price int) string {
	return norPrinter.Sprintf("%d kr", price)
}

// MatchesLocality reports whether a raw listing belongs to the named
// municipality. Keyword search without a location filter returns over-broad
// matches; a listing is kept only when its locality field equals the name,
// or its full location string ends with it, or contains it as a
// comma-separated suffix. Matching is case-insensitive.
func MatchesLocality(raw map[string]any, name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return true
	}
	if locality := strings.ToLower(strings.TrimSpace(str(raw, "local_area_name", "locality"))); locality == want {
		return true
	}
	location := strings.ToLower(strings.TrimSpace(str(raw, "location")))
	if strings.HasSuffix(location, want) {
		return true
	}
	for _, part := range strings.Split(location, ",") {
		if strings.TrimSpace(part) == want {
			return true
		}
	}
	return false
}

// adID extracts the provider ad identifier, which arrives as a number or a
// string depending on the encoding generation.
func adID(raw map[string]any) string {
	for _, key := range adIdentifierKeys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatInt(int64(v), 10)
		}
	}
	return ""
}

// str returns the first non-empty string value among keys.
func str(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// num returns the first numeric value among keys.
func num(m map[string]any, keys ...string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	for _, key := range keys {
		if n, ok := m[key].(float64); ok {
			return n, true
		}
	}
	return 0, false
}

// child returns a nested object among keys, or nil.
func child(m map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if c, ok := m[key].(map[string]any); ok {
			return c
		}
	}
	return nil
}
