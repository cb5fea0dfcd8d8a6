package finn

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tomtejakt"
)

// Truncation limits for extracted detail text.
const (
	regulationsMaxLen = 500
	costsMaxLen       = 500
	utilitiesMaxLen   = 300
)

// Heading keywords per field, tried in priority order; the first section
// whose heading contains a keyword wins.
var (
	regulationsKeywords = []string{"regulering"}
	costsKeywords       = []string{"andre faste", "løpende kostnader", "kommunale avgifter"}
	utilitiesKeywords   = []string{"vei / vann", "vann og avløp", "infrastruktur"}
)

// Detail holds the extended fields extracted from a plot detail page.
type Detail struct {
	PlotOwned       tomtejakt.Ownership
	TotalPrice      *int
	TaxValue        *int
	Cadastre        string
	Facilities      string
	Regulations     string
	Utilities       string
	YearlyCostsText string

	// SectionText is all extracted free text joined, for classification.
	SectionText string
}

// section is one text block from a detail page, regardless of which of the
// two source shapes it came from.
type section struct {
	heading string
	body    string
}

// ExtractDetail pulls extended text and fields out of a decoded ad-detail
// object. Every field degrades to its zero value when absent or malformed;
// missing detail data is never an error.
func ExtractDetail(ad map[string]any) Detail {
	var d Detail

	if plot := child(ad, "plot"); plot != nil {
		if owned, ok := plot["owned"].(bool); ok {
			if owned {
				d.PlotOwned = tomtejakt.OwnershipFreehold
			} else {
				d.PlotOwned = tomtejakt.OwnershipLeasehold
			}
		}
	}

	if price := child(ad, "price"); price != nil {
		if total, ok := num(price, "total"); ok {
			t := int(total)
			d.TotalPrice = &t
		} else if amount, ok := num(child(price, "total"), "amount"); ok {
			t := int(amount)
			d.TotalPrice = &t
		}
		if tax, ok := num(price, "tax_value", "taxValue"); ok {
			t := int(tax)
			d.TaxValue = &t
		}
	}

	d.Cadastre = cadastre(ad)
	d.Facilities = facilities(ad)

	sections := collectSections(ad)
	d.Regulations = sectionText(sections, regulationsKeywords, regulationsMaxLen)
	d.YearlyCostsText = sectionText(sections, costsKeywords, costsMaxLen)
	d.Utilities = sectionText(sections, utilitiesKeywords, utilitiesMaxLen)

	var sb strings.Builder
	for _, s := range sections {
		sb.WriteString(s.heading)
		sb.WriteString(" ")
		sb.WriteString(stripHTML(s.body))
		sb.WriteString(" ")
	}
	d.SectionText = strings.TrimSpace(sb.String())

	return d
}

// cadastre formats the first cadastre entry's land and title numbers.
func cadastre(ad map[string]any) string {
	entries, ok := ad["cadastres"].([]any)
	if !ok || len(entries) == 0 {
		return ""
	}
	first, ok := entries[0].(map[string]any)
	if !ok {
		return ""
	}
	gnr, gok := num(first, "land_number", "landNumber")
	bnr, bok := num(first, "title_number", "titleNumber")
	if !gok || !bok {
		return ""
	}
	return fmt.Sprintf("gnr. %d bnr. %d", int(gnr), int(bnr))
}

// facilities joins the ad's facility tags. Tags arrive either as plain
// strings or as {value: ...} objects.
func facilities(ad map[string]any) string {
	entries, ok := ad["facilities"].([]any)
	if !ok {
		return ""
	}
	var tags []string
	for _, e := range entries {
		switch t := e.(type) {
		case string:
			tags = append(tags, t)
		case map[string]any:
			if v := str(t, "value", "name"); v != "" {
				tags = append(tags, v)
			}
		}
	}
	return strings.Join(tags, ", ")
}

// collectSections gathers text sections from both known source shapes: the
// agent shape (heading + raw text body) and the for-sale-by-owner shape
// (title + content).
func collectSections(ad map[string]any) []section {
	var out []section
	if entries, ok := ad["general_text"].([]any); ok {
		for _, e := range entries {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, section{heading: str(m, "heading"), body: str(m, "text_unsafe", "textUnsafe", "text")})
		}
	}
	if entries, ok := ad["property_info"].([]any); ok {
		for _, e := range entries {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, section{heading: str(m, "title"), body: str(m, "content")})
		}
	}
	return out
}

// sectionText returns the first section whose heading matches a keyword,
// stripped of markup and truncated. Keywords are tried in priority order
// across all sections before falling through to the next keyword.
func sectionText(sections []section, keywords []string, maxLen int) string {
	for _, kw := range keywords {
		for _, s := range sections {
			if strings.Contains(strings.ToLower(s.heading), kw) {
				return truncate(stripHTML(s.body), maxLen)
			}
		}
	}
	return ""
}

// stripHTML removes tags and entities from a text body, collapsing
// whitespace.
func stripHTML(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return strings.TrimSpace(body)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncate limits text to maxLen runes, appending an ellipsis when cut.
func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "…"
}
