package tomtejakt

import (
	"regexp"
	"strings"
)

// Norwegian phrasing fragments for water connection status. The patterns
// run over lower-cased text only.
var (
	waterConnectedRe = regexp.MustCompile(
		`(?:tilkoblet|tilknyttet|innlagt|lagt inn)\s+(?:offentlig\s+)?vann` +
			`|vann\s+(?:er\s+)?(?:tilkoblet|tilknyttet|innlagt)` +
			`|offentlig\s+vann`)
	waterNotConnectedRe = regexp.MustCompile(
		`ikke\s+(?:tilkoblet|tilknyttet|innlagt)` +
			`|må\s+(?:tilkobles|tilknyttes|etableres|opparbeides)` +
			`|uten\s+(?:vann|vei|strøm)` +
			`|ikke\s+(?:opparbeidet|utbygd|ført\s+frem)`)
	roadAccessRe = regexp.MustCompile(`\bvei\b|\bveg\b|adkomst|atkomst`)
)

// ClassifyDevelopment decides whether a plot is developed (1), undeveloped
// (0) or unknown (nil) from the facilities text, the utilities text and the
// full combined listing text. The first applicable rule wins:
//
//  1. facilities has public water and road access → developed
//  2. facilities has public water and no "not connected" signal → developed
//  3. combined text has a "water connected" match and no "not connected"
//     signal → developed
//  4. any "not connected" match → undeveloped
//  5. facilities text present but without positive water evidence →
//     undeveloped
//  6. otherwise unknown
//
// Rule 5 deliberately treats absence of water evidence in a non-empty
// facilities list as undeveloped, mirroring the established heuristic.
func ClassifyDevelopment(facilities, utilities, fullText string) *int {
	fac := strings.ToLower(facilities)
	combined := strings.ToLower(strings.Join([]string{facilities, utilities, fullText}, " "))

	hasPublicWater := strings.Contains(fac, "offentlig vann")
	notConnected := waterNotConnectedRe.MatchString(combined)

	switch {
	case hasPublicWater && roadAccessRe.MatchString(fac):
		return IntPtr(1)
	case hasPublicWater && !notConnected:
		return IntPtr(1)
	case waterConnectedRe.MatchString(combined) && !notConnected:
		return IntPtr(1)
	case notConnected:
		return IntPtr(0)
	case strings.TrimSpace(fac) != "":
		return IntPtr(0)
	}
	return nil
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
