package tomtejakt

import (
	"strings"
	"unicode/utf8"
)

// snippetContext is the number of characters of surrounding context kept on
// each side of a matched obligation phrase.
const snippetContext = 40

// obligationRules are checked in priority order: an explicit "no obligation"
// claim overrides clause and deadline signals even when those keywords also
// appear. The first matching phrase across the whole sequence wins.
var obligationRules = []struct {
	verdict Obligation
	phrases []string
}{
	{ObligationNone, []string{
		"ingen byggeplikt",
		"ikke byggeplikt",
		"uten byggeplikt",
		"byggeplikten er bortfalt",
		"byggeplikt bortfalt",
		"fri for byggeplikt",
	}},
	{ObligationClause, []string{
		"byggeklausul",
		"bygge klausul",
		"plikt til å bygge",
		"byggeplikt",
	}},
	{ObligationDeadline, []string{
		"byggefrist",
		"bebygges innen",
		"byggestart innen",
		"oppføres innen",
		"frist for bebyggelse",
		"frist for byggestart",
	}},
}

// ClassifyObligation scans listing free text for Norwegian building
// obligation phrases and returns the verdict together with an evidentiary
// snippet: the matched phrase plus up to 40 characters of context on each
// side, trimmed. No match yields ObligationUnknown and an empty snippet.
func ClassifyObligation(text string) (Obligation, string) {
	lower := strings.ToLower(text)
	for _, rule := range obligationRules {
		for _, phrase := range rule.phrases {
			idx := strings.Index(lower, phrase)
			if idx < 0 {
				continue
			}
			return rule.verdict, snippetAround(lower, idx, phrase)
		}
	}
	return ObligationUnknown, ""
}

// snippetAround extracts the context window around a byte-offset match.
// Offsets are converted to rune positions so that multi-byte Norwegian
// characters near the window edges are never split.
func snippetAround(text string, byteIdx int, phrase string) string {
	runes := []rune(text)
	p := utf8.RuneCountInString(text[:byteIdx])
	l := utf8.RuneCountInString(phrase)

	start := p - snippetContext
	if start < 0 {
		start = 0
	}
	end := p + l + snippetContext
	if end > len(runes) {
		end = len(runes)
	}
	return strings.TrimSpace(string(runes[start:end]))
}
