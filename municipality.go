package tomtejakt

import (
	"encoding/json"
	"io"
	"strings"
)

// Municipality is immutable reference data describing one kommune.
type Municipality struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	HasPropertyTax bool    `json:"hasPropertyTax"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
}

// LoadMunicipalities reads the municipality reference list from JSON.
func LoadMunicipalities(r io.Reader) ([]*Municipality, error) {
	var out []*Municipality
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, Errorf(EINVALID, "invalid municipality data: %v", err)
	}
	return out, nil
}

// LocationTable maps municipality names to finn location codes.
type LocationTable map[string]string

// LoadLocationTable reads a name→location-code lookup table from JSON.
func LoadLocationTable(r io.Reader) (LocationTable, error) {
	var out LocationTable
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, Errorf(EINVALID, "invalid location table: %v", err)
	}
	return out, nil
}

// Resolve maps a municipality display name to a finn location code.
// Bilingual names carry an alternate segment separated by " - "
// (e.g. "Porsanger - Porsáŋgu"); the exact name is tried first, then the
// primary segment, then the alternate. A miss is a valid outcome: callers
// fall back to an unfiltered keyword search on the primary segment.
func (t LocationTable) Resolve(name string) (string, bool) {
	if code, ok := t[name]; ok {
		return code, true
	}
	parts := strings.Split(name, " - ")
	if len(parts) < 2 {
		return "", false
	}
	if code, ok := t[strings.TrimSpace(parts[0])]; ok {
		return code, true
	}
	if code, ok := t[strings.TrimSpace(parts[1])]; ok {
		return code, true
	}
	return "", false
}

// PrimaryName returns the primary segment of a possibly bilingual
// municipality name.
func PrimaryName(name string) string {
	if i := strings.Index(name, " - "); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}
