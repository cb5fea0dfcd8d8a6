package finn

// Structural search over decoded page state. The site's response shape is
// not contractually stable, so data is located by shape and well-known key
// names with a bounded-depth walk. Absence is a normal outcome (empty
// result sets are common) and returns a zero value, never an error.

// maxSearchDepth bounds the recursive structural search.
const maxSearchDepth = 10

// adIdentifierKeys are field names that mark a map as listing-shaped.
var adIdentifierKeys = []string{"ad_id", "adId", "finnkode", "id"}

// FindListings locates the listing batch: either a named "docs" key holding
// a non-empty array, or the first array whose first element structurally
// resembles a listing. Returns nil when no batch exists.
func FindListings(tree any) []map[string]any {
	return findListings(tree, 0)
}

func findListings(node any, depth int) []map[string]any {
	if depth > maxSearchDepth {
		return nil
	}
	switch t := node.(type) {
	case map[string]any:
		if docs, ok := t["docs"].([]any); ok && len(docs) > 0 {
			if batch := listingMaps(docs); batch != nil {
				return batch
			}
		}
		for _, v := range t {
			if batch := findListings(v, depth+1); batch != nil {
				return batch
			}
		}
	case []any:
		if looksLikeListingBatch(t) {
			return listingMaps(t)
		}
		for _, v := range t {
			if batch := findListings(v, depth+1); batch != nil {
				return batch
			}
		}
	}
	return nil
}

func looksLikeListingBatch(arr []any) bool {
	if len(arr) == 0 {
		return false
	}
	first, ok := arr[0].(map[string]any)
	if !ok {
		return false
	}
	for _, key := range adIdentifierKeys {
		if _, ok := first[key]; ok {
			return true
		}
	}
	return false
}

func listingMaps(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// FindLastPage locates pagination metadata — an object exposing a numeric
// last-page field — and returns its value, or 0 when no pagination exists.
func FindLastPage(tree any) int {
	return findLastPage(tree, 0)
}

func findLastPage(node any, depth int) int {
	if depth > maxSearchDepth {
		return 0
	}
	switch t := node.(type) {
	case map[string]any:
		if last, ok := t["last"].(float64); ok && last > 0 {
			return int(last)
		}
		for _, v := range t {
			if last := findLastPage(v, depth+1); last > 0 {
				return last
			}
		}
	case []any:
		for _, v := range t {
			if last := findLastPage(v, depth+1); last > 0 {
				return last
			}
		}
	}
	return 0
}

// FindAdDetail locates the single ad-detail object on a detail page via its
// named key. Returns nil when the page holds no ad object.
func FindAdDetail(tree any) map[string]any {
	return findAdDetail(tree, 0)
}

func findAdDetail(node any, depth int) map[string]any {
	if depth > maxSearchDepth {
		return nil
	}
	switch t := node.(type) {
	case map[string]any:
		if ad, ok := t["ad"].(map[string]any); ok {
			return ad
		}
		for _, v := range t {
			if ad := findAdDetail(v, depth+1); ad != nil {
				return ad
			}
		}
	case []any:
		for _, v := range t {
			if ad := findAdDetail(v, depth+1); ad != nil {
				return ad
			}
		}
	}
	return nil
}
