package catalog

import "strings"

const fuzzyCutoff = 0.72

// Canonicalize maps arbitrary customer text to a canonical catalog SKU.
// Resolution order, first match wins: synonym table, exact catalog name,
// canonical-name-contained-in-input, fuzzy nearest neighbor. Returns ""
// when the text resolves to nothing; callers must treat "" as
// "unsupported item", never as an error.
func Canonicalize(rawName string) string {
	if rawName == "" {
		return ""
	}
	key := strings.ToLower(strings.TrimSpace(rawName))
	if key == "" {
		return ""
	}

	if sku, ok := synonyms[key]; ok {
		return sku
	}

	for i, lower := range lowerCanonicalNames {
		if lower == key {
			return canonicalNames[i]
		}
	}

	for i, lower := range lowerCanonicalNames {
		if strings.Contains(key, lower) {
			return canonicalNames[i]
		}
	}

	if matched := closestName(key, lowerCanonicalNames, fuzzyCutoff); matched != "" {
		for i, lower := range lowerCanonicalNames {
			if lower == matched {
				return canonicalNames[i]
			}
		}
	}

	return ""
}
