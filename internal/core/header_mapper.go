package core

import (
	"strings"
	"unicode"
)

// HeaderMapping resolves canonical field keys to the raw header that supplies
// them. At most one raw header per key and one key per raw header.
type HeaderMapping map[string]string

// Match tiers, strongest first. Matching is tier-major: every key gets its
// exact matches before any key is allowed a weaker one, so a fuzzy hit for an
// earlier field can never steal a header that is a later field's literal
// synonym.
const (
	matchExact = iota
	matchNormalized
	matchFuzzy
)

// AutoMapHeaders maps the raw header row onto the canonical schema.
//
// The tiers, applied tier-major across all keys (declaration order breaks
// ties within a tier):
//
//  1. exact match: case-insensitive equality with a synonym
//  2. normalized match: lower-cased, stripped to letters/digits, equal
//  3. fuzzy match: normalized forms contain one another
//
// A claimed header is never reassigned, so a header like "Amount" cannot end
// up feeding two fields. Raw headers that match nothing are ignored; required
// canonical keys that stay unmatched come back as one critical finding each,
// surfaced once per import.
func AutoMapHeaders(rawHeaders []string, syn SynonymTable) (HeaderMapping, []ImportError) {
	mapping := make(HeaderMapping, len(OrderFields))
	claimed := make(map[int]bool, len(rawHeaders))

	normalized := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		normalized[i] = normalizeHeader(h)
	}

	for tier := matchExact; tier <= matchFuzzy; tier++ {
		for _, def := range OrderFields {
			if mapping[def.Key] != "" {
				continue
			}
			idx := matchHeaderTier(rawHeaders, normalized, claimed, syn[def.Key], tier)
			if idx < 0 {
				continue
			}
			mapping[def.Key] = rawHeaders[idx]
			claimed[idx] = true
		}
	}

	var errs []ImportError
	for _, def := range OrderFields {
		if def.Required && mapping[def.Key] == "" {
			errs = append(errs, NewImportError(ErrRequiredMissing, def.Key, 0,
				"no column maps to required field "+def.Key))
		}
	}
	return mapping, errs
}

// matchHeaderTier runs one match tier over the unclaimed headers and returns
// the index of the first hit, or -1.
func matchHeaderTier(raw, normalized []string, claimed map[int]bool, synonyms []string, tier int) int {
	for i := range raw {
		if claimed[i] || normalized[i] == "" {
			continue
		}
		for _, s := range synonyms {
			switch tier {
			case matchExact:
				if strings.EqualFold(strings.TrimSpace(raw[i]), s) {
					return i
				}
			case matchNormalized:
				if normalized[i] == normalizeHeader(s) {
					return i
				}
			case matchFuzzy:
				ns := normalizeHeader(s)
				if ns == "" {
					continue
				}
				if strings.Contains(normalized[i], ns) || strings.Contains(ns, normalized[i]) {
					return i
				}
			}
		}
	}
	return -1
}

// MapHeaderToCanonical resolves a single raw header to its canonical key,
// using the same tier-major matching as AutoMapHeaders: an exact synonym hit
// for any key beats a weaker hit for an earlier one. Used by the
// schema-preview endpoint and anywhere one header is inspected in isolation.
func MapHeaderToCanonical(header string, syn SynonymTable) (string, bool) {
	raw := []string{header}
	normalized := []string{normalizeHeader(header)}
	for tier := matchExact; tier <= matchFuzzy; tier++ {
		for _, def := range OrderFields {
			if matchHeaderTier(raw, normalized, map[int]bool{}, syn[def.Key], tier) == 0 {
				return def.Key, true
			}
		}
	}
	return "", false
}

// normalizeHeader lower-cases and strips everything that is not a Unicode
// letter or digit. Keeping all scripts (not just ASCII) means localized
// headers still compare equal to their synonym entries.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ProjectRow extracts the canonical view of one raw row: every mapped field
// keyed by its canonical name. Unmapped raw columns are dropped here.
func ProjectRow(row RawRow, mapping HeaderMapping) map[string]Cell {
	out := make(map[string]Cell, len(mapping))
	for key, rawHeader := range mapping {
		if v, ok := row[rawHeader]; ok {
			out[key] = v
		}
	}
	return out
}
