package carscrape

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Field normalizers are pure, stateless, and total over their input domain:
// they never fail, they report unparseable input through the ok result.
// Callers translate a false ok into a NormalizationIssue.

var (
	currencyCodeRe = regexp.MustCompile(`(?i)\b(GBP|USD|EUR|AUD|CAD|JPY|CHF)\b`)
	numberTokenRe  = regexp.MustCompile(`\d[\d,.\s]*`)
	yearTokenRe    = regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`)
	mileageUnitRe  = regexp.MustCompile(`(?i)\b(mi|miles?|km|kilomet(?:er|re)s?)\b`)
	brandKeyRe     = regexp.MustCompile(`[^a-z0-9]`)
)

// currencySymbols maps recognized currency symbols to their tags.
var currencySymbols = map[rune]string{
	'£': "GBP",
	'$': "USD",
	'€': "EUR",
}

// brandSynonyms maps case-folded, punctuation-stripped brand tokens to
// canonical brand names.
var brandSynonyms = map[string]string{
	"vw":           "Volkswagen",
	"volkswagen":   "Volkswagen",
	"mini":         "MINI",
	"bmw":          "BMW",
	"ford":         "Ford",
	"toyota":       "Toyota",
	"audi":         "Audi",
	"mercedes":     "Mercedes-Benz",
	"mercedesbenz": "Mercedes-Benz",
	"chevy":        "Chevrolet",
	"chevrolet":    "Chevrolet",
	"landrover":    "Land Rover",
	"vauxhall":     "Vauxhall",
}

// NormalizePrice strips currency symbols, codes, and locale-specific
// separators from raw price text. The currency tag is derived from a
// recognized symbol or 3-letter code, "" when neither is present. ok is
// false when no numeric token survives.
func NormalizePrice(raw string) (amount float64, currency string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, "", false
	}

	token := numberTokenRe.FindString(s)
	token = strings.Trim(token, ",. \t")
	if token == "" {
		return 0, "", false
	}
	amount, ok = parseLocaleNumber(token)
	if !ok || amount < 0 {
		return 0, "", false
	}

	if code := currencyCodeRe.FindString(s); code != "" {
		currency = strings.ToUpper(code)
	} else {
		for _, r := range s {
			if tag, found := currencySymbols[r]; found {
				currency = tag
				break
			}
		}
	}

	return amount, currency, true
}

// NormalizeMileage extracts the leading numeric token and infers the unit
// from adjacent text. The unit is "" when no unit token is present: a unit
// is never guessed, because silently assuming one would corrupt downstream
// comparisons.
func NormalizeMileage(raw string) (value int, unit string, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, "", false
	}

	token := numberTokenRe.FindString(s)
	token = strings.Trim(token, ",. \t")
	if token == "" {
		return 0, "", false
	}
	n, numOK := parseLocaleNumber(token)
	if !numOK || n < 0 {
		return 0, "", false
	}

	if m := mileageUnitRe.FindString(s); m != "" {
		if strings.HasPrefix(strings.ToLower(m), "k") {
			unit = "km"
		} else {
			unit = "mi"
		}
	}

	return int(n), unit, true
}

// NormalizeYear extracts a word-bounded 4-digit token within
// [1900, current year + 1]. Tokens embedded in longer numerals or outside
// the plausible range are rejected as noise (likely a model number or a
// price fragment), not coerced.
func NormalizeYear(raw string) (int, bool) {
	m := yearTokenRe.FindString(strings.TrimSpace(raw))
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	if year < 1900 || year > time.Now().Year()+1 {
		return 0, false
	}
	return year, true
}

// NormalizeBrand case-folds the input and maps it through the known-synonym
// table. Unknown brands pass through title-cased, never rejected: brand
// normalization is best-effort enrichment, not validation. ok is false only
// for empty input.
func NormalizeBrand(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	key := brandKeyRe.ReplaceAllString(strings.ToLower(s), "")
	if canonical, found := brandSynonyms[key]; found {
		return canonical, true
	}
	return titleCase(s), true
}

// parseLocaleNumber parses a numeric token that may contain thousands and
// decimal separators in either locale convention. When both "," and "."
// appear, the later one is the decimal marker. A lone separator followed by
// exactly three digits reads as a thousands group; one or two trailing
// digits read as decimals.
func parseLocaleNumber(token string) (float64, bool) {
	token = strings.ReplaceAll(token, " ", "")
	if token == "" {
		return 0, false
	}

	lastComma := strings.LastIndexByte(token, ',')
	lastDot := strings.LastIndexByte(token, '.')

	var decimal byte
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastDot > lastComma {
			decimal = '.'
		} else {
			decimal = ','
		}
	case lastDot >= 0:
		if isDecimalTail(token, '.', lastDot) {
			decimal = '.'
		}
	case lastComma >= 0:
		if isDecimalTail(token, ',', lastComma) {
			decimal = ','
		}
	}

	var b strings.Builder
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == decimal && i == lastIndex(token, decimal):
			b.WriteByte('.')
		case c == ',' || c == '.':
			// thousands separator, drop
		default:
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isDecimalTail reports whether the separator at idx reads as a decimal
// marker: it must be the token's only occurrence of sep and be followed by
// one or two digits. An exactly-3-digit tail is a thousands group.
func isDecimalTail(token string, sep byte, idx int) bool {
	if strings.IndexByte(token, sep) != idx {
		return false
	}
	tail := len(token) - idx - 1
	return tail >= 1 && tail <= 2
}

func lastIndex(s string, c byte) int {
	if c == 0 {
		return -1
	}
	return strings.LastIndexByte(s, c)
}

// titleCase upper-cases the first letter of each whitespace-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
