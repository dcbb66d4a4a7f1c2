package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z_$0-9]*$`)

// IsIdentifier reports whether s can be used unquoted as a TypeScript
// identifier or property name. Only ASCII names qualify.
func IsIdentifier(s string) bool {
	return identifier.MatchString(s)
}

// UpperFirst upper-cases the first letter of s and leaves the rest alone
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// TypeName turns a component name or pointer token into a PascalCase
// declaration name: "pet_status" and "petStatus" both give "PetStatus",
// "HTTPMethod" gives "HttpMethod".
func TypeName(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// Words splits s into ASCII words. Accents are folded first, any other
// character separates words and a capital letter starts a new word after a
// lower-case letter or digit. A run of capitals stays one acronym word.
func Words(s string) []string {
	rs := []rune(foldAccents(s))
	var words []string
	start := -1
	for i, r := range rs {
		if !isWordRune(r) {
			if start >= 0 {
				words = append(words, string(rs[start:i]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if startsWord(rs, i) {
			words = append(words, string(rs[start:i]))
			start = i
		}
	}
	if start >= 0 {
		words = append(words, string(rs[start:]))
	}
	return words
}

// startsWord is called for a rune inside a word, so rs[i-1] is a word rune.
// "XMLHttp" splits before the H that is followed by lower case.
func startsWord(rs []rune, i int) bool {
	if !isUpper(rs[i]) {
		return false
	}
	if !isUpper(rs[i-1]) {
		return true
	}
	return i+1 < len(rs) && rs[i+1] >= 'a' && rs[i+1] <= 'z'
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

func isWordRune(r rune) bool {
	return isUpper(r) || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
