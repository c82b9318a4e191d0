// Package normalize canonicalizes company names for exact comparison.
// The result is the key used for deterministic name matching and the
// form in which a canonical entity keeps its primary name.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gnames/gnlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// legal-entity suffix anchored to the end, optional trailing period
	suffixRe = regexp.MustCompile(
		`\b(limited|ltd|inc|incorporated|llc|l\.l\.c\.|plc|p\.l\.c\.|corp|` +
			`corporation|co|company|gmbh|ag|sa|sas|sarl|pty|pvt|private)\.?\s*$`,
	)

	nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)

	// letters that do not decompose into ASCII base and combining mark
	translit = strings.NewReplacer(
		"ß", "ss", "ẞ", "SS",
		"æ", "ae", "Æ", "AE",
		"œ", "oe", "Œ", "OE",
		"ø", "o", "Ø", "O",
		"ł", "l", "Ł", "L",
		"đ", "d", "Đ", "D",
		"ð", "d", "Ð", "D",
		"þ", "th", "Þ", "TH",
		"ı", "i", "ħ", "h",
	)
)

// Normalize returns the comparison form of a company name. It
// transliterates to ASCII, lower-cases, strips a trailing legal suffix,
// removes everything except letters, digits and spaces, and collapses
// whitespace. The function is total and idempotent.
//
// A name that consists of a legal suffix only keeps that word, so
// "Company" normalizes to "company" and not to an empty string.
func Normalize(name string) string {
	res := gnlib.FixUtf8(name)
	res = ToASCII(res)
	res = strings.ToLower(res)

	for {
		next := clean(stripSuffix(res))
		if next == res {
			return res
		}
		res = next
	}
}

// ToASCII replaces non-ASCII letters with their closest ASCII form.
// Characters without such a form are left untouched.
func ToASCII(s string) string {
	s = translit.Replace(s)
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	res, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return res
}

func stripSuffix(s string) string {
	loc := suffixRe.FindStringIndex(s)
	if loc == nil {
		return s
	}
	stripped := s[:loc[0]]
	if clean(stripped) == "" {
		return s
	}
	return stripped
}

func clean(s string) string {
	s = nonAlnumRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
