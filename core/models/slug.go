package models

import (
	"strings"
	"unicode"
)

// Slugify derives a URL slug from a job title: ASCII-folded, lowercased,
// non-alphanumeric runs collapsed to single hyphens. Applied once at
// creation; later title edits do not re-derive the slug.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		r = foldASCII(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// foldASCII maps common accented latin letters onto their ASCII base.
func foldASCII(r rune) rune {
	if r < 128 {
		return r
	}
	switch {
	case unicode.Is(unicode.Latin, r):
		for base, variants := range asciiFolds {
			if strings.ContainsRune(variants, r) {
				return base
			}
		}
	}
	return r
}

var asciiFolds = map[rune]string{
	'a': "àáâãäå",
	'c': "ç",
	'e': "èéêë",
	'i': "ìíîï",
	'n': "ñ",
	'o': "òóôõö",
	'u': "ùúûü",
	'y': "ýÿ",
}
