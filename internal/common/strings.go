package common

import (
	"path"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the default qualifier of an import path (its last
// element), or "" for an empty path.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// Exported returns name with its first letter upper-cased ("radius" -> "Radius").
func Exported(name string) string {
	if name == "" {
		return name
	}

	r, size := utf8.DecodeRuneInString(name)

	// A Caser keeps state between calls, so each call gets its own.
	return cases.Upper(language.Und).String(string(r)) + name[size:]
}

// Unexported returns name with its leading upper-case run lower-cased, keeping
// the last capital of an acronym that starts the next word
// ("Circle" -> "circle", "HTTPServer" -> "httpServer", "ID" -> "id").
func Unexported(name string) string {
	if name == "" {
		return name
	}

	runes := []rune(name)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return name
	case n > 1 && n < len(runes) && unicode.IsLower(runes[n]):
		n--
	}

	return cases.Lower(language.Und).String(string(runes[:n])) + string(runes[n:])
}

// Snake converts a Go identifier to snake_case for file names
// ("Shape" -> "shape", "HTTPResult" -> "http_result", "ListNode" -> "list_node").
func Snake(name string) string {
	runes := []rune(name)
	out := make([]rune, 0, len(runes)+4)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				out = append(out, '_')
			}
		}

		out = append(out, unicode.ToLower(r))
	}

	return string(out)
}
