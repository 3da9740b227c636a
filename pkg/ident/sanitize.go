// Package ident implements the identifier sanitizer (component C): it
// turns arbitrary OpenAPI names (property names, enum literals, operation
// ids, tag strings) into valid Go identifiers, tracking whether the
// sanitized form differs from the original so callers can emit a
// struct-tag rename directive (SPEC_FULL.md §0).
package ident

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gobuffalo/flect"

	"github.com/oasgen/oasgen/pkg/diag"
)

// goKeywords are Go's reserved words; sanitize appends an underscore to any
// identifier that collides with one (§4.C rule 3).
var goKeywords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

var nonIdentChar = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Result carries a sanitized identifier alongside whether it differs from
// the raw input that produced it — the signal for emitting a rename
// directive (a `json:"original"` struct tag) per §4.C rule 4.
type Result struct {
	Name     string
	Original string
}

// Renamed reports whether Name differs from Original and therefore needs an
// explicit serialization tag to preserve the wire name.
func (r Result) Renamed() bool { return r.Name != r.Original }

// substitute applies §4.C rule 1: replace every non-identifier character
// (notably '.') with '_'.
func substitute(raw string) string {
	return nonIdentChar.ReplaceAllString(raw, "_")
}

// prefixDigit applies §4.C rule 2: if the first rune is a digit, prepend
// an underscore so the result is a legal Go identifier start.
func prefixDigit(s string) string {
	if s == "" {
		return s
	}
	if unicode.IsDigit(rune(s[0])) {
		return "_" + s
	}
	return s
}

// dedupeKeyword applies §4.C rule 3: append an underscore on a reserved
// word collision.
func dedupeKeyword(s string) string {
	if goKeywords[s] {
		return s + "_"
	}
	return s
}

// normalize runs the sanitizer's ordered rule pipeline (rules 1-3) without
// case conversion, used as a base for both Snake and CamelUpper.
func normalize(raw string) (string, error) {
	s := substitute(raw)
	s = prefixDigit(s)
	s = dedupeKeyword(s)
	if s == "" {
		return "", &diag.InvalidIdentifierError{Raw: raw}
	}
	return s, nil
}

// Snake sanitizes raw into a snake_case identifier. It is the "snake"
// normalizer of §4.C; here it derives a package's mod name
// (config.PackageConfig.ModName). Generated Go function, parameter, and
// field names are built with CamelUpper instead, and struct-tag wire names
// keep the original property name verbatim.
func Snake(raw string) (Result, error) {
	base, err := normalize(raw)
	if err != nil {
		return Result{}, err
	}
	snaked := flect.Underscore(base)
	snaked, err = normalize(snaked)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: snaked, Original: raw}, nil
}

// MustSnake is Snake without an error return, for call sites that already
// know raw is non-empty (e.g. iterating over existing map keys).
func MustSnake(raw string) string {
	r, err := Snake(raw)
	if err != nil {
		return "_"
	}
	return r.Name
}

// CamelUpper sanitizes raw into an exported PascalCase identifier, used for
// generated Go type names and enum case constant names. It is the
// "camel-upper" normalizer of §4.C.
//
// A raw value that starts with a digit (e.g. an inline enum literal like
// "10minutely") is left otherwise untouched after the digit-prefix rule:
// there is no letter-cased word boundary to Pascalize, so the emitted case
// is "_10minutely", not "_10Minutely" — Pascalizing a token flect can't
// split only relabels it inconsistently between runs. The same holds for
// an already-prefixed value ("_10minutely", "_3_2"), so CamelUpper of its
// own output returns that output unchanged.
func CamelUpper(raw string) (Result, error) {
	substituted := strings.TrimLeft(substitute(raw), "_")
	if substituted != "" && unicode.IsDigit(rune(substituted[0])) {
		base, err := normalize(raw)
		if err != nil {
			return Result{}, err
		}
		return Result{Name: base, Original: raw}, nil
	}

	base, err := normalize(raw)
	if err != nil {
		return Result{}, err
	}
	pascal := flect.Pascalize(flect.Underscore(base))
	pascal, err = normalize(pascal)
	if err != nil {
		return Result{}, err
	}
	return Result{Name: pascal, Original: raw}, nil
}

// MustCamelUpper is CamelUpper without an error return.
func MustCamelUpper(raw string) string {
	r, err := CamelUpper(raw)
	if err != nil {
		return "_"
	}
	return r.Name
}

// Idempotent reports whether f is idempotent at raw: f(f(raw)) == f(raw).
// Exercised directly by the sanitizer's test suite against §8's
// "Identifier idempotence" invariant.
func Idempotent(f func(string) (Result, error), raw string) bool {
	first, err := f(raw)
	if err != nil {
		return true // no identifier to be idempotent about
	}
	second, err := f(first.Name)
	if err != nil {
		return false
	}
	return second.Name == first.Name
}

// TrimPackagePrefix strips a dotted package-like prefix ("io.k8s.api.")
// down to its last segment, used when deriving a type name from a
// cross-file definition key that embeds its originating file path.
func TrimPackagePrefix(s string) string {
	if idx := strings.LastIndexByte(s, '.'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}
