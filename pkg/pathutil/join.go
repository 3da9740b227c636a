// Package pathutil implements the path joiner (component B): it composes a
// base document path with a relative $ref file path into the referenced
// file's canonical path, honoring ".." components textually. Symbolic
// links and platform case-insensitivity are never resolved (spec §9) —
// callers are expected to feed already-canonical repository-root-relative
// paths.
package pathutil

import (
	"path"
	"strings"
)

// Join composes base (the path of the document a $ref was found in) with
// ref (the file portion of that $ref) into a canonical path.
//
// If base looks like a file (has an extension), its parent directory is
// used as the starting point before appending ref segment-wise; ".."
// components in ref ascend out of that directory. The result never
// contains an embedded ".." that could have been resolved.
func Join(base, ref string) string {
	if ref == "" {
		return Clean(base)
	}
	if isAbs(ref) {
		return Clean(ref)
	}

	dir := base
	if path.Ext(base) != "" {
		dir = path.Dir(base)
	}

	joined := path.Join(dir, ref)
	return Clean(joined)
}

// Clean canonicalizes a path: it resolves "." and ".." components and
// normalizes separators, without touching the filesystem.
func Clean(p string) string {
	return path.Clean(filepathToSlash(p))
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || hasWindowsDrive(p) || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func hasWindowsDrive(p string) bool {
	return len(p) >= 2 && p[1] == ':' && ((p[0] >= 'a' && p[0] <= 'z') || (p[0] >= 'A' && p[0] <= 'Z'))
}
