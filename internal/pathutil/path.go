// Package pathutil derives slash-separated archive entry names from
// filesystem paths.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize converts a filesystem path to an archive entry name.
//
// It performs the following transformations:
//   - Converts separators to forward slashes: `a\b` → "a/b" (on Windows)
//   - Strips leading and trailing slashes: "/etc/nginx/" → "etc/nginx"
//   - Collapses consecutive slashes: "etc//nginx" → "etc/nginx"
//   - Drops "." elements: "./a/./b" → "a/b"
//
// ".." elements are preserved so that name validation rejects them.
func Normalize(p string) string {
	p = filepath.ToSlash(p)
	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return strings.Join(result, "/")
}

// Folder returns the directory prefix derived from an archive file name:
// its base name up to the first dot, followed by a slash.
// "dist/App.appx.zip" yields "App/".
func Folder(archivePath string) string {
	base := filepath.Base(archivePath)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base + "/"
}
