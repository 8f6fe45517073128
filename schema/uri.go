package schema

import (
	"net/url"
	"path"
	"strings"
)

// normalizeURI canonicalizes a document URI: lowercases the scheme,
// collapses "./" and "../" segments, and strips a trailing slash (except
// for the root path). Fragment-free; pointers are tracked separately by
// [Table] so that two references differing only in fragment share a
// document cache entry.
func normalizeURI(raw string) string {
	if raw == "" {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Fragment = ""

	if u.Path != "" {
		cleaned := path.Clean(u.Path)
		if cleaned == "." {
			cleaned = ""
		}

		if cleaned != "/" {
			cleaned = strings.TrimSuffix(cleaned, "/")
		}

		u.Path = cleaned
	}

	return u.String()
}

// splitRef splits a $ref value into its document URI part and its JSON
// pointer fragment part. A bare "#/a/b" ref has an empty URI, meaning "the
// document that contains this reference."
func splitRef(ref string) (uri, pointer string) {
	idx := strings.IndexByte(ref, '#')
	if idx < 0 {
		return ref, ""
	}

	return ref[:idx], ref[idx+1:]
}

// isAbsoluteURI reports whether ref carries its own scheme.
func isAbsoluteURI(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}

	return u.IsAbs()
}

// resolveRelativeURI resolves ref against base the way a browser resolves a
// relative link.
func resolveRelativeURI(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}
