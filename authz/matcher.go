package authz

import "strings"

// MatchPath checks if a path pattern matches a request path.
//
//   - "*"  as a segment matches exactly one segment
//   - "**" as the last segment matches zero or more trailing segments
//
// Trailing slashes are ignored on both sides.
func MatchPath(pattern, path string) bool {
	if pattern == path || pattern == "/**" {
		return true
	}

	patParts := split(pattern)
	pathParts := split(path)

	for i, p := range patParts {
		if p == "**" && i == len(patParts)-1 {
			return true
		}
		if i >= len(pathParts) {
			return false
		}
		if !matchWildcard(p, pathParts[i]) {
			return false
		}
	}
	return len(patParts) == len(pathParts)
}

// MatchMethod reports whether a rule method matches the request method.
// Empty and "*" match any method; comparison is case-insensitive.
func MatchMethod(pattern, method string) bool {
	return pattern == "" || pattern == "*" || strings.EqualFold(pattern, method)
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchWildcard compares two segments where "*" matches anything.
func matchWildcard(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
