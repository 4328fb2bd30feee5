package utils

import "strings"

// Fqdn returns name trimmed of surrounding whitespace with exactly one trailing dot.
// Case is preserved because zone lookups are case-sensitive.
// An empty or all-dot name becomes the root ".".
func Fqdn(name string) string {
	name = strings.TrimSpace(name)
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name + "."
}

// TrimFqdn returns name without its trailing dot.
func TrimFqdn(name string) string {
	if name == "." {
		return name
	}
	return strings.TrimSuffix(name, ".")
}

// Absolute appends a trailing dot when name lacks one and otherwise returns it
// untouched. Query names use this rather than Fqdn so lookups stay exact.
func Absolute(name string) string {
	if strings.HasSuffix(name, ".") {
		return name
	}
	return name + "."
}
