package utils

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// IsPublicSuffix reports whether name is itself a public suffix such as "com." or "co.uk.".
// Only ICANN-managed suffixes count.
func IsPublicSuffix(name string) bool {
	name = strings.ToLower(TrimFqdn(Fqdn(name)))
	if name == "." || name == "" {
		return false
	}
	suffix, icann := publicsuffix.PublicSuffix(name)
	return icann && suffix == name
}

// ApexDomain returns the registrable domain (eTLD+1) of name without a trailing dot.
// Names without a registrable part are returned trimmed as-is.
func ApexDomain(name string) string {
	name = TrimFqdn(Fqdn(name))
	apex, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return name
	}
	return apex
}
