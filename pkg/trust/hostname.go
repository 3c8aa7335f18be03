// Copyright 2026 Jeremy Hahn
// SPDX-License-Identifier: MIT

package trust

import (
	"crypto/x509"
	"regexp"
	"strings"
)

// cnPattern extracts the first CN attribute from a textual subject.
var cnPattern = regexp.MustCompile(`CN\s*=\s*([^,]*)`)

// CommonName returns the certificate's subject Common Name. The structured
// field is preferred; the textual subject is searched when it is empty.
func CommonName(cert *x509.Certificate) string {
	if cert == nil {
		return ""
	}
	if cn := strings.TrimSpace(cert.Subject.CommonName); cn != "" {
		return cn
	}
	return CommonNameFromSubject(cert.Subject.String())
}

// CommonNameFromSubject extracts the first "CN=<value>" from a textual
// subject, up to the next comma.
func CommonNameFromSubject(subject string) string {
	m := cnPattern.FindStringSubmatch(subject)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// MatchHostname reports whether the certificate is valid for the hostname.
// The Common Name is tried first using wildcard rules; when it is empty or
// does not match, the hostname must appear verbatim in the certificate's
// Subject Alternative Names.
func MatchHostname(hostname string, cert *x509.Certificate) bool {
	if cert == nil || hostname == "" {
		return false
	}
	if cn := CommonName(cert); cn != "" && MatchPattern(hostname, cn) {
		return true
	}
	for _, san := range SubjectAlternativeNames(cert) {
		if san == hostname {
			return true
		}
	}
	return false
}

// SubjectAlternativeNames returns the DNS and IP SAN entries as presented.
func SubjectAlternativeNames(cert *x509.Certificate) []string {
	names := make([]string, 0, len(cert.DNSNames)+len(cert.IPAddresses))
	names = append(names, cert.DNSNames...)
	for _, ip := range cert.IPAddresses {
		names = append(names, ip.String())
	}
	return names
}

// MatchPattern matches a hostname against a certificate name pattern. A
// single leading "*" label matches exactly one hostname label. Comparison is
// case-insensitive and ignores a trailing dot.
func MatchPattern(hostname, pattern string) bool {
	hostname = strings.TrimSuffix(strings.ToLower(hostname), ".")
	pattern = strings.TrimSuffix(strings.ToLower(pattern), ".")
	if hostname == "" || pattern == "" {
		return false
	}

	if !strings.HasPrefix(pattern, "*.") {
		return hostname == pattern
	}

	suffix := pattern[2:]
	if !strings.Contains(suffix, ".") || strings.Contains(suffix, "*") {
		return false
	}
	label, rest, ok := strings.Cut(hostname, ".")
	if !ok || label == "" {
		return false
	}
	return rest == suffix
}
