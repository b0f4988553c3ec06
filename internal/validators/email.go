package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the address part after the last
// "@" resolves to a host that can plausibly receive mail. Used at
// registration so reminder emails don't bounce from day one.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return domainResolves(email[at+1:])
}

// MX first, then a plain host lookup for domains that receive mail on
// their A record.
func domainResolves(domain string) bool {
	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
