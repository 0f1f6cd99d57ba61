package domain

import (
	"errors"
	"net/netip"
	"strings"
)

var errNoConnectionInfo = errors.New("no connection info")

// ClientAddress is the validated IP address of the visitor submitting the form.
type ClientAddress struct {
	addr netip.Addr
}

// ParseClientAddress accepts "<ip>", "<ip>:<port>" or "[<ipv6>]:<port>" and returns the IP part.
func ParseClientAddress(raw string) (ClientAddress, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ClientAddress{}, &AddressParseError{Raw: raw, Err: errNoConnectionInfo}
	}

	addr, err := netip.ParseAddr(stripPort(trimmed))
	if err != nil {
		return ClientAddress{}, &AddressParseError{Raw: raw, Err: err}
	}
	return ClientAddress{addr: addr.Unmap()}, nil
}

// stripPort removes a trailing numeric ":port" suffix. Bare IPv6 literals are returned untouched.
func stripPort(raw string) string {
	if strings.HasPrefix(raw, "[") {
		end := strings.IndexByte(raw, ']')
		if end < 0 {
			return raw
		}
		rest := raw[end+1:]
		if rest == "" || (rest[0] == ':' && isDigits(rest[1:])) {
			return raw[1:end]
		}
		return raw
	}

	if strings.Count(raw, ":") != 1 {
		return raw
	}
	idx := strings.IndexByte(raw, ':')
	if isDigits(raw[idx+1:]) {
		return raw[:idx]
	}
	return raw
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsValid reports whether the address was produced by ParseClientAddress.
func (a ClientAddress) IsValid() bool { return a.addr.IsValid() }

func (a ClientAddress) String() string {
	if !a.addr.IsValid() {
		return ""
	}
	return a.addr.String()
}
