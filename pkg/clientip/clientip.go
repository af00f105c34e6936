package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Func extracts the client address used as a rate-limit key.
type Func func(r *http.Request) string

// RealClientIP returns the host part of r.RemoteAddr, ignoring proxy headers.
func RealClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}

// ForwardedClientIP trusts the left-most X-Forwarded-For entry, then
// X-Real-Ip, then falls back to RealClientIP. Only use behind a proxy that
// overwrites these headers.
func ForwardedClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); ip != nil {
		return ip.String()
	}
	return RealClientIP(r)
}

// Resolver picks ForwardedClientIP when trustProxy is set.
func Resolver(trustProxy bool) Func {
	if trustProxy {
		return ForwardedClientIP
	}
	return RealClientIP
}
