package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

// proxyHeaders are consulted in order before the socket peer.
var proxyHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

// resolveClientIP returns the rate-limit key for r.
func resolveClientIP(r *http.Request) string {
	for _, h := range proxyHeaders {
		first, _, _ := strings.Cut(r.Header.Get(h), ",")
		if addr, ok := parseAddr(first); ok {
			return addr.String()
		}
	}
	if addr, ok := parseAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return "unknown"
}

// parseAddr accepts a bare address or host:port.
func parseAddr(raw string) (netip.Addr, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return netip.Addr{}, false
	}
	if ap, err := netip.ParseAddrPort(raw); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(strings.Trim(raw, "[]"))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
