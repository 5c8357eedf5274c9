package pkg

import (
	"net"
	"net/http"
	"strings"
)

// ReadUserIP returns the client address without the port, preferring proxy
// headers over the connection address.
func ReadUserIP(r *http.Request) string {
	addr := r.Header.Get("X-Real-Ip")
	if addr == "" {
		// first hop is the client
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			addr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	if addr == "" {
		addr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
