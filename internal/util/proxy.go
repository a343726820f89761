package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc creates a proxy function for outbound provider calls.
// With no explicit proxy URLs it falls back to environment variables.
// Hosts matching an entry in the comma-separated noProxy list bypass
// the proxy entirely.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	var bypass []string
	for _, entry := range strings.Split(noProxy, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			bypass = append(bypass, strings.ToLower(entry))
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassed(req.URL.Hostname(), bypass) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// hostBypassed matches a host against no-proxy entries, treating each
// entry as an exact host or a domain suffix
func hostBypassed(host string, bypass []string) bool {
	host = strings.ToLower(host)
	for _, entry := range bypass {
		if host == entry || strings.HasSuffix(host, "."+strings.TrimPrefix(entry, ".")) {
			return true
		}
	}
	return false
}
