package uri

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
)

// trackingParams are query keys that never affect page content
var trackingParams = map[string]struct{}{
	"fbclid": {},
	"gclid":  {},
	"ref":    {},
	"ref_":   {},
}

// Normalize canonicalizes a URL into the key used to deduplicate pages and galleries.
// Bare hosts are treated as https and http is folded into https, so that
// "http://www.example.com" and "https://Example.com/" share one key.
func Normalize(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty URL", domain.ErrMalformedURL)
	}

	switch {
	case strings.HasPrefix(s, "//"):
		s = "https:" + s
	case !strings.Contains(s, "://"):
		if hasForeignScheme(s) {
			return "", fmt.Errorf("%w: unsupported scheme in %q", domain.ErrMalformedURL, raw)
		}
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedURL, err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", domain.ErrMalformedURL, u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", fmt.Errorf("%w: missing host in %q", domain.ErrMalformedURL, raw)
	}
	for strings.HasPrefix(host, "www.") {
		host = strings.TrimPrefix(host, "www.")
	}
	if host == "" {
		return "", fmt.Errorf("%w: missing host in %q", domain.ErrMalformedURL, raw)
	}

	// the output is always https, so 443 is a default port whatever the input scheme
	port := u.Port()
	if port == "443" || (scheme == "http" && port == "80") {
		port = ""
	}

	var b strings.Builder
	b.WriteString("https://")
	if port != "" {
		b.WriteString(net.JoinHostPort(host, port))
	} else if strings.Contains(host, ":") {
		b.WriteString("[" + host + "]")
	} else {
		b.WriteString(host)
	}

	path := u.EscapedPath()
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path != "/" {
		b.WriteString(path)
	}

	if query := normalizeQuery(u.RawQuery); query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}

	return b.String(), nil
}

// normalizeQuery drops tracking parameters and sorts the rest by key.
// Pairs that fail to decode are dropped rather than failing the whole URL.
func normalizeQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}

	values, _ := url.ParseQuery(rawQuery)

	for key := range values {
		if isTrackingParam(key) {
			delete(values, key)
		}
	}

	// Encode sorts by key and keeps the value order of repeated keys
	return values.Encode()
}

func isTrackingParam(key string) bool {
	k := strings.ToLower(key)
	if strings.HasPrefix(k, "utm_") {
		return true
	}
	_, ok := trackingParams[k]
	return ok
}

// hasForeignScheme reports whether a scheme-less looking string is really
// something like mailto:, tel: or javascript:
func hasForeignScheme(s string) bool {
	i := strings.Index(s, ":")
	if i <= 0 {
		return false
	}
	prefix := s[:i]
	for _, r := range prefix {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	rest := s[i+1:]
	// host:port
	return rest == "" || rest[0] < '0' || rest[0] > '9'
}

// Link pairs a URL as it was found with its normalized form
type Link struct {
	Raw        string
	Normalized string
}

// NormalizeAll normalizes a batch of URLs, dropping malformed entries and
// in-batch duplicates while keeping first-seen order. A duplicate keeps the raw form seen first.
func NormalizeAll(urls []string) (links []Link, rejected []string) {
	seen := make(map[string]struct{}, len(urls))
	for _, raw := range urls {
		n, err := Normalize(raw)
		if err != nil {
			rejected = append(rejected, raw)
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		links = append(links, Link{Raw: strings.TrimSpace(raw), Normalized: n})
	}
	return links, rejected
}
