package domain

import (
	"net/url"
	"strings"
)

// Region — подсказка региона для сервиса извлечения (ISO 3166 alpha-2).
type Region string

const (
	RegionUS Region = "US"
	RegionIN Region = "IN"
	RegionGB Region = "GB"
	RegionCA Region = "CA"
)

// RegionFromURL угадывает регион магазина по суффиксу домена.
// Это эвристика по строке, а не геолокация.
func RegionFromURL(rawURL string) Region {
	host := bareHost(rawURL)
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Hostname()
	}
	host = strings.TrimSuffix(strings.ToLower(host), ".")

	switch {
	case strings.HasSuffix(host, ".in"):
		return RegionIN
	case strings.HasSuffix(host, ".co.uk"):
		return RegionGB
	case strings.HasSuffix(host, ".ca"):
		return RegionCA
	default:
		return RegionUS
	}
}

// bareHost выделяет хост из адреса без схемы: "amazon.co.uk:443/dp/B0" -> "amazon.co.uk".
func bareHost(raw string) string {
	host := strings.TrimSpace(raw)
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndexByte(host, '@'); i >= 0 {
		host = host[i+1:]
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	return host
}
