package services

import (
	"net/url"
	"strings"
)

const PlatformOther = "other"

// host suffix -> platform
var platformHosts = []struct {
	host     string
	platform string
}{
	{"facebook.com", "facebook"},
	{"fb.com", "facebook"},
	{"instagram.com", "instagram"},
	{"linkedin.com", "linkedin"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"youtube.com", "youtube"},
	{"youtu.be", "youtube"},
	{"tiktok.com", "tiktok"},
	{"wa.me", "whatsapp"},
	{"whatsapp.com", "whatsapp"},
	{"t.me", "telegram"},
	{"telegram.me", "telegram"},
	{"pinterest.com", "pinterest"},
	{"github.com", "github"},
}

// DetectPlatform guesses the social platform from a profile URL's host
func DetectPlatform(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlatformOther
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return PlatformOther
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, p := range platformHosts {
		if host == p.host || strings.HasSuffix(host, "."+p.host) {
			return p.platform
		}
	}
	return PlatformOther
}
