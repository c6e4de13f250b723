package validation

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is the longest chat message accepted, in characters.
const MaxMessageLength = 500

// ColorPattern defines the accepted style color format: #RRGGBB.
var ColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NormalizeMessage trims surrounding whitespace from a chat message.
func NormalizeMessage(message string) string {
	return strings.TrimSpace(message)
}

// ValidateMessage checks a normalized chat message.
func ValidateMessage(message string) (bool, string) {
	if message == "" {
		return false, "Message is required"
	}
	if !utf8.ValidString(message) {
		return false, "Message must be valid UTF-8"
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return false, "Message is too long"
	}
	return true, ""
}

// ValidateColor checks a #RRGGBB color.
func ValidateColor(color string) bool {
	return ColorPattern.MatchString(color)
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
// This prevents javascript:, data:, vbscript:, and other dangerous URL schemes.
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}

// ValidateEmbedURL checks a music embed link. On top of ValidateURL it rejects
// localhost and literal private or reserved IP addresses. Hostnames are not
// resolved.
func ValidateEmbedURL(urlStr string) (bool, string) {
	valid, msg := ValidateURL(urlStr)
	if !valid {
		return false, msg
	}

	u, _ := url.Parse(urlStr)
	host := u.Hostname()
	if strings.EqualFold(host, "localhost") || IsPrivateIP(net.ParseIP(host)) {
		return false, "URL points to a private or reserved address"
	}
	return true, ""
}

// IsPrivateIP checks if an IP address is in a private/reserved range.
func IsPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	if ip.IsLoopback() {
		return true
	}

	if ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
		return true
	}

	if ip.IsPrivate() {
		return true
	}

	if ip.IsUnspecified() {
		return true
	}

	// Azure wire server; 169.254.169.254 is already link-local
	if ip.Equal(net.ParseIP("168.63.129.16")) {
		return true
	}

	return false
}
