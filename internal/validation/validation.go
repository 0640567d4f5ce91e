package validation

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaxQueryRunes caps how much of a question is forwarded upstream.
const MaxQueryRunes = 4000

// NormalizeQuery lowercases a query so keyword matching is case-insensitive.
func NormalizeQuery(query string) string {
	return strings.ToLower(query)
}

// IsBlank reports whether a query is empty or whitespace only.
func IsBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

// TruncateQuery trims surrounding whitespace and cuts the query to MaxQueryRunes runes.
func TruncateQuery(query string) string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) <= MaxQueryRunes {
		return query
	}
	runes := []rune(query)
	return string(runes[:MaxQueryRunes])
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
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
