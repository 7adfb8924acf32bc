package detector

import "strings"

// Substrings that mark a visit as non-billable: crawlers, monitoring
// probes and the link-unfurling agents of chat/social platforms.
var botPatterns = []string{
	"bot",
	"crawler",
	"spider",
	"slurp",
	"search",
	"mediapartners",
	"nagios",
	"monitoring",
	"whatsapp",
	"facebook",
	"twitter",
	"linkedin",
	"telegram",
	"discord",
	"slack",
	"google",
	"bing",
	"yandex",
	"duckduckgo",
	"baidu",
}

// IsBot reports whether the user agent belongs to a crawler, monitoring
// probe or link-preview scraper. An empty user agent is not treated as
// a bot.
func IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	ua := strings.ToLower(userAgent)
	for _, pattern := range botPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}

	return false
}
