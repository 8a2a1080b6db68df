// Package browser builds the outbound header profile a fresh session
// presents to the game backend.
package browser

import "math/rand"

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
}

// RandomUserAgent picks one agent string from the pool.
func RandomUserAgent() string {
	return userAgents[rand.Intn(len(userAgents))]
}

// Profile returns the full header set for a new session using the given
// user agent. The keys mirror what the game's web client sends; the session
// store persists them verbatim.
func Profile(origin, userAgent string) map[string]string {
	return map[string]string{
		"accept":             "application/json, text/plain, */*",
		"accept-language":    "en-US,en;q=0.9",
		"priority":           "u=1, i",
		"sec-ch-ua":          `"Google Chrome";v="125", "Not.A/Brand";v="24", "Chromium";v="125"`,
		"sec-ch-ua-mobile":   "?0",
		"sec-ch-ua-platform": `"Windows"`,
		"origin":             origin,
		"referer":            origin + "/",
		"user-agent":         userAgent,
		"sec-fetch-dest":     "empty",
		"sec-fetch-mode":     "cors",
		"sec-fetch-site":     "same-origin",
		"Content-Type":       "application/json",
	}
}
