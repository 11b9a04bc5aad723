package extractor

import (
	"regexp"
	"strings"
)

var urlRegex = regexp.MustCompile(`https?://\S+`)

// ExtractURLs scans message text or caption content for http(s) URLs,
// trimming trailing punctuation and dropping duplicates while preserving
// first-seen order.
func ExtractURLs(text string) []string {
	matches := urlRegex.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var urls []string

	seen := make(map[string]bool)

	for _, m := range matches {
		u := strings.TrimRight(m, ".,;:!?)")
		if u == "" || seen[u] {
			continue
		}

		seen[u] = true

		urls = append(urls, u)
	}

	return urls
}
