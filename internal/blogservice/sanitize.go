package blogservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeMarkdown strips script blocks from post content.
func sanitizeMarkdown(markdown string) string {
	return scriptTagPattern.ReplaceAllString(markdown, "")
}
