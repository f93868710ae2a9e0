package gmail

import (
	"regexp"
	"strings"
)

var (
	scriptRegex       = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRegex        = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	brRegex           = regexp.MustCompile(`(?i)<br\s*/?>`)
	blockRegex        = regexp.MustCompile(`(?i)</?(p|div|tr|table|article|section|header|footer)[^>]*>`)
	liRegex           = regexp.MustCompile(`(?i)<li[^>]*>`)
	tagRegex          = regexp.MustCompile(`<[^>]+>`)
	multiNewlineRegex = regexp.MustCompile(`\n{3,}`)
	multiSpaceRegex   = regexp.MustCompile(`[ \t]+`)
)

// HTMLToText converts HTML content to plain text, preserving line breaks
// between block elements so the model does not see everything on one line.
func HTMLToText(html string) string {
	if html == "" {
		return ""
	}

	text := html

	// Replace common HTML entities
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", "\"")
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&apos;", "'")

	text = scriptRegex.ReplaceAllString(text, "")
	text = styleRegex.ReplaceAllString(text, "")

	text = brRegex.ReplaceAllString(text, "\n")
	text = blockRegex.ReplaceAllString(text, "\n\n")
	text = liRegex.ReplaceAllString(text, "\n- ")

	// Remove all remaining HTML tags
	text = tagRegex.ReplaceAllString(text, "")

	text = multiNewlineRegex.ReplaceAllString(text, "\n\n")
	text = multiSpaceRegex.ReplaceAllString(text, " ")

	// Trim whitespace from each line
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")

	return strings.TrimSpace(text)
}
