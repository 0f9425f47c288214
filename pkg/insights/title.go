package insights

import "strings"

const (
	titleMaxLength  = 50
	quoteMaxLength  = 200
	titleTruncateAt = 47
)

// DeriveTitle produces a short insight title from its content: the first
// sentence when it fits, otherwise the first 47 characters with an ellipsis.
func DeriveTitle(content string) string {
	firstSentence, _, _ := strings.Cut(content, ".")
	if len(firstSentence) > titleMaxLength {
		return firstSentence[:titleTruncateAt] + "..."
	}
	return firstSentence
}

// DeriveQuote returns the content itself as a quotable excerpt when it is
// short enough, otherwise empty.
func DeriveQuote(content string) string {
	if len(content) < quoteMaxLength {
		return content
	}
	return ""
}
