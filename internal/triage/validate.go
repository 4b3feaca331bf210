package triage

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"ContentTriage/internal/domain"
)

const minContentLength = 50

var (
	markupExpr     = regexp.MustCompile(`<[^>]+>`)
	whitespaceExpr = regexp.MustCompile(`\s+`)
)

// Clean strips markup tags from text and normalizes whitespace. Tags are
// removed without decoding entities, so entity-escaped markup stays escaped
// and applying Clean to already-cleaned text is a no-op.
func Clean(text string) string {
	text = markupExpr.ReplaceAllString(text, " ")
	text = whitespaceExpr.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ValidateItem cleans the item's content in place and rejects content that
// is too short to analyze. Items already invalid from a prior stage are
// left untouched. It reports whether the item was rejected here.
func ValidateItem(item *domain.ContentItem) bool {
	if !item.IsValid {
		return false
	}

	item.RawContent = Clean(item.RawContent)

	if utf8.RuneCountInString(item.RawContent) < minContentLength {
		item.IsValid = false
		item.ValidationError = "Content too short (<50 chars)"
		item.Decision = domain.DecisionRejected
		item.DecisionReason = "Validation Failed: Too short"
		return true
	}

	return false
}
