// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"strings"
)

// MinArticleWords is the minimum whitespace-delimited word count for
// article content.
const MinArticleWords = 120

// blockedWords is the static moderation blocklist. Matching is a
// case-insensitive substring check, the same on create and edit.
var blockedWords = []string{
	"damn",
	"hell",
	"crap",
	"idiot",
	"stupid",
	"moron",
	"loser",
	"shut up",
	"hate you",
	"kill yourself",
}

// ContainsProfanity reports whether text contains any blocked word as a
// case-insensitive substring.
func ContainsProfanity(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range blockedWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// CountWords returns the number of whitespace-delimited words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ValidateArticle checks title and content against the moderation blocklist
// and the minimum word count. The word-count error includes the current
// count so the client can surface it.
func ValidateArticle(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if ContainsProfanity(title) || ContainsProfanity(content) {
		return fmt.Errorf("profanity is not allowed")
	}
	if n := CountWords(content); n < MinArticleWords {
		return fmt.Errorf("article must be at least %d words. Current count: %d", MinArticleWords, n)
	}
	return nil
}

// ValidatePassword checks that a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}
