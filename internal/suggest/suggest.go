// Package suggest maps free-text task input to suggested task fields using
// dictionary lookups and fuzzy keyword matching. It keeps no state and does
// no I/O; calling it synchronously from a request handler is safe.
package suggest

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/sahilm/fuzzy"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

const maxTags = 10

// Suggestion is the set of task fields derived from free-text input.
type Suggestion struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Tags              []string  `json:"tags"`
	Priority          Priority  `json:"priority"`
	Category          string    `json:"category"`
	Difficulty        string    `json:"difficulty"`
	EstimatedDuration string    `json:"estimated_duration"`
	SuggestedDeadline time.Time `json:"suggested_deadline"`
}

// Suggest derives task fields from the input text. The existing titles, if
// given, only influence tagging: input overlapping an existing task gets a
// follow-up tag.
func Suggest(input string, existing []string) Suggestion {
	text := strings.ToLower(strings.TrimSpace(input))
	tokens := tokenize(text)

	priority := scorePriority(text, tokens)

	s := Suggestion{
		Title:             makeTitle(input),
		Tags:              collectTags(text, tokens, existing),
		Priority:          priority,
		Category:          categorize(text),
		Difficulty:        assessDifficulty(text),
		EstimatedDuration: estimateDuration(text, tokens),
		SuggestedDeadline: suggestDeadline(priority),
	}
	s.Description = describe(text, s.Title)
	return s
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// hasWord reports whether the word occurs in the input, either verbatim
// (phrases are matched against the whole text) or as a close fuzzy match of
// a single token, which catches common typos.
func hasWord(text string, tokens []string, word string) bool {
	if strings.Contains(word, " ") {
		return strings.Contains(text, word)
	}
	for _, tok := range tokens {
		if tok == word {
			return true
		}
	}
	return fuzzyHit(tokens, word)
}

func fuzzyHit(tokens []string, word string) bool {
	if len(word) < 5 {
		// short words fuzz too easily
		return false
	}
	for _, m := range fuzzy.Find(word, tokens) {
		candidate := tokens[m.Index]
		diff := len(word) - len(candidate)
		if diff < 0 {
			diff = -diff
		}
		if diff <= 2 {
			return true
		}
	}
	return false
}

func hasAny(text string, tokens []string, words []string) bool {
	for _, w := range words {
		if hasWord(text, tokens, w) {
			return true
		}
	}
	return false
}

func scorePriority(text string, tokens []string) Priority {
	score := 0
	for _, w := range urgentWords {
		if hasWord(text, tokens, w) {
			score += 3
		}
	}
	for _, w := range highWords {
		if hasWord(text, tokens, w) {
			score += 2
		}
	}
	for _, w := range lowWords {
		if hasWord(text, tokens, w) {
			score -= 2
		}
	}
	for _, w := range immediateWords {
		if hasWord(text, tokens, w) {
			score += 2
		}
	}
	for _, w := range deadlineWords {
		if hasWord(text, tokens, w) {
			score += 2
		}
	}
	for _, w := range urgentActions {
		if hasWord(text, tokens, w) {
			score++
		}
	}

	switch {
	case score >= 5:
		return PriorityHigh
	case score <= -2:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

func collectTags(text string, tokens []string, existing []string) []string {
	seen := make(map[string]bool)
	tags := make([]string, 0, maxTags)

	add := func(tag string) {
		if len(tags) < maxTags && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, action := range sortedKeys(actionSynonyms) {
		for _, w := range actionSynonyms[action] {
			if hasWord(text, tokens, w) {
				add(action)
				add(w)
			}
		}
	}
	for _, dom := range sortedKeys(domainSynonyms) {
		for _, w := range domainSynonyms[dom] {
			if hasWord(text, tokens, w) {
				add(dom)
				add(w)
			}
		}
	}

	for _, title := range existing {
		for _, tok := range tokenize(strings.ToLower(title)) {
			if len(tok) > 2 && seen[tok] {
				add("follow-up")
			}
		}
	}

	return tags
}

func categorize(text string) string {
	for _, category := range sortedKeys(categoryKeywords) {
		for _, w := range categoryKeywords[category] {
			if strings.Contains(text, w) {
				return category
			}
		}
	}
	return "general"
}

func assessDifficulty(text string) string {
	for _, level := range []string{"easy", "medium", "hard"} {
		for _, w := range difficultyWords[level] {
			if strings.Contains(text, w) {
				return level
			}
		}
	}
	return "medium"
}

func estimateDuration(text string, tokens []string) string {
	if hasAny(text, tokens, urgentWords) {
		return "15-30 minutes"
	}
	switch n := len(tokens); {
	case n < 10:
		return "30-60 minutes"
	case n < 20:
		return "1-2 hours"
	case n < 30:
		return "2-4 hours"
	default:
		return "4+ hours"
	}
}

func suggestDeadline(priority Priority) time.Time {
	days := 3
	switch priority {
	case PriorityHigh:
		days = 1
	case PriorityLow:
		days = 7
	}
	return time.Now().UTC().AddDate(0, 0, days)
}

func makeTitle(input string) string {
	title := strings.Join(strings.Fields(strings.TrimSpace(input)), " ")
	runes := []rune(title)
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	if len(runes) > 60 {
		runes = runes[:60]
	}
	return string(runes)
}

func describe(text, title string) string {
	tokens := tokenize(text)
	for _, action := range sortedKeys(actionSynonyms) {
		if hasAny(text, tokens, actionSynonyms[action]) {
			return actionDescriptions[action]
		}
	}
	if title == "" {
		return ""
	}
	return "Work through \"" + title + "\" and capture the outcome."
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
