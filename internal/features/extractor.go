// Package features detects well-known app features mentioned in a free-text
// description. Detection is plain substring matching and only biases prompts.
package features

import "strings"

// Vocabulary is the fixed, ordered list of detectable features.
var Vocabulary = []string{
	"authentication",
	"login",
	"user management",
	"dashboard",
	"forms",
	"database",
	"api",
	"responsive design",
	"search",
	"payments",
	"cart",
	"notifications",
	"real-time",
	"chat",
	"file upload",
	"admin panel",
}

// Extract returns the vocabulary terms found in description, in vocabulary order.
// A term matches if it, or the term with its spaces removed, occurs anywhere in
// the case-folded text.
func Extract(description string) []string {
	text := strings.ToLower(description)

	found := make([]string, 0, len(Vocabulary))
	for _, term := range Vocabulary {
		if strings.Contains(text, term) || strings.Contains(text, strings.ReplaceAll(term, " ", "")) {
			found = append(found, term)
		}
	}
	return found
}

// Merge appends the declared features that Extract did not already find,
// skipping blanks and duplicates.
func Merge(extracted, declared []string) []string {
	seen := make(map[string]struct{}, len(extracted)+len(declared))
	out := make([]string, 0, len(extracted)+len(declared))

	for _, list := range [][]string{extracted, declared} {
		for _, f := range list {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			key := strings.ToLower(f)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, f)
		}
	}
	return out
}
