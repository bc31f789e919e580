// Package outcome decides whether a tool invocation worked by looking for
// known success phrases in its output.
//
// The match is a literal substring test, not a word match: "Successfully" is
// found inside "UnSuccessfullyX" as well. Changing this would change which
// real-world tool output counts as success.
package outcome

import (
	"strings"

	"github.com/arthur-debert/plugboot/pkg/runner"
)

// NotFoundPhrase marks a package that the package manager does not know
const NotFoundPhrase = "not found"

// PhraseSet is a set of literal substrings whose presence proves success
type PhraseSet []string

// Default phrase sets per tool
var (
	InstallPhrases = PhraseSet{"Successfully", "already satisfied"}
	ClonePhrases   = PhraseSet{"done"}
	VenvPhrases    = PhraseSet{"created virtual"}
)

// NewPhraseSet builds a phrase set from the given phrases
func NewPhraseSet(phrases ...string) PhraseSet {
	set := make(PhraseSet, len(phrases))
	copy(set, phrases)
	return set
}

// Match returns the first phrase contained in message
func Match(message string, phrases PhraseSet) (string, bool) {
	for _, phrase := range phrases {
		if strings.Contains(message, phrase) {
			return phrase, true
		}
	}
	return "", false
}

// IsSuccess reports whether at least one phrase occurs in message.
// An empty set never matches.
func IsSuccess(message string, phrases PhraseSet) bool {
	_, ok := Match(message, phrases)
	return ok
}

// Classify applies IsSuccess to the result's message, so standard error is
// inspected whenever it is non-empty.
func Classify(result runner.ExecutionResult, phrases PhraseSet) bool {
	return IsSuccess(result.Message(), phrases)
}
