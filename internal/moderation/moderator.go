// Package moderation censors configured words in chat bodies. Matching
// runs over a normalized view of the text, so leet substitutions
// ("sp4m") and separator padding ("s p a m") do not slip past, while
// masking is applied to the original runes to preserve spacing.
package moderation

import (
	"errors"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"github.com/telex-tui/telex-server/internal/core"
)

// Moderator matches banned words with an Aho-Corasick automaton built
// once at startup.
type Moderator struct {
	machine *goahocorasick.Machine
	mask    rune
}

// New builds a moderator for the given word list. Words normalize to
// lowercase with noise characters removed before they enter the
// automaton. A word with no letters or digits is not a word at all and
// is skipped: message-side normalization maps leet punctuation onto
// letters, so "!!" would otherwise turn into the pattern "ii" and
// censor innocent text.
func New(words []string, mask rune) (*Moderator, error) {
	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		if !strings.ContainsFunc(w, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) {
			continue
		}
		if norm, _ := normalize(w); len(norm) > 0 {
			patterns = append(patterns, norm)
		}
	}
	if len(patterns) == 0 {
		return nil, errors.New("no usable patterns")
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{machine: machine, mask: mask}, nil
}

// Censor replaces every matched span with the mask rune and reports
// how many spans were masked. Unmatched text is returned unchanged.
func (m *Moderator) Censor(text string) (string, int) {
	norm, origIdx := normalize(text)
	if len(norm) == 0 {
		return text, 0
	}

	terms := m.machine.MultiPatternSearch(norm, false)
	if len(terms) == 0 {
		return text, 0
	}

	runes := []rune(text)
	hits := 0
	for _, term := range terms {
		start := term.Pos
		end := start + len(term.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		// Mask the original span, padding characters included.
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			runes[i] = m.mask
		}
		hits++
	}
	return string(runes), hits
}

// Filter adapts the moderator to the hub's filter chain.
func (m *Moderator) Filter() core.Filter {
	return func(username, body string) core.FilterAction {
		censored, hits := m.Censor(body)
		if hits == 0 {
			return core.Allow()
		}
		return core.ModifyBody(censored)
	}
}

// normalize lowercases, undoes common leet substitutions, and strips
// punctuation, spacing, and symbols. The second return value maps each
// normalized rune back to its index in the original text.
func normalize(text string) ([]rune, []int) {
	orig := []rune(text)
	norm := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))

	for i, r := range orig {
		r = unleet(r)
		if unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
			continue
		}
		norm = append(norm, unicode.ToLower(r))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}

func unleet(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}
