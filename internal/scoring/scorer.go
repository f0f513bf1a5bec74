package scoring

import (
	"regexp"
	"strings"
	"wordrush/internal/constants"
	"wordrush/internal/dictionary"
)

var tokenSplitter = regexp.MustCompile(`[,"\s]+`)

// Result is the outcome of classifying and scoring one submission batch.
// BonusWords is always a subset of Words; NormalPoints is computed on the
// ordinary words that are not bonus words, so a bonus word is never
// rewarded twice.
type Result struct {
	Words        []string
	BonusWords   []string
	NormalPoints int
	BonusPoints  int
	Submitted    []string
}

func (r Result) TotalPoints() int {
	return r.NormalPoints + r.BonusPoints
}

// NormalizeTokens splits raw submissions on commas, quotes and whitespace,
// lowercases the pieces and drops empties. Malformed tokens are kept here;
// they simply fail dictionary or letter checks later.
func NormalizeTokens(raw []string) []string {
	var out []string
	for _, entry := range raw {
		for _, tok := range tokenSplitter.Split(entry, -1) {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// Score classifies submitted tokens against the session's letters and hidden
// words. Nothing here is an error: an empty or garbage submission yields
// zero words and zero points.
func Score(submitted []string, letters string, hiddenWords []string, dict *dictionary.Dictionary, staked bool) Result {
	tokens := NormalizeTokens(submitted)

	hidden := make(map[string]struct{}, len(hiddenWords))
	for _, w := range hiddenWords {
		hidden[strings.ToLower(w)] = struct{}{}
	}

	words := verify(tokens, letters, dict.Contains)
	bonus := verify(tokens, letters, func(w string) bool {
		_, ok := hidden[w]
		return ok
	})

	normalPoints := (len(words) - len(bonus)) * constants.NormalWordPoints
	bonusPoints := len(bonus) * constants.BonusWordPoints
	if staked {
		normalPoints *= constants.StakedMultiplier
		bonusPoints *= constants.StakedMultiplier
	}

	return Result{
		Words:        words,
		BonusWords:   bonus,
		NormalPoints: normalPoints,
		BonusPoints:  bonusPoints,
		Submitted:    tokens,
	}
}

// verify returns the deduplicated tokens that are members of the target set
// and formable from the letter pool, in first-seen order.
func verify(tokens []string, letters string, member func(string) bool) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, w := range tokens {
		if _, dup := seen[w]; dup {
			continue
		}
		if !member(w) || !CanForm(w, letters) {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
