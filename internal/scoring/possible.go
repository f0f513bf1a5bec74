package scoring

import (
	"math/rand/v2"
	"wordrush/internal/dictionary"

	"github.com/samber/lo"
)

// PossibleWords enumerates every dictionary word formable from the letter
// pool.
func PossibleWords(letters string, dict *dictionary.Dictionary) []string {
	return lo.Filter(dict.Words(), func(w string, _ int) bool {
		return CanForm(w, letters)
	})
}

// SamplePossibleWords picks up to size random formable words and reports how
// many more exist beyond the sample. Purely informational, never scored.
func SamplePossibleWords(letters string, dict *dictionary.Dictionary, size int, rng *rand.Rand) (sample []string, additional int) {
	all := PossibleWords(letters, dict)
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	if len(all) > size {
		return all[:size], len(all) - size
	}
	return all, 0
}
