package scoring

import "strings"

// CanForm reports whether word can be spelled using no more of each letter
// than available provides. Comparison is multiset containment, not substring
// matching, and is case-insensitive. The available pool is never depleted;
// every candidate in a batch is checked against the original multiset.
func CanForm(word, available string) bool {
	need, ok := letterCounts(strings.ToLower(word))
	if !ok {
		return false
	}
	have, _ := letterCounts(strings.ToLower(available))
	for i := range need {
		if need[i] > have[i] {
			return false
		}
	}
	return true
}

// letterCounts tallies a-z occurrences. ok is false when the string holds
// any character outside lowercase a-z; such words can never be formed.
func letterCounts(s string) (counts [26]int, ok bool) {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return counts, false
		}
		counts[r-'a']++
	}
	return counts, true
}
