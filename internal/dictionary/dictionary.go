package dictionary

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"wordrush/internal/config"
	"wordrush/internal/constants"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

//go:embed words.txt
var embeddedWords string

// Dictionary is an immutable lowercase word set, exposed both as a flat
// slice (for filtering and sampling) and as a trie (for per-word lookup).
// Built once at startup and shared read-only.
type Dictionary struct {
	words []string
	index trie
}

// New builds a dictionary from a raw word list. Words are lowercased,
// deduplicated, and dropped unless they are alphabetic and at least
// three letters long.
func New(words []string) *Dictionary {
	d := &Dictionary{}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) < constants.MinDictionaryLength || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		d.words = append(d.words, w)
		d.index.insert(w)
	}
	return d
}

// Load builds the dictionary from the configured word list file, falling
// back to the embedded list when none is configured.
func Load(cfg *config.Config, logger zerolog.Logger) (*Dictionary, error) {
	var raw []string
	if cfg.WordlistFile != "" {
		var err error
		raw, err = readWordFile(cfg.WordlistFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read word list: %w", err)
		}
		logger.Info().Str("path", cfg.WordlistFile).Msg("loaded word list from file")
	} else {
		raw = strings.Split(embeddedWords, "\n")
		logger.Info().Msg("using embedded word list")
	}

	d := New(raw)
	if d.Len() == 0 {
		return nil, errors.New("word list is empty")
	}

	logger.Info().Int("words", d.Len()).Msg("dictionary ready")
	return d, nil
}

func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	return out, sc.Err()
}

// Contains reports whether word is in the dictionary. Case-insensitive,
// exact match only.
func (d *Dictionary) Contains(word string) bool {
	return d.index.contains(strings.ToLower(word))
}

// Words returns the full word list. Callers must treat it as read-only.
func (d *Dictionary) Words() []string {
	return d.words
}

// WordsWithLengthBetween returns every word whose length is within
// [min, max] inclusive.
func (d *Dictionary) WordsWithLengthBetween(min, max int) []string {
	var out []string
	for _, w := range d.words {
		if len(w) >= min && len(w) <= max {
			out = append(out, w)
		}
	}
	return out
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

var Module = fx.Provide(Load)
