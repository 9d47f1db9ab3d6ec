// Package words holds the candidate word set and derives the blanked hints
// shown to guessers.
package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/valyala/fastrand"
)

// FallbackWord is returned when the configured set is empty. Degraded but
// available beats refusing to start a round.
const FallbackWord = "sketch"

// How many re-rolls Pick spends trying to dodge a recently used word.
const pickAttempts = 8

type Supply struct {
	words  []string
	recent *lru.Cache
}

// NewSupply builds a supply over list, skipping blank entries.
func NewSupply(list []string) *Supply {
	words := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(w)
		if w != "" {
			words = append(words, w)
		}
	}

	// Suppress repeats across at most half the set so Pick can always
	// find something outside the cache.
	size := len(words) / 2
	if size < 1 {
		size = 1
	}
	if size > 32 {
		size = 32
	}
	recent, _ := lru.New(size)

	return &Supply{words: words, recent: recent}
}

// Pick returns a uniformly random word, avoiding recent repeats on a
// best-effort basis. Never fails: an empty set yields FallbackWord.
func (s *Supply) Pick() string {
	if len(s.words) == 0 {
		return FallbackWord
	}

	w := s.words[fastrand.Uint32n(uint32(len(s.words)))]
	for i := 0; i < pickAttempts && s.recent.Contains(w); i++ {
		w = s.words[fastrand.Uint32n(uint32(len(s.words)))]
	}
	s.recent.Add(w, struct{}{})
	return w
}

// Hint renders word as one "_" token per rune, space separated. Guessers
// learn the length and nothing else.
func (s *Supply) Hint(word string) string {
	return Hint(word)
}

func Hint(word string) string {
	var b strings.Builder
	first := true
	for range word {
		if !first {
			b.WriteByte(' ')
		}
		b.WriteByte('_')
		first = false
	}
	return b.String()
}

// Load reads a newline-delimited word file, skipping blank lines.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}

// Default returns the compiled-in word list used when no file is configured.
func Default() []string {
	return []string{
		"apple", "banana", "bicycle", "bridge", "butterfly",
		"cactus", "camera", "castle", "cloud", "compass",
		"dolphin", "dragon", "drum", "elephant", "envelope",
		"feather", "fireworks", "flashlight", "fountain", "guitar",
		"hammer", "helicopter", "igloo", "island", "kangaroo",
		"keyboard", "ladder", "lighthouse", "mermaid", "microscope",
		"mountain", "mushroom", "octopus", "owl", "parachute",
		"penguin", "piano", "pirate", "pyramid", "rainbow",
		"robot", "rocket", "sandcastle", "saxophone", "scarecrow",
		"snowman", "spaceship", "submarine", "telescope", "tornado",
		"treasure", "trumpet", "turtle", "umbrella", "unicorn",
		"volcano", "waterfall", "whale", "windmill", "wizard",
	}
}
