package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Port on which the HTTP server and websocket endpoint listen
	Port string `envconfig:"SKETCH_PORT" default:"3000"`

	// Human-readable console logging instead of JSON
	Debug bool `envconfig:"SKETCH_DEBUG" default:"false"`

	// Origins accepted for CORS and websocket upgrades, "*" allows any
	AllowedOrigins []string `envconfig:"SKETCH_ALLOWED_ORIGINS" default:"*"`

	// How long the drawer has before the word is revealed
	RoundDuration time.Duration `envconfig:"SKETCH_ROUND_DURATION" default:"60s"`

	// Rounds per game, one drawer/word assignment each
	MaxRounds int `envconfig:"SKETCH_MAX_ROUNDS" default:"3"`

	MinPlayers int `envconfig:"SKETCH_MIN_PLAYERS" default:"2"`
	MaxPlayers int `envconfig:"SKETCH_MAX_PLAYERS" default:"12"`

	// Optional newline-delimited word list, compiled-in list when unset
	WordsFile string `envconfig:"SKETCH_WORDS_FILE"`

	// Enables the !reveal chat command that answers the sender with the
	// secret word. Debugging aid, keep off outside development.
	DebugReveal bool `envconfig:"SKETCH_DEBUG_REVEAL" default:"false"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
