package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sketchparty/config"
	"sketchparty/game"
	"sketchparty/logger"
	"sketchparty/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.New(cfg.Debug)

	list := words.Default()
	if cfg.WordsFile != "" {
		loaded, err := words.Load(cfg.WordsFile)
		switch {
		case err != nil:
			logg.Warn().Err(err).Str("path", cfg.WordsFile).Msg("failed to load word list, using built-in words")
		case len(loaded) == 0:
			logg.Warn().Str("path", cfg.WordsFile).Msg("word list is empty, using built-in words")
		default:
			list = loaded
		}
	}
	supply := words.NewSupply(list)

	newRoom := func() game.Room {
		return game.NewRoom(game.RoomConfig{
			RoundDuration: cfg.RoundDuration,
			MaxRounds:     cfg.MaxRounds,
			MinPlayers:    cfg.MinPlayers,
			MaxPlayers:    cfg.MaxPlayers,
			DebugReveal:   cfg.DebugReveal,
		}, supply, logg)
	}

	lobby := game.NewLobby(newRoom, game.NewTickerGen(), logg)
	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	handler := game.NewHandler(lobby, cfg.AllowedOrigins, logg)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) { ctx.String(http.StatusOK, "healthy") })
	r.GET("/ws", handler.JoinGameHandler)

	logg.Info().Str("port", cfg.Port).Msg("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
}
