package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/handle-game/go-server/internal/cache"
	"github.com/handle-game/go-server/internal/config"
	"github.com/handle-game/go-server/internal/httpserver"
	"github.com/handle-game/go-server/internal/resolve"
	"github.com/handle-game/go-server/internal/vocab"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := vocab.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}

	// Lookup cache: memory, with a durable SQLite layer when configured.
	var c cache.Cache = cache.NewMemory()
	if cfg.PinyinCacheDB != "" {
		db, err := cache.OpenSQLite(cfg.PinyinCacheDB)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.PinyinCacheDB).Msg("failed to open pinyin cache")
		}
		defer db.Close()
		c = cache.NewTiered(c, db)
	}

	res := resolve.New(cfg.ProxyURL, c, log.Logger)
	srv := httpserver.New(res, cfg)

	log.Info().Str("port", cfg.Port).Bool("proxy", cfg.ProxyURL != "").Msg("starting handle-go server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
