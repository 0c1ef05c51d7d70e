package main

import (
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tripsplit/backend/internal/config"
	"github.com/tripsplit/backend/internal/models"
	"github.com/tripsplit/backend/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	output := io.Writer(os.Stdout)
	if cfg.LogFormat == "human" || (cfg.LogFormat == "" && gin.IsDebugging()) {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	log.Debug().
		Str("dbFile", cfg.DBFile).
		Str("listenAddress", cfg.ListenAddress).
		Str("corsAllowOrigins", cfg.CORSAllowOrigins).
		Bool("enablePprof", cfg.EnablePprof).
		Msg("Configuration")

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.DBFile), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database, this also migrates all models
	err = models.Connect(cfg.DBFile)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	apiURL, err := url.Parse(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	r, teardown, err := router.Config(apiURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(r.Group("/"))

	if err := r.Run(cfg.ListenAddress); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
