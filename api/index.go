package handler

import (
	"net/http"
	"seatdesk/config"
	"seatdesk/di"
	"seatdesk/shared/logger"
	"sync"

	transport "seatdesk/transport/http"

	"github.com/rs/zerolog/log"
)

var (
	app  *transport.HTTP
	once sync.Once
)

// Handler serves the desk API from a serverless function. The app is built on the first call.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("Invalid configuration")
		}

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
