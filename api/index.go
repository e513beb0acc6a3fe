package handler

import (
	"net/http"
	"resto/config"
	"resto/di"
	"resto/shared/logger"
	"resto/shared/timezone"
	transport "resto/transport/http"
	"sync"
)

var (
	server *transport.HTTP
	once   sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		timezone.Init(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
