package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

var (
	adaptor http.HandlerFunc
	once    sync.Once
)

// Handler serves the API from a serverless runtime. The dependency graph is
// built on the first invocation and reused by warm instances.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.Configure(cfg)

		adaptor = di.InitializeService().Adaptor()
	})

	adaptor(w, r)
}
