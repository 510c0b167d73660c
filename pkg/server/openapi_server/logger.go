package openapi_server

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

func Logger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		inner.ServeHTTP(w, r)

		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("route", name),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
