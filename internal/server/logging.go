package server

import (
	"log"
	"net/http"
)

func withLogging(logger *log.Logger, next http.Handler) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Printf("REQ %s %s From=%s UA=%q", r.Method, r.URL.String(), r.RemoteAddr, r.UserAgent())
		next.ServeHTTP(w, r)
	})
}
