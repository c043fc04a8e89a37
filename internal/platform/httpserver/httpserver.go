// Package httpserver builds the API server with the timeouts a registry
// sitting behind municipal reverse proxies needs.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server for the given handler. Write and idle timeouts
// stay generous: listing a large catalogus or probing the documenten
// registry during closure can take a while.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
