// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const readHeaderTimeout = 5 * time.Second

// httpListener runs an http.Server in the background.
type httpListener struct {
	name   string
	port   int
	server *http.Server
}

func newHTTPListener(name string, port int, handler http.Handler) *httpListener {
	return &httpListener{
		name: name,
		port: port,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

func (l *httpListener) start() {
	go func() {
		logrus.Infof("%s listening on port %d", l.name, l.port)
		if err := l.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("%s failed: %v", l.name, err)
		}
	}()
}

func (l *httpListener) shutdown(ctx context.Context) error {
	if l == nil {
		return nil
	}
	logrus.Infof("shutting down %s...", l.name)
	if err := l.server.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Infof("%s stopped", l.name)
	return nil
}

// HTTPServer serves the game API.
type HTTPServer struct {
	listener *httpListener
	port     int
	handler  http.Handler
}

// NewHTTPServer creates an HTTP server for handler.
func NewHTTPServer(port int, handler http.Handler) *HTTPServer {
	return &HTTPServer{
		port:    port,
		handler: handler,
	}
}

// Setup wraps the handler with OpenTelemetry instrumentation.
func (h *HTTPServer) Setup() error {
	h.listener = newHTTPListener("game API", h.port, otelhttp.NewHandler(h.handler, "game-api"))
	return nil
}

// Handler returns the instrumented handler.
func (h *HTTPServer) Handler() http.Handler {
	return h.listener.server.Handler
}

// Start begins serving the game API on the configured port.
func (h *HTTPServer) Start(ctx context.Context) error {
	h.listener.start()
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	return h.listener.shutdown(ctx)
}
