/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package server serves the library schema over HTTP and WebSocket.
package server

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"time"

	"github.com/botobag/bookshelf/graphql/handler"
	"github.com/botobag/bookshelf/internal/config"
	"github.com/botobag/bookshelf/internal/log"
	"github.com/botobag/bookshelf/internal/store"
	"github.com/botobag/bookshelf/library"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the id of a request. It is generated unless the client provides one.
const RequestIDHeader = "X-Request-Id"

// Server serves GraphQL requests against a store.
type Server struct {
	config     config.ServerConfig
	logger     *zap.Logger
	handler    http.Handler
	httpServer *http.Server
}

// New creates a Server. Resolvers read and append records in s.
func New(c *config.Config, s store.Store, logger *zap.Logger) (*Server, error) {
	schema, err := library.Schema()
	if err != nil {
		return nil, errors.Wrap(err, "build schema")
	}

	appContext := func(*http.Request) interface{} {
		return s
	}

	graphqlHandler, err := handler.New(schema,
		handler.MaxBodySize(c.Server.MaxBodySize),
		handler.CacheSize(c.Cache.Size),
		handler.AppContext(appContext),
		handler.Runner(library.MutationRunner()),
		handler.Logger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "create GraphQL handler")
	}

	webSocketHandler := handler.NewWebSocket(graphqlHandler, handler.WebSocketConfig{
		Logger:     logger,
		AppContext: appContext,
	})

	mux := http.NewServeMux()
	mux.Handle(c.Server.Path, graphqlHandler)
	mux.Handle(c.Server.WSPath, webSocketHandler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})

	var h http.Handler = mux
	if c.Server.RateLimit > 0 {
		h = rateLimit(h, rate.NewLimiter(rate.Limit(c.Server.RateLimit), c.Server.RateBurst))
	}
	h = accessLog(h, logger)
	h = requestID(h)

	return &Server{
		config:  c.Server,
		logger:  logger,
		handler: h,
		httpServer: &http.Server{
			Handler:           h,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          zap.NewStdLog(logger),
		},
	}, nil
}

// Handler returns the http.Handler with all middlewares.
func (server *Server) Handler() http.Handler {
	return server.handler
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (server *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", server.config.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", server.config.Addr)
	}
	return server.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is done, then shuts down gracefully, waiting at
// most the configured shutdown timeout for requests in flight.
func (server *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger := server.logger
	logger.Info("server started",
		zap.String(log.FieldAddress, listener.Addr().String()),
		zap.String(log.FieldPath, server.config.Path))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.config.ShutdownTimeout)
	defer cancel()
	if err := server.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "serve")
	}

	logger.Info("server stopped")
	return nil
}

// requestID assigns an id to every request, carries it in the request context and echoes it in the
// response header.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if len(id) == 0 {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(log.WithRequestID(r.Context(), id)))
	})
}

// statusRecorder records the status code written to the response.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(status int) {
	if recorder.status == 0 {
		recorder.status = status
	}
	recorder.ResponseWriter.WriteHeader(status)
}

func (recorder *statusRecorder) Write(b []byte) (int, error) {
	if recorder.status == 0 {
		recorder.status = http.StatusOK
	}
	return recorder.ResponseWriter.Write(b)
}

// Hijack lets WebSocket upgrades through.
func (recorder *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := recorder.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer doesn't support hijacking")
	}
	if recorder.status == 0 {
		recorder.status = http.StatusSwitchingProtocols
	}
	return hijacker.Hijack()
}

// accessLog writes a log entry for every request when it completes.
func accessLog(next http.Handler, logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(recorder, r)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		log.FromContext(r.Context(), logger).Info("request",
			zap.String(log.FieldMethod, r.Method),
			zap.String(log.FieldPath, r.URL.Path),
			zap.Int(log.FieldStatus, status),
			zap.Duration(log.FieldDuration, time.Since(start)),
			zap.String(log.FieldRemote, r.RemoteAddr))
	})
}

var tooManyRequestsBody = []byte(`{"errors":[{"message":"Too many requests."}]}` + "\n")

// rateLimit rejects requests with 429 when limiter has no token.
func rateLimit(next http.Handler, limiter *rate.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			header := w.Header()
			header.Set("Content-Type", "application/json; charset=utf-8")
			header.Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write(tooManyRequestsBody)
			return
		}
		next.ServeHTTP(w, r)
	})
}
