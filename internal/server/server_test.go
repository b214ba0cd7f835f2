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

package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/botobag/bookshelf/graphql/handler"
	"github.com/botobag/bookshelf/internal/config"
	"github.com/botobag/bookshelf/internal/log"
	"github.com/botobag/bookshelf/internal/server"
	"github.com/botobag/bookshelf/internal/store"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("Server", func() {
	var (
		c      *config.Config
		s      store.Store
		logs   *observer.ObservedLogs
		logger *zap.Logger
	)

	BeforeEach(func() {
		var err error
		c, err = config.Load(config.New(), "")
		Expect(err).ShouldNot(HaveOccurred())

		s = store.NewMemoryStore()
		Expect(store.Load(context.Background(), s, store.DefaultSeed())).Should(Succeed())

		var core zapcore.Core
		core, logs = observer.New(zapcore.InfoLevel)
		logger = zap.New(core)
	})

	newServer := func() *httptest.Server {
		srv, err := server.New(c, s, logger)
		Expect(err).ShouldNot(HaveOccurred())
		return httptest.NewServer(srv.Handler())
	}

	post := func(url string, body string) *http.Response {
		resp, err := http.Post(url, "application/json", strings.NewReader(body))
		Expect(err).ShouldNot(HaveOccurred())
		return resp
	}

	readBody := func(resp *http.Response) string {
		defer resp.Body.Close()
		b, err := io.ReadAll(resp.Body)
		Expect(err).ShouldNot(HaveOccurred())
		return string(b)
	}

	It("serves GraphQL requests", func() {
		ts := newServer()
		defer ts.Close()

		resp := post(ts.URL+"/graphql", `{"query":"{ author(id: 1) { name } }"}`)
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		Expect(readBody(resp)).Should(MatchJSON(`{"data":{"author":{"name":"J. K. Rowling"}}}`))

		resp = post(ts.URL+"/graphql", `{"query":"mutation { addAuthor(name: \"New\") { id } }"}`)
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		Expect(readBody(resp)).Should(MatchJSON(`{"data":{"addAuthor":{"id":4}}}`))
	})

	It("serves health check", func() {
		ts := newServer()
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/healthz")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		Expect(readBody(resp)).Should(Equal("ok\n"))
	})

	It("assigns request id and logs access", func() {
		ts := newServer()
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/healthz")
		Expect(err).ShouldNot(HaveOccurred())
		readBody(resp)
		id := resp.Header.Get(server.RequestIDHeader)
		Expect(id).Should(HaveLen(36))

		req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		Expect(err).ShouldNot(HaveOccurred())
		req.Header.Set(server.RequestIDHeader, "given")
		resp, err = http.DefaultClient.Do(req)
		Expect(err).ShouldNot(HaveOccurred())
		readBody(resp)
		Expect(resp.Header.Get(server.RequestIDHeader)).Should(Equal("given"))

		entries := logs.FilterMessage("request").AllUntimed()
		Expect(entries).Should(HaveLen(2))
		fields := entries[1].ContextMap()
		Expect(fields).Should(HaveKeyWithValue(log.FieldRequestID, "given"))
		Expect(fields).Should(HaveKeyWithValue(log.FieldPath, "/healthz"))
		Expect(fields).Should(HaveKeyWithValue(log.FieldStatus, BeNumerically("==", http.StatusOK)))
	})

	It("limits request rate", func() {
		c.Server.RateLimit = 0.001
		c.Server.RateBurst = 1
		ts := newServer()
		defer ts.Close()

		resp, err := http.Get(ts.URL + "/healthz")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resp.StatusCode).Should(Equal(http.StatusOK))
		readBody(resp)

		resp, err = http.Get(ts.URL + "/healthz")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resp.StatusCode).Should(Equal(http.StatusTooManyRequests))
		Expect(resp.Header.Get("Retry-After")).Should(Equal("1"))
		Expect(readBody(resp)).Should(MatchJSON(`{"errors":[{"message":"Too many requests."}]}`))
	})

	It("serves WebSocket through middlewares", func() {
		ts := newServer()
		defer ts.Close()

		dialer := websocket.Dialer{
			Subprotocols:     []string{handler.WebSocketSubprotocol},
			HandshakeTimeout: 5 * time.Second,
		}
		conn, resp, err := dialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/graphql/ws", nil)
		Expect(err).ShouldNot(HaveOccurred())
		defer conn.Close()
		Expect(resp.Header.Get(server.RequestIDHeader)).ShouldNot(BeEmpty())

		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		Expect(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"connection_init"}`))).Should(Succeed())
		var msg map[string]interface{}
		Expect(conn.ReadJSON(&msg)).Should(Succeed())
		Expect(msg).Should(HaveKeyWithValue("type", "connection_ack"))

		Expect(conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"id":"1","type":"subscribe","payload":{"query":"{ book(id: 5) { name } }"}}`))).Should(Succeed())
		Expect(conn.ReadJSON(&msg)).Should(Succeed())
		Expect(msg).Should(HaveKeyWithValue("type", "next"))
		Expect(msg).Should(HaveKeyWithValue("payload", map[string]interface{}{
			"data": map[string]interface{}{
				"book": map[string]interface{}{"name": "The Two Towers"},
			},
		}))
	})

	It("shuts down when context is done", func() {
		c.Server.ShutdownTimeout = time.Second
		srv, err := server.New(c, s, logger)
		Expect(err).ShouldNot(HaveOccurred())

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).ShouldNot(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Serve(ctx, listener)
		}()

		Eventually(func() error {
			resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
			if err == nil {
				resp.Body.Close()
			}
			return err
		}, 5*time.Second).Should(Succeed())

		cancel()
		Eventually(done, 5*time.Second).Should(Receive(BeNil()))
		Expect(logs.FilterMessage("server stopped").Len()).Should(Equal(1))
	})
})
