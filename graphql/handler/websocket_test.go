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

package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/botobag/bookshelf/graphql/handler"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var _ = Describe("WebSocket", func() {
	var (
		server *httptest.Server
		config handler.WebSocketConfig
	)

	BeforeEach(func() {
		config = handler.WebSocketConfig{}
	})

	JustBeforeEach(func() {
		h, err := handler.NewLLHandler(&handler.LLConfig{Schema: newTestSchema()})
		Expect(err).ShouldNot(HaveOccurred())
		server = httptest.NewServer(handler.NewWebSocket(h, config))
	})

	AfterEach(func() {
		server.Close()
	})

	dial := func(subprotocols ...string) *websocket.Conn {
		dialer := websocket.Dialer{
			Subprotocols:     subprotocols,
			HandshakeTimeout: 5 * time.Second,
		}
		conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
		Expect(err).ShouldNot(HaveOccurred())
		return conn
	}

	send := func(conn *websocket.Conn, msg string) {
		Expect(conn.WriteMessage(websocket.TextMessage, []byte(msg))).Should(Succeed())
	}

	receive := func(conn *websocket.Conn) *wsMessage {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg wsMessage
		Expect(conn.ReadJSON(&msg)).Should(Succeed())
		return &msg
	}

	expectClose := func(conn *websocket.Conn, code int) {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, _, err := conn.ReadMessage()
		Expect(err).Should(HaveOccurred())
		Expect(websocket.IsCloseError(err, code)).Should(BeTrue(), err.Error())
	}

	connect := func() *websocket.Conn {
		conn := dial(handler.WebSocketSubprotocol)
		Expect(conn.Subprotocol()).Should(Equal(handler.WebSocketSubprotocol))
		send(conn, `{"type":"connection_init"}`)
		Expect(receive(conn).Type).Should(Equal("connection_ack"))
		return conn
	}

	It("keeps headers set before the upgrade in the handshake response", func() {
		h, err := handler.NewLLHandler(&handler.LLConfig{Schema: newTestSchema()})
		Expect(err).ShouldNot(HaveOccurred())
		ws := handler.NewWebSocket(h, config)
		tagged := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Request-Id", "req-42")
			ws.ServeHTTP(w, r)
		}))
		defer tagged.Close()

		dialer := websocket.Dialer{
			Subprotocols:     []string{handler.WebSocketSubprotocol},
			HandshakeTimeout: 5 * time.Second,
		}
		conn, resp, err := dialer.Dial("ws"+strings.TrimPrefix(tagged.URL, "http"), nil)
		Expect(err).ShouldNot(HaveOccurred())
		defer conn.Close()

		Expect(resp.StatusCode).Should(Equal(http.StatusSwitchingProtocols))
		Expect(resp.Header.Get("X-Request-Id")).Should(Equal("req-42"))
		Expect(conn.Subprotocol()).Should(Equal(handler.WebSocketSubprotocol))
	})

	It("executes operations", func() {
		conn := connect()
		defer conn.Close()

		send(conn, `{
			"id": "1",
			"type": "subscribe",
			"payload": {
				"query": "query ($name: String) { greeting(name: $name) }",
				"variables": {"name": "socket"}
			}
		}`)

		msg := receive(conn)
		Expect(msg.ID).Should(Equal("1"))
		Expect(msg.Type).Should(Equal("next"))
		Expect(string(msg.Payload)).Should(MatchJSON(`{"data":{"greeting":"Hello, socket"}}`))

		msg = receive(conn)
		Expect(msg.ID).Should(Equal("1"))
		Expect(msg.Type).Should(Equal("complete"))
	})

	It("reports errors for invalid operation", func() {
		conn := connect()
		defer conn.Close()

		send(conn, `{"id":"q","type":"subscribe","payload":{"query":"{ unknown }"}}`)

		msg := receive(conn)
		Expect(msg.ID).Should(Equal("q"))
		Expect(msg.Type).Should(Equal("error"))
		Expect(string(msg.Payload)).Should(ContainSubstring(`Cannot query field \"unknown\" on type \"Query\".`))
	})

	It("responds to ping", func() {
		conn := connect()
		defer conn.Close()

		send(conn, `{"type":"ping","payload":{"at":1}}`)
		msg := receive(conn)
		Expect(msg.Type).Should(Equal("pong"))
		Expect(string(msg.Payload)).Should(MatchJSON(`{"at":1}`))
	})

	It("rejects subscribe before connection is acknowledged", func() {
		conn := dial(handler.WebSocketSubprotocol)
		defer conn.Close()

		send(conn, `{"id":"1","type":"subscribe","payload":{"query":"{ greeting }"}}`)
		expectClose(conn, handler.CloseUnauthorized)
	})

	It("rejects duplicated connection_init", func() {
		conn := connect()
		defer conn.Close()

		send(conn, `{"type":"connection_init"}`)
		expectClose(conn, handler.CloseTooManyInitRequests)
	})

	It("rejects unknown message", func() {
		conn := connect()
		defer conn.Close()

		send(conn, `{"type":"unknown"}`)
		expectClose(conn, handler.CloseInvalidMessage)
	})

	It("rejects malformed message", func() {
		conn := connect()
		defer conn.Close()

		send(conn, `not json`)
		expectClose(conn, handler.CloseInvalidMessage)
	})

	It("rejects connection without the subprotocol", func() {
		conn := dial()
		defer conn.Close()

		expectClose(conn, handler.CloseSubprotocolNotAllowed)
	})

	Context("with short initialisation timeout", func() {
		BeforeEach(func() {
			config.InitTimeout = 50 * time.Millisecond
		})

		It("closes connection that is never initialised", func() {
			conn := dial(handler.WebSocketSubprotocol)
			defer conn.Close()

			expectClose(conn, handler.CloseInitTimeout)
		})
	})
})
