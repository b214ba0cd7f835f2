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

package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/executor"
	"github.com/botobag/bookshelf/jsonwriter"

	"github.com/gorilla/websocket"
	"github.com/json-iterator/go"
	"go.uber.org/zap"
)

// WebSocketSubprotocol is the name of the GraphQL over WebSocket protocol served by the handler
// created by NewWebSocket.
const WebSocketSubprotocol = "graphql-transport-ws"

// Message types of graphql-transport-ws
const (
	wsConnectionInit = "connection_init"
	wsConnectionAck  = "connection_ack"
	wsPing           = "ping"
	wsPong           = "pong"
	wsSubscribe      = "subscribe"
	wsNext           = "next"
	wsError          = "error"
	wsComplete       = "complete"
)

// Close codes of graphql-transport-ws
const (
	CloseInvalidMessage        = 4400
	CloseUnauthorized          = 4401
	CloseSubprotocolNotAllowed = 4406
	CloseInitTimeout           = 4408
	CloseSubscriberExists      = 4409
	CloseTooManyInitRequests   = 4429
)

// OperationServer prepares and serves operations. Both *LLHandler and HTTPHandler implement it.
type OperationServer interface {
	Prepare(query string, operationName string) (*executor.PreparedOperation, error)
	Serve(request *Request) *executor.ExecutionResult
}

// WebSocketConfig configures the handler created by NewWebSocket.
type WebSocketConfig struct {
	Logger *zap.Logger

	// AppContext is called once per connection with the upgrade request.
	AppContext AppContextFunc

	// Time allowed for client to send connection_init after connected; Default to 10 seconds.
	InitTimeout time.Duration
}

type webSocketHandler struct {
	server   OperationServer
	config   WebSocketConfig
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWebSocket creates a http.Handler that serves queries and mutations with the
// graphql-transport-ws protocol.
func NewWebSocket(server OperationServer, config WebSocketConfig) http.Handler {
	if config.InitTimeout <= 0 {
		config.InitTimeout = 10 * time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &webSocketHandler{
		server: server,
		config: config,
		logger: logger,
		upgrader: websocket.Upgrader{
			Subprotocols: []string{WebSocketSubprotocol},
		},
	}
}

func (h *webSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Headers set by middlewares before the upgrade (e.g., request id) go out with the handshake
	// response.
	conn, err := h.upgrader.Upgrade(w, r, w.Header().Clone())
	if err != nil {
		// Upgrade has replied to the client.
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}

	var appContext interface{}
	if h.config.AppContext != nil {
		appContext = h.config.AppContext(r)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &wsConnection{
		handler:    h,
		conn:       conn,
		ctx:        ctx,
		appContext: appContext,
		operations: map[string]context.CancelFunc{},
	}

	if conn.Subprotocol() != WebSocketSubprotocol {
		c.close(CloseSubprotocolNotAllowed, "Subprotocol not acceptable")
		return
	}

	c.serve()
}

// wsMessage is the envelope of every message exchanged over the connection.
type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsConnection struct {
	handler    *webSocketHandler
	conn       *websocket.Conn
	ctx        context.Context
	appContext interface{}

	// Guard writes to conn.
	writeMutex sync.Mutex

	// mutex guards fields below.
	mutex      sync.Mutex
	initRecved bool
	acked      bool
	closed     bool
	operations map[string]context.CancelFunc
	wg         sync.WaitGroup
}

func (c *wsConnection) serve() {
	logger := c.handler.logger

	initTimer := time.AfterFunc(c.handler.config.InitTimeout, func() {
		c.mutex.Lock()
		acked := c.acked
		c.mutex.Unlock()
		if !acked {
			c.close(CloseInitTimeout, "Connection initialisation timeout")
		}
	})
	defer initTimer.Stop()

	defer func() {
		// Cancel operations in flight and wait for them before releasing the connection.
		c.mutex.Lock()
		c.closed = true
		for _, cancel := range c.operations {
			cancel()
		}
		c.mutex.Unlock()
		c.wg.Wait()
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket connection terminated", zap.Error(err))
			}
			return
		}

		var msg wsMessage
		if err := jsoniter.Unmarshal(data, &msg); err != nil || len(msg.Type) == 0 {
			c.close(CloseInvalidMessage, "Invalid message received")
			return
		}

		if !c.handleMessage(&msg) {
			return
		}
	}
}

// handleMessage processes msg and returns false if the connection has been closed.
func (c *wsConnection) handleMessage(msg *wsMessage) bool {
	switch msg.Type {
	case wsConnectionInit:
		c.mutex.Lock()
		duplicated := c.initRecved
		c.initRecved = true
		c.mutex.Unlock()

		if duplicated {
			c.close(CloseTooManyInitRequests, "Too many initialisation requests")
			return false
		}

		if err := c.write(&wsMessage{Type: wsConnectionAck}); err != nil {
			return false
		}

		c.mutex.Lock()
		c.acked = true
		c.mutex.Unlock()

	case wsPing:
		if err := c.write(&wsMessage{Type: wsPong, Payload: msg.Payload}); err != nil {
			return false
		}

	case wsPong:

	case wsSubscribe:
		return c.subscribe(msg)

	case wsComplete:
		c.mutex.Lock()
		if cancel, exists := c.operations[msg.ID]; exists {
			cancel()
			delete(c.operations, msg.ID)
		}
		c.mutex.Unlock()

	default:
		c.close(CloseInvalidMessage, fmt.Sprintf("Unexpected message of type %s received", msg.Type))
		return false
	}

	return true
}

func (c *wsConnection) subscribe(msg *wsMessage) bool {
	if len(msg.ID) == 0 {
		c.close(CloseInvalidMessage, "Invalid message received")
		return false
	}

	var payload HTTPRequest
	if err := jsoniter.Unmarshal(msg.Payload, &payload); err != nil {
		c.close(CloseInvalidMessage, "Invalid message received")
		return false
	}

	c.mutex.Lock()
	if !c.acked {
		c.mutex.Unlock()
		c.close(CloseUnauthorized, "Unauthorized")
		return false
	}
	if _, exists := c.operations[msg.ID]; exists {
		c.mutex.Unlock()
		c.close(CloseSubscriberExists, fmt.Sprintf("Subscriber for %s already exists", msg.ID))
		return false
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.operations[msg.ID] = cancel
	c.wg.Add(1)
	c.mutex.Unlock()

	go c.execute(ctx, msg.ID, &payload)

	return true
}

func (c *wsConnection) execute(ctx context.Context, id string, payload *HTTPRequest) {
	defer c.wg.Done()

	// finish unregisters the operation and reports whether the client still waits for it.
	finish := func() bool {
		c.mutex.Lock()
		defer c.mutex.Unlock()
		cancel, exists := c.operations[id]
		if !exists {
			return false
		}
		cancel()
		delete(c.operations, id)
		return !c.closed
	}

	operation, err := c.handler.server.Prepare(payload.Query, payload.OperationName)
	if err != nil {
		if finish() {
			c.writeErrors(id, prepareErrors(err))
		}
		return
	}

	result := c.handler.server.Serve(&Request{
		Ctx:       ctx,
		Operation: operation,
		Params: executor.ExecuteParams{
			AppContext:     c.appContext,
			VariableValues: payload.Variables,
		},
	})

	data, err := jsonwriter.Marshal(executor.NewExecutionResultMarshaler(result))
	if err != nil {
		c.handler.logger.Error("failed to encode execution result", zap.String("id", id), zap.Error(err))
		if finish() {
			c.writeErrors(id, graphql.ErrorsOf("Cannot encode the result."))
		}
		return
	}

	if !finish() {
		return
	}

	if err := c.write(&wsMessage{ID: id, Type: wsNext, Payload: data}); err != nil {
		return
	}
	c.write(&wsMessage{ID: id, Type: wsComplete})
}

func (c *wsConnection) writeErrors(id string, errs graphql.Errors) {
	data, err := jsonwriter.Marshal(executor.ErrorsMarshaler(errs))
	if err != nil {
		c.handler.logger.Error("failed to encode errors", zap.String("id", id), zap.Error(err))
		return
	}
	c.write(&wsMessage{ID: id, Type: wsError, Payload: data})
}

// prepareErrors converts an error returned from Prepare to the errors sent to client.
func prepareErrors(err error) graphql.Errors {
	switch err := err.(type) {
	case *ErrParseQuery:
		return graphql.ErrorsOf(err.Err)
	case *ErrPrepare:
		return err.Errs
	default:
		return graphql.ErrorsOf(err.Error())
	}
}

func (c *wsConnection) write(msg *wsMessage) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.handler.logger.Debug("failed to write websocket message", zap.String("type", msg.Type), zap.Error(err))
		return err
	}
	return nil
}

// close sends a close frame with code and reason, and closes the underlying connection which
// terminates the read loop.
func (c *wsConnection) close(code int, reason string) {
	c.writeMutex.Lock()
	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second))
	c.writeMutex.Unlock()
	c.conn.Close()
}
