/**
 * Copyright (c) 2019, The Artemis Authors.
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
	"net/http"

	"github.com/botobag/bookshelf/concurrent"
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	"github.com/botobag/bookshelf/graphql/executor"

	"go.uber.org/zap"
)

// HTTPHandler serves GraphQL queries from HTTP requests.
type HTTPHandler interface {
	http.Handler

	// Prepare and Serve from LLHandler
	Prepare(query string, operationName string) (*executor.PreparedOperation, error)
	Serve(request *Request) *executor.ExecutionResult

	ErrorPresenter() ErrorPresenter
}

// AppContextFunc derives the value exposed to resolvers by graphql.ResolveInfo.AppContext from a
// HTTP request.
type AppContextFunc func(r *http.Request) interface{}

// httpHandler implements HTTPHandler on top of a LLHandler.
type httpHandler struct {
	*LLHandler

	config httpHandlerConfig

	// Presents errors occurred before execution; errors occurred during execution are part of the
	// result written by resultPresenter.
	errorPresenter ErrorPresenter

	requestBuilder  RequestBuilder
	resultPresenter ResultPresenter
}

var _ HTTPHandler = (*httpHandler)(nil)

// httpHandlerConfig contains configuration for a httpHandler.
type httpHandlerConfig struct {
	LLConfig

	// Configuration given to DefaultRequestBuilder; It is not applicable if custom RequestBuilder is
	// used.
	defaultRequestBuilderConfig DefaultRequestBuilderConfig

	logger *zap.Logger

	errorPresenter  ErrorPresenter
	requestBuilder  RequestBuilder
	resultPresenter ResultPresenter
}

// Option configures httpHandler
type Option func(h *httpHandlerConfig)

// MaxBodySize sets the maximum number of bytes to be read from request body.
func MaxBodySize(size uint) Option {
	return func(h *httpHandlerConfig) {
		h.defaultRequestBuilderConfig.HTTPRequestParserOptions.MaxBodySize = size
	}
}

// AppContext sets the function that provides application context to resolvers.
func AppContext(f AppContextFunc) Option {
	return func(h *httpHandlerConfig) {
		h.defaultRequestBuilderConfig.AppContext = f
	}
}

// Runner sets the executor that runs mutation operations.
func Runner(runner concurrent.Executor) Option {
	return func(h *httpHandlerConfig) {
		h.Runner = runner
	}
}

// Logger sets the logger used by default presenters.
func Logger(logger *zap.Logger) Option {
	return func(h *httpHandlerConfig) {
		h.logger = logger
	}
}

// CacheSize sets the size of the default LRU operation cache.
func CacheSize(size uint) Option {
	return func(h *httpHandlerConfig) {
		if size == 0 {
			h.OperationCache = NopOperationCache{}
			return
		}
		cache, err := NewLRUOperationCache(size)
		if err == nil {
			h.OperationCache = cache
		}
	}
}

// OverrideOperationCache overrides default OperationCache.
func OverrideOperationCache(cache OperationCache) Option {
	return func(h *httpHandlerConfig) {
		h.OperationCache = cache
	}
}

// OverrideErrorPresenter overrides default ErrorPresenter.
func OverrideErrorPresenter(errorPresenter ErrorPresenter) Option {
	return func(h *httpHandlerConfig) {
		h.errorPresenter = errorPresenter
	}
}

// OverrideRequestBuilder overrides default RequestBuilder.
func OverrideRequestBuilder(requestBuilder RequestBuilder) Option {
	return func(h *httpHandlerConfig) {
		h.requestBuilder = requestBuilder
	}
}

// OverrideResultPresenter overrides default ResultPresenter.
func OverrideResultPresenter(resultPresenter ResultPresenter) Option {
	return func(h *httpHandlerConfig) {
		h.resultPresenter = resultPresenter
	}
}

// New creates a net/http.Handler and builds a GraphQL web service to serve queries against the
// schema.
func New(schema *graphql.Schema, opts ...Option) (HTTPHandler, error) {
	config := httpHandlerConfig{
		LLConfig: LLConfig{
			Schema: schema,
		},

		defaultRequestBuilderConfig: DefaultRequestBuilderConfig{
			HTTPRequestParserOptions: ParseHTTPRequestOptions{
				MaxBodySize: 10 << 20, // 10MB
			},
		},
	}
	for _, opt := range opts {
		opt(&config)
	}

	baseHandler, err := NewLLHandler(&config.LLConfig)
	if err != nil {
		return nil, err
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	requestBuilder := config.requestBuilder
	if requestBuilder == nil {
		requestBuilder = DefaultRequestBuilder{
			Config: &config.defaultRequestBuilderConfig,
		}
	}

	resultPresenter := config.resultPresenter
	if resultPresenter == nil {
		resultPresenter = DefaultResultPresenter{
			Logger: logger,
		}
	}

	errorPresenter := config.errorPresenter
	if errorPresenter == nil {
		errorPresenter = DefaultErrorPresenter{
			Logger: logger,
		}
	}

	return &httpHandler{
		LLHandler:       baseHandler,
		config:          config,
		errorPresenter:  errorPresenter,
		requestBuilder:  requestBuilder,
		resultPresenter: resultPresenter,
	}, nil
}

// ErrorPresenter implements HTTPHandler.
func (h *httpHandler) ErrorPresenter() ErrorPresenter {
	return h.errorPresenter
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestBuilder.Build(r, h)
	if err != nil {
		h.errorPresenter.Write(w, r, err)
		return
	}

	result := h.Serve(req)

	h.resultPresenter.Write(w, r, req, result)
}

// RequestBuilder generates a Request to be served by LLHandler from an HTTP request.
type RequestBuilder interface {
	// Build turns a http.Request r into a Request for h.
	Build(r *http.Request, h HTTPHandler) (*Request, error)
}

// DefaultRequestBuilderConfig specifies settings to configure DefaultRequestBuilder.
type DefaultRequestBuilderConfig struct {
	HTTPRequestParserOptions ParseHTTPRequestOptions
	AppContext               AppContextFunc
}

// DefaultRequestBuilder implements the default request builder used by HTTP handler to obtain
// a Request object from a http.Request.
type DefaultRequestBuilder struct {
	Config *DefaultRequestBuilderConfig
}

// allowedMethods lists the HTTP methods that can carry a GraphQL request.
var allowedMethods = []string{http.MethodGet, http.MethodPost}

// Build implements RequestBuilder.
func (builder DefaultRequestBuilder) Build(r *http.Request, h HTTPHandler) (*Request, error) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		return nil, &ErrMethodNotAllowed{
			Allow:   allowedMethods,
			Message: "GraphQL only supports GET and POST requests.",
		}
	}

	config := builder.Config
	httpRequest, err := ParseHTTPRequest(r, &config.HTTPRequestParserOptions)
	if err != nil {
		return nil, err
	}

	operation, err := h.Prepare(httpRequest.Query, httpRequest.OperationName)
	if err != nil {
		return nil, err
	}

	// GET requests must not have side effects.
	if r.Method == http.MethodGet && operation.Type() == ast.OperationTypeMutation {
		return nil, &ErrMethodNotAllowed{
			Allow:   []string{http.MethodPost},
			Message: "Can only perform a mutation operation from a POST request.",
		}
	}

	var appContext interface{}
	if config.AppContext != nil {
		appContext = config.AppContext(r)
	}

	return &Request{
		Ctx:       r.Context(),
		Operation: operation,
		Params: executor.ExecuteParams{
			AppContext:     appContext,
			VariableValues: httpRequest.Variables,
		},
	}, nil
}

// ResultPresenter presents an ExecutionResult to a http.ResponseWriter.
type ResultPresenter interface {
	Write(w http.ResponseWriter, r *http.Request, req *Request, result *executor.ExecutionResult)
}

// DefaultResultPresenter writes the result in JSON. The response status is 200 unless execution
// didn't start (e.g., variables failed coercion) in which case it is 400.
type DefaultResultPresenter struct {
	Logger *zap.Logger
}

// Write implements ResultPresenter.
func (presenter DefaultResultPresenter) Write(w http.ResponseWriter, r *http.Request, req *Request, result *executor.ExecutionResult) {
	logger := presenter.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	status := http.StatusOK
	if result.Data == nil {
		status = http.StatusBadRequest
	}

	writeResult(w, status, result, logger)
}
