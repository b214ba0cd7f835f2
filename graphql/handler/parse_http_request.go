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
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/json-iterator/go"
)

// HTTPRequest contains result values of ParseHTTPRequest.
type HTTPRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ParseHTTPRequestOptions provides settings to ParseHTTPRequest.
type ParseHTTPRequestOptions struct {
	// Maximum size in bytes to be read when parsing a GraphQL query from HTTP request body
	MaxBodySize uint
}

// HTTPRequestParseError is returned by ParseHTTPRequest when parsing failed.
type HTTPRequestParseError struct {
	Request *http.Request
	Err     error
}

// Error implements Go's error interface.
func (err *HTTPRequestParseError) Error() string {
	return err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *HTTPRequestParseError) Unwrap() error {
	return err.Err
}

var errRequestBodyTooLarge = errors.New("request body is too large")

// getOneValue returns the single value associated with key. An empty string is returned if the key
// is absent. It is an error to give multiple values to the key.
func getOneValue(values url.Values, key string) (string, error) {
	v := values[key]
	switch len(v) {
	case 0:
		return "", nil
	case 1:
		return v[0], nil
	default:
		return "", fmt.Errorf(`multiple values are provided to "%s", but only one expected`, key)
	}
}

// parseRequestFromValues reads "query", "operationName" and "variables" (in JSON) from values.
func parseRequestFromValues(r *http.Request, values url.Values) (*HTTPRequest, error) {
	var (
		req HTTPRequest
		err error
	)

	wrap := func(err error) error {
		return &HTTPRequestParseError{
			Request: r,
			Err:     err,
		}
	}

	if req.Query, err = getOneValue(values, "query"); err != nil {
		return nil, wrap(err)
	}
	if req.OperationName, err = getOneValue(values, "operationName"); err != nil {
		return nil, wrap(err)
	}

	variables, err := getOneValue(values, "variables")
	if err != nil {
		return nil, wrap(err)
	}
	if len(variables) > 0 {
		if err := jsoniter.UnmarshalFromString(variables, &req.Variables); err != nil {
			return nil, wrap(errors.New("Variables are invalid JSON."))
		}
	}

	return &req, nil
}

// ParseHTTPRequest parses a GraphQL request from a http.Request object. GET requests carry the
// request in the URL. POST requests carry it in the body encoded in application/json,
// application/graphql or application/x-www-form-urlencoded; parameters in the URL are used when the
// body does not provide a query.
func ParseHTTPRequest(r *http.Request, options *ParseHTTPRequestOptions) (*HTTPRequest, error) {
	urlValues, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, &HTTPRequestParseError{
			Request: r,
			Err:     err,
		}
	}

	if r.Method != http.MethodPost {
		return parseRequestFromValues(r, urlValues)
	}

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	maxBodySize := options.MaxBodySize
	body, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBodySize)+1))
	if err != nil {
		return nil, &HTTPRequestParseError{
			Request: r,
			Err:     err,
		}
	}
	if uint(len(body)) > maxBodySize {
		return nil, &HTTPRequestParseError{
			Request: r,
			Err:     errRequestBodyTooLarge,
		}
	}

	var req *HTTPRequest
	switch contentType {
	case "application/graphql":
		// The entire body is the query.
		req = &HTTPRequest{
			Query: string(body),
		}

	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, &HTTPRequestParseError{
				Request: r,
				Err:     err,
			}
		}
		req, err = parseRequestFromValues(r, values)
		if err != nil {
			return nil, err
		}

	case "", "application/json":
		req = &HTTPRequest{}
		if len(body) > 0 {
			if err := jsoniter.Unmarshal(body, req); err != nil {
				return nil, &HTTPRequestParseError{
					Request: r,
					Err:     errors.New("POST body sent invalid JSON."),
				}
			}
		}

	default:
		req = &HTTPRequest{}
	}

	if len(req.Query) == 0 {
		fallback, err := parseRequestFromValues(r, urlValues)
		if err != nil {
			return nil, err
		}
		if len(fallback.Query) > 0 {
			return fallback, nil
		}
	}

	return req, nil
}
