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

package main

import (
	"context"
	"io"
	"strings"

	"github.com/botobag/bookshelf/library"

	"github.com/cockroachdb/errors"
	"github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errRequestFailed is returned when the operation was not executed.
var errRequestFailed = errors.New("request failed")

func newQueryCommand(a *app) *cobra.Command {
	var (
		operationName string
		vars          []string
		variables     string
	)

	cmd := &cobra.Command{
		Use:   "query <document>",
		Short: "Execute a GraphQL document against a freshly seeded store",
		Long: `Execute a GraphQL document against a freshly seeded store and print the result
in JSON. The document is read from stdin if it is "-".

Variables are given in JSON with --variables, or one at a time with --var name=value
where value is decoded as JSON if possible and taken as a string otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if query == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "read document")
				}
				query = string(b)
			}

			variableValues, err := parseVariables(variables, vars)
			if err != nil {
				return err
			}

			c, err := a.loadConfig()
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, err := openStore(ctx, c, zap.NewNop())
			if err != nil {
				return err
			}
			defer s.Close()

			result := library.Execute(ctx, library.Request{
				Store:         s,
				Query:         query,
				OperationName: operationName,
				Variables:     variableValues,
			})
			if err := result.MarshalJSONTo(cmd.OutOrStdout()); err != nil {
				return errors.Wrap(err, "write result")
			}

			if result.Data == nil {
				return errRequestFailed
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&operationName, "operation", "o", "", "name of the operation to execute")
	flags.StringArrayVar(&vars, "var", nil, "variable as name=value (repeatable)")
	flags.StringVar(&variables, "variables", "", "variables as a JSON object")

	return cmd
}

// parseVariables merges the JSON object in variables and name=value pairs in vars.
func parseVariables(variables string, vars []string) (map[string]interface{}, error) {
	values := map[string]interface{}{}
	if len(variables) > 0 {
		if err := jsoniter.UnmarshalFromString(variables, &values); err != nil {
			return nil, errors.Wrap(err, "--variables must be a JSON object")
		}
	}

	for _, v := range vars {
		name, raw, found := strings.Cut(v, "=")
		if !found || len(name) == 0 {
			return nil, errors.Newf("--var %q must be in the form name=value", v)
		}

		var value interface{}
		if err := jsoniter.UnmarshalFromString(raw, &value); err != nil {
			value = raw
		}
		values[name] = value
	}

	return values, nil
}
