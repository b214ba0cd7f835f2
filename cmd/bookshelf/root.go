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

	"github.com/botobag/bookshelf/internal/config"
	"github.com/botobag/bookshelf/internal/log"
	"github.com/botobag/bookshelf/internal/store"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// app holds state shared by commands.
type app struct {
	v          *viper.Viper
	configFile string
}

func newRootCommand() *cobra.Command {
	a := &app{
		v: config.New(),
	}

	cmd := &cobra.Command{
		Use:   "bookshelf",
		Short: "Bookshelf serves authors and books over GraphQL",
		Long: `Bookshelf serves a graph of authors and books over GraphQL.

Settings are read from defaults, an optional YAML file given by --config and
BOOKSHELF_* environment variables (e.g., BOOKSHELF_SERVER_ADDR for server.addr).

Examples:
  bookshelf serve --addr :8080
  bookshelf query '{ author(id: 2) { name books { name } } }'
  bookshelf query 'query ($id: Int) { book(id: $id) { name } }' --var id=4`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")
	flags.String("store", "", "store backend (memory, sqlite)")
	flags.String("seed", "", "YAML file with seed data")
	a.bindFlag(flags.Lookup("log-level"), "log.level")
	a.bindFlag(flags.Lookup("log-format"), "log.format")
	a.bindFlag(flags.Lookup("store"), "store.backend")
	a.bindFlag(flags.Lookup("seed"), "store.seed_file")

	cmd.AddCommand(
		newServeCommand(a),
		newQueryCommand(a),
		newVersionCommand())

	return cmd
}

// bindFlag makes the flag, when given, override the setting key.
func (a *app) bindFlag(f *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// loadConfig decodes settings.
func (a *app) loadConfig() (*config.Config, error) {
	return config.Load(a.v, a.configFile)
}

// newLogger builds the logger configured by c.
func newLogger(c *config.Config) (*zap.Logger, error) {
	return log.New(c.Log.Level, c.Log.Format)
}

// openStore opens the configured store and loads seed data into it.
func openStore(ctx context.Context, c *config.Config, logger *zap.Logger) (store.Store, error) {
	s, err := store.Open(ctx, store.Options{
		Backend: store.Backend(c.Store.Backend),
		DSN:     c.Store.DSN,
	})
	if err != nil {
		return nil, err
	}

	seed := store.DefaultSeed()
	if len(c.Store.SeedFile) > 0 {
		seed, err = store.ReadSeedFile(c.Store.SeedFile)
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	if err := store.Load(ctx, s, seed); err != nil {
		s.Close()
		return nil, errors.Wrap(err, "load seed data")
	}

	logger.Info("store ready",
		zap.String(log.FieldBackend, c.Store.Backend),
		zap.Int("authors", len(seed.Authors)),
		zap.Int("books", len(seed.Books)))

	return s, nil
}
