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

package config_test

import (
	"os"
	"path/filepath"
	"time"

	"github.com/botobag/bookshelf/internal/config"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("provides defaults", func() {
		c, err := config.Load(config.New(), "")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(*c).Should(Equal(config.Config{
			Server: config.ServerConfig{
				Addr:            ":5000",
				Path:            "/graphql",
				WSPath:          "/graphql/ws",
				MaxBodySize:     10 << 20,
				RateLimit:       0,
				RateBurst:       50,
				ShutdownTimeout: 10 * time.Second,
			},
			Store: config.StoreConfig{
				Backend: "memory",
			},
			Cache: config.CacheConfig{
				Size: 512,
			},
			Log: config.LogConfig{
				Level:  "info",
				Format: "console",
			},
		}))
	})

	Context("with file", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "config")
			Expect(err).ShouldNot(HaveOccurred())
		})

		AfterEach(func() {
			os.RemoveAll(dir)
		})

		write := func(content string) string {
			path := filepath.Join(dir, "bookshelf.yaml")
			Expect(os.WriteFile(path, []byte(content), 0o644)).Should(Succeed())
			return path
		}

		It("overrides defaults with file", func() {
			c, err := config.Load(config.New(), write(`
server:
  addr: 127.0.0.1:8080
  rate_limit: 2.5
  shutdown_timeout: 3s
store:
  backend: sqlite
log:
  format: json
`))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Server.Addr).Should(Equal("127.0.0.1:8080"))
			Expect(c.Server.RateLimit).Should(Equal(2.5))
			Expect(c.Server.ShutdownTimeout).Should(Equal(3 * time.Second))
			Expect(c.Server.Path).Should(Equal("/graphql"))
			Expect(c.Store.Backend).Should(Equal("sqlite"))
			Expect(c.Log.Format).Should(Equal("json"))
		})

		It("overrides file with environment", func() {
			os.Setenv("BOOKSHELF_SERVER_ADDR", ":7000")
			defer os.Unsetenv("BOOKSHELF_SERVER_ADDR")

			c, err := config.Load(config.New(), write("server:\n  addr: :6000\n"))
			Expect(err).ShouldNot(HaveOccurred())
			Expect(c.Server.Addr).Should(Equal(":7000"))
		})

		It("fails on missing file", func() {
			_, err := config.Load(config.New(), filepath.Join(dir, "missing.yaml"))
			Expect(err).Should(HaveOccurred())
		})
	})

	It("reads settings from environment", func() {
		os.Setenv("BOOKSHELF_CACHE_SIZE", "16")
		os.Setenv("BOOKSHELF_STORE_SEED_FILE", "/tmp/seed.yaml")
		defer os.Unsetenv("BOOKSHELF_CACHE_SIZE")
		defer os.Unsetenv("BOOKSHELF_STORE_SEED_FILE")

		c, err := config.Load(config.New(), "")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(c.Cache.Size).Should(Equal(uint(16)))
		Expect(c.Store.SeedFile).Should(Equal("/tmp/seed.yaml"))
	})

	It("rejects invalid settings", func() {
		for key, value := range map[string]interface{}{
			"server.path":          "graphql",
			"server.ws_path":       "/graphql",
			"server.max_body_size": 0,
			"server.rate_limit":    -1,
			"store.backend":        "mongo",
			"log.format":           "xml",
		} {
			v := config.New()
			v.Set(key, value)
			_, err := config.Load(v, "")
			Expect(err).Should(HaveOccurred(), key)
		}

		v := config.New()
		v.Set("server.rate_limit", 1)
		v.Set("server.rate_burst", 0)
		_, err := config.Load(v, "")
		Expect(err).Should(MatchError("server.rate_burst must be positive when rate limiting is enabled, got 0"))
	})
})
