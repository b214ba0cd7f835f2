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

package store

import (
	"bytes"
	"context"
	_ "embed"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

// SeedData lists the records to be loaded into a store at startup.
type SeedData struct {
	Authors []Author `yaml:"authors"`
	Books   []Book   `yaml:"books"`
}

// ParseSeed decodes seed data in YAML. Unknown keys are rejected.
func ParseSeed(data []byte) (*SeedData, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var seed SeedData
	if err := decoder.Decode(&seed); err != nil {
		return nil, errors.Wrap(err, "decode seed data")
	}
	return &seed, nil
}

// DefaultSeed returns the built-in seed data: three authors and eight books.
func DefaultSeed() *SeedData {
	seed, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return seed
}

// ReadSeedFile reads seed data from the YAML file at path.
func ReadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read seed file")
	}

	seed, err := ParseSeed(data)
	if err != nil {
		return nil, errors.Wrapf(err, "seed file %s", path)
	}
	return seed, nil
}

// Load appends records in seed to s in order. Since ids are assigned by s, it fails if an assigned
// id is not the one declared in seed.
func Load(ctx context.Context, s Store, seed *SeedData) error {
	for _, author := range seed.Authors {
		added, err := s.AddAuthor(ctx, author.Name)
		if err != nil {
			return errors.Wrapf(err, "seed author %q", author.Name)
		}
		if added.ID != author.ID {
			return errors.Newf("seed author %q: assigned id %d, declared %d", author.Name, added.ID, author.ID)
		}
	}

	for _, book := range seed.Books {
		added, err := s.AddBook(ctx, book.Name, book.AuthorID)
		if err != nil {
			return errors.Wrapf(err, "seed book %q", book.Name)
		}
		if added.ID != book.ID {
			return errors.Newf("seed book %q: assigned id %d, declared %d", book.Name, added.ID, book.ID)
		}
	}

	return nil
}
