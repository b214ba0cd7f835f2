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

package graphql

// DirectiveLocation is a place in a document where a directive may appear.
type DirectiveLocation string

// Executable directive locations
const (
	DirectiveLocationQuery              DirectiveLocation = "QUERY"
	DirectiveLocationMutation           DirectiveLocation = "MUTATION"
	DirectiveLocationSubscription       DirectiveLocation = "SUBSCRIPTION"
	DirectiveLocationField              DirectiveLocation = "FIELD"
	DirectiveLocationFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	DirectiveLocationFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	DirectiveLocationInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	DirectiveLocationVariableDefinition DirectiveLocation = "VARIABLE_DEFINITION"
)

// DirectiveConfig defines a Directive.
type DirectiveConfig struct {
	Name        string
	Description string
	Locations   []DirectiveLocation
	Args        ArgumentConfigMap
}

// Directive is a directive supported by a schema.
type Directive struct {
	name        string
	description string
	locations   []DirectiveLocation
	args        []*Argument
}

// NewDirective creates a Directive from config.
func NewDirective(config *DirectiveConfig) (*Directive, error) {
	args, err := buildArguments(config.Args)
	if err != nil {
		return nil, err
	}
	return &Directive{
		name:        config.Name,
		description: config.Description,
		locations:   config.Locations,
		args:        args,
	}, nil
}

// MustNewDirective is like NewDirective but panics on error.
func MustNewDirective(config *DirectiveConfig) *Directive {
	directive, err := NewDirective(config)
	if err != nil {
		panic(err)
	}
	return directive
}

// Name returns the directive name without "@".
func (directive *Directive) Name() string { return directive.name }

// Description returns the description of the directive.
func (directive *Directive) Description() string { return directive.description }

// Locations returns where the directive may appear.
func (directive *Directive) Locations() []DirectiveLocation { return directive.locations }

// Args returns the arguments of the directive ordered by name.
func (directive *Directive) Args() []*Argument { return directive.args }

// Arg returns the argument with the given name or nil.
func (directive *Directive) Arg(name string) *Argument {
	for _, arg := range directive.args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// HasLocation returns true if the directive may appear at location.
func (directive *Directive) HasLocation(location DirectiveLocation) bool {
	for _, l := range directive.locations {
		if l == location {
			return true
		}
	}
	return false
}

var (
	includeDirective = MustNewDirective(&DirectiveConfig{
		Name: "include",
		Description: "Directs the executor to include this field or fragment only when the `if` " +
			"argument is true.",
		Locations: []DirectiveLocation{
			DirectiveLocationField,
			DirectiveLocationFragmentSpread,
			DirectiveLocationInlineFragment,
		},
		Args: ArgumentConfigMap{
			"if": {
				Description: "Included when true.",
				Type:        MustNewNonNullOf(Boolean()),
			},
		},
	})

	skipDirective = MustNewDirective(&DirectiveConfig{
		Name: "skip",
		Description: "Directs the executor to skip this field or fragment when the `if` argument " +
			"is true.",
		Locations: []DirectiveLocation{
			DirectiveLocationField,
			DirectiveLocationFragmentSpread,
			DirectiveLocationInlineFragment,
		},
		Args: ArgumentConfigMap{
			"if": {
				Description: "Skipped when true.",
				Type:        MustNewNonNullOf(Boolean()),
			},
		},
	})
)

// IncludeDirective returns the built-in @include.
func IncludeDirective() *Directive { return includeDirective }

// SkipDirective returns the built-in @skip.
func SkipDirective() *Directive { return skipDirective }

// SpecifiedDirectives returns the directives every schema supports.
func SpecifiedDirectives() []*Directive {
	return []*Directive{includeDirective, skipDirective}
}
